package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	bookingRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/booking"
	"github.com/theterminalguy/wp-booking-service/pkg/ptr"
	"github.com/theterminalguy/wp-booking-service/pkg/txmanager"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// ---------- Fakes ----------

// fakeBookingRepo хранит бронирования в памяти и воспроизводит
// уникальность активного слота, как частичный индекс в БД
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking

	createErr error
	listErr   error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.bookings {
		if existing.IsActive() && existing.BookingDate.Equal(b.BookingDate) && existing.StartTime == b.StartTime {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.nextID++
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

// inlineTxManager выполняет fn без настоящей транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// contendedTxManager имитирует исчерпание повторов сериализуемой транзакции
type contendedTxManager struct{}

func (contendedTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: giving up after retries", txmanager.ErrSerializationFailure)
}

type fakeNotifier struct {
	mu        sync.Mutex
	submitted []*domain.Booking
}

func (f *fakeNotifier) BookingSubmitted(b *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, b)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ----------

var (
	testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // вторник
	testNow  = time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 0100",
		Date:      testDate,
		StartTime: types.TimeString("10:00"),
		Message:   ptr.Ptr("please call ahead"),
	}
}

func newTestUseCase(repo *fakeBookingRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()},
		inlineTxManager{},
		notifier,
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("creates pending booking and notifies", func(t *testing.T) {
		repo := newFakeBookingRepo()
		notifier := &fakeNotifier{}
		uc := newTestUseCase(repo, notifier)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)
		assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

		require.Len(t, repo.bookings, 1)
		assert.Equal(t, domain.StatusPendingApproval, repo.bookings[0].Status)

		require.Len(t, notifier.submitted, 1)
		assert.Equal(t, "jane@example.com", notifier.submitted[0].Email)
	})

	t.Run("taken slot is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo()
		notifier := &fakeNotifier{}
		uc := newTestUseCase(repo, notifier)

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)

		assert.Len(t, repo.bookings, 1)
		assert.Len(t, notifier.submitted, 1)
	})

	t.Run("cancelled booking frees its slot", func(t *testing.T) {
		repo := newFakeBookingRepo()
		uc := newTestUseCase(repo, &fakeNotifier{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		repo.bookings[0].Status = domain.StatusCancelled

		_, err = uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	})

	t.Run("off-grid time is invalid slot", func(t *testing.T) {
		uc := newTestUseCase(newFakeBookingRepo(), &fakeNotifier{})

		req := validRequest()
		req.StartTime = types.TimeString("10:15")

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("unavailable weekday is invalid slot", func(t *testing.T) {
		uc := newTestUseCase(newFakeBookingRepo(), &fakeNotifier{})

		req := validRequest()
		req.Date = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC) // суббота

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("date inside booking buffer is invalid slot", func(t *testing.T) {
		repo := newFakeBookingRepo()
		uc := newTestUseCase(repo, &fakeNotifier{})
		uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)}

		_, err := uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("unique violation from insert maps to slot conflict", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.createErr = bookingRepo.ErrSlotTaken
		uc := newTestUseCase(repo, &fakeNotifier{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("exhausted serialization retries map to slot conflict", func(t *testing.T) {
		notifier := &fakeNotifier{}
		uc := NewUseCase(
			newFakeBookingRepo(),
			&fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()},
			contendedTxManager{},
			notifier,
			nopLogger{},
		)
		uc.timeProvider = &fixedTime{now: testNow}

		_, err := uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Empty(t, notifier.submitted)
	})

	t.Run("validation failures", func(t *testing.T) {
		uc := newTestUseCase(newFakeBookingRepo(), &fakeNotifier{})

		tests := []struct {
			name   string
			mutate func(*Request)
		}{
			{"missing name", func(r *Request) { r.Name = "" }},
			{"missing email", func(r *Request) { r.Email = "" }},
			{"malformed email", func(r *Request) { r.Email = "not-an-email" }},
			{"missing phone", func(r *Request) { r.Phone = "" }},
			{"missing date", func(r *Request) { r.Date = time.Time{} }},
			{"missing time", func(r *Request) { r.StartTime = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				tt.mutate(req)

				_, err := uc.Execute(context.Background(), req)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("concurrent requests for one slot produce one booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		uc := newTestUseCase(repo, &fakeNotifier{})

		const n = 8
		errCh := make(chan error, n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Execute(context.Background(), validRequest())
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		var successes, conflicts int
		for err := range errCh {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, n-1, conflicts)
		assert.Len(t, repo.bookings, 1)
	})
}
