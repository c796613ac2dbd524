package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// ---------- Fakes ----------

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	err        error
	lastFilter domain.BookingsFilter
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, f.err
}

type fakeScheduleRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
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

func newTestUseCase(bookingRepo *fakeBookingRepo, schedRepo *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, schedRepo, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

// ----------

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // вторник
	now := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

	t.Run("returns free slots minus active bookings", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{
			bookings: []*domain.Booking{
				{StartTime: types.TimeString("09:00"), Status: domain.StatusApproved},
				{StartTime: types.TimeString("10:00"), Status: domain.StatusCancelled},
			},
		}
		schedRepo := &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}
		uc := newTestUseCase(bookingRepo, schedRepo, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)

		require.Len(t, resp.Slots, 15)
		assert.Equal(t, types.TimeString("09:30"), resp.Slots[0].StartTime)
		assert.Equal(t, 30, resp.Slots[0].DurationMinutes)

		// Фильтр запрашивал именно эту дату
		require.NotNil(t, bookingRepo.lastFilter.Date)
		assert.Equal(t, date, *bookingRepo.lastFilter.Date)
	})

	t.Run("falls back to default config when none saved", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{}
		schedRepo := &fakeScheduleRepo{err: scheduleRepo.ErrConfigNotFound}
		uc := newTestUseCase(bookingRepo, schedRepo, now)

		resp, err := uc.Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 16)
	})

	t.Run("empty day skips booking lookup", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{err: errors.New("must not be called")}
		schedRepo := &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}
		uc := newTestUseCase(bookingRepo, schedRepo, now)

		saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
		resp, err := uc.Execute(context.Background(), &Request{Date: saturday})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("repository error maps to internal", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{err: errors.New("connection refused")}
		schedRepo := &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}
		uc := newTestUseCase(bookingRepo, schedRepo, now)

		_, err := uc.Execute(context.Background(), &Request{Date: date})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("missing date is invalid input", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}, now)

		_, err := uc.Execute(context.Background(), &Request{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
