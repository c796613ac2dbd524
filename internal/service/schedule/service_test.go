package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/internal/service/schedule/models"
	"github.com/theterminalguy/wp-booking-service/pkg/ptr"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// ---------- Fakes ----------

type fakeScheduleRepo struct {
	cfg       *domain.ScheduleConfig
	getErr    error
	upsertErr error
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cfg, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.cfg = cfg
	return cfg, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ----------

func TestService_Get(t *testing.T) {
	t.Run("returns saved config", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig()
		cfg.SlotDurationMinutes = 45
		svc := NewService(&fakeScheduleRepo{cfg: cfg}, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 45, resp.SlotDurationMinutes)
	})

	t.Run("falls back to defaults when none saved", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{getErr: scheduleRepo.ErrConfigNotFound}, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 30, resp.SlotDurationMinutes)
		assert.Equal(t, "09:00", resp.StartTime)
		assert.Equal(t, "17:00", resp.EndTime)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.DaysAvailable)
	})

	t.Run("repository error maps to internal", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{getErr: errors.New("connection refused")}, nopLogger{})

		_, err := svc.Get(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		repo := &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
			SlotDurationMinutes: ptr.Ptr(60),
			EndTime:             ptr.Ptr("18:00"),
		})
		require.NoError(t, err)

		assert.Equal(t, 60, resp.SlotDurationMinutes)
		assert.Equal(t, "18:00", resp.EndTime)
		// Остальное не тронуто
		assert.Equal(t, "09:00", resp.StartTime)
		assert.Equal(t, 24, resp.BookingBufferHours)
	})

	t.Run("update without saved config starts from defaults", func(t *testing.T) {
		repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrConfigNotFound}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
			CancellationAllowed: ptr.Ptr(false),
		})
		require.NoError(t, err)

		assert.False(t, resp.CancellationAllowed)
		assert.Equal(t, 30, resp.SlotDurationMinutes)
		require.NotNil(t, repo.cfg)
		assert.Equal(t, types.TimeString("09:00"), repo.cfg.StartTime)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			req  *models.UpdateScheduleRequest
		}{
			{"zero slot duration", &models.UpdateScheduleRequest{SlotDurationMinutes: ptr.Ptr(0)}},
			{"start after end", &models.UpdateScheduleRequest{StartTime: ptr.Ptr("18:00")}},
			{"malformed time", &models.UpdateScheduleRequest{EndTime: ptr.Ptr("5pm")}},
			{"empty days", &models.UpdateScheduleRequest{DaysAvailable: ptr.Ptr([]int{})}},
			{"weekday out of range", &models.UpdateScheduleRequest{DaysAvailable: ptr.Ptr([]int{1, 7})}},
			{"negative buffer", &models.UpdateScheduleRequest{BookingBufferHours: ptr.Ptr(-1)}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewService(&fakeScheduleRepo{cfg: domain.DefaultScheduleConfig()}, nopLogger{})

				_, err := svc.Update(context.Background(), tt.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("upsert error maps to internal", func(t *testing.T) {
		repo := &fakeScheduleRepo{cfg: domain.DefaultScheduleConfig(), upsertErr: errors.New("connection refused")}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{SlotDurationMinutes: ptr.Ptr(60)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
