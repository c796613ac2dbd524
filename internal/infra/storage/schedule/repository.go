package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/dbmetrics"
	"github.com/theterminalguy/wp-booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"slot_duration_minutes",
	"start_time",
	"end_time",
	"days_available",
	"booking_buffer_hours",
	"cancellation_allowed",
	"cancellation_deadline_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания.
// Конфигурация хранится в единственной строке (id = 1).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущую конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var days pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.SlotDurationMinutes,
		&cfg.StartTime,
		&cfg.EndTime,
		&days,
		&cfg.BookingBufferHours,
		&cfg.CancellationAllowed,
		&cfg.CancellationDeadlineHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.DaysAvailable = make([]int, len(days))
	for i, d := range days {
		cfg.DaysAvailable[i] = int(d)
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert сохраняет конфигурацию расписания, заменяя существующую строку
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	days := make(pq.Int64Array, len(cfg.DaysAvailable))
	for i, d := range cfg.DaysAvailable {
		days[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"id",
			"slot_duration_minutes",
			"start_time",
			"end_time",
			"days_available",
			"booking_buffer_hours",
			"cancellation_allowed",
			"cancellation_deadline_hours",
		).
		Values(
			1,
			cfg.SlotDurationMinutes,
			cfg.StartTime,
			cfg.EndTime,
			days,
			cfg.BookingBufferHours,
			cfg.CancellationAllowed,
			cfg.CancellationDeadlineHours,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			days_available = EXCLUDED.days_available,
			booking_buffer_hours = EXCLUDED.booking_buffer_hours,
			cancellation_allowed = EXCLUDED.cancellation_allowed,
			cancellation_deadline_hours = EXCLUDED.cancellation_deadline_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
