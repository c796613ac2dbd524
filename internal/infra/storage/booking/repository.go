package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/dbmetrics"
	"github.com/theterminalguy/wp-booking-service/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального ограничения
const pgUniqueViolation = "23505"

// pgSerializationFailure код ошибки Postgres при конфликте сериализации.
// Под SERIALIZABLE конфликт может прийти прямо на INSERT или SELECT FOR UPDATE
const pgSerializationFailure = "40001"

// activeSlotIndex частичный уникальный индекс по (booking_date, start_time)
// для активных бронирований (см. migrations/0001_init.sql)
const activeSlotIndex = "bookings_active_slot_idx"

var bookingColumns = []string{
	"id",
	"public_id",
	"name",
	"email",
	"phone",
	"message",
	"booking_date",
	"start_time",
	"status",
	"cancellation_token",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование. Если в контексте передана активная
// транзакция, использует её.
//
// Частичный уникальный индекс bookings_active_slot_idx гарантирует, что два
// активных бронирования не могут занять одну пару (booking_date, start_time)
// даже при параллельных вставках: проигравшая сторона получает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.PublicID == uuid.Nil {
		booking.PublicID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"public_id",
			"name",
			"email",
			"phone",
			"message",
			"booking_date",
			"start_time",
			"status",
		).
		Values(
			booking.PublicID,
			booking.Name,
			booking.Email,
			booking.Phone,
			booking.Message,
			booking.BookingDate,
			booking.StartTime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, activeSlotIndex) {
			return nil, ErrSlotTaken
		}
		// Конфликт сериализации отдаём нетронутым: менеджер транзакций
		// должен увидеть код 40001 и повторить транзакцию
		if isSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по внутреннему ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByPublicID получает бронирование по публичному UUID
func (r *Repository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"public_id": publicID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListWithFilter получает бронирования с фильтрацией по дате, статусу и
// активности. Для конкретной даты сортировка по времени начала.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": *filter.Date}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Внутри транзакции блокируем выборку по конкретной дате - это путь
	// координатора резервирования (check-and-create)
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusFrom обновляет статус бронирования при условии, что текущий
// статус равен from. Guarded-обновление закрывает гонку между параллельными
// переходами: проигравший получает ErrStatusConflict.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from domain.BookingStatus, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// SetCancellationToken сохраняет токен отмены, только если он ещё не выдан.
// При rowsAffected = 0 токен уже существует - вызывающий перечитывает бронирование.
func (r *Repository) SetCancellationToken(ctx context.Context, id int64, token string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancellation_token", token).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("cancellation_token IS NULL")).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SetCancellationToken - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: SetCancellationToken - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetCancellationToken - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.PublicID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Message,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.Status,
		&booking.CancellationToken,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			if isSerializationFailure(err) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	// Под FOR UPDATE конфликт сериализации может всплыть только на итерации
	if err := rows.Err(); err != nil {
		if isSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
	}
	return false
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
