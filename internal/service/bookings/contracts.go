package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
	SetCancellationToken(ctx context.Context, id int64, token string) (bool, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// Notifier отправляет уведомления по жизненному циклу бронирования
type Notifier interface {
	BookingApproved(b *domain.Booking, cancelURL string)
	BookingRejected(b *domain.Booking)
	BookingCancelled(b *domain.Booking)
}

// ActionTokenIssuer выпускает токены админских действий
type ActionTokenIssuer interface {
	Issue(action string, bookingID int64) (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
