package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusApproved        BookingStatus = "approved"
	StatusRejected        BookingStatus = "rejected"
	StatusCancelled       BookingStatus = "cancelled"
)

// transitions таблица допустимых переходов статусов.
// rejected и cancelled - терминальные статусы, из них переходов нет.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:        {StatusCancelled},
	StatusRejected:        {},
	StatusCancelled:       {},
}

// CanTransitionTo reports whether a booking in status s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are possible from s.
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// Booking represents an appointment request submitted by a visitor
type Booking struct {
	ID       int64
	PublicID uuid.UUID // идентификатор для клиентских ссылок, числовой ID наружу не отдаём

	Name    string
	Email   string
	Phone   string
	Message *string

	BookingDate time.Time
	StartTime   types.TimeString
	Status      BookingStatus

	// CancellationToken выдается лениво при первом построении ссылки на отмену
	// и после этого не перегенерируется
	CancellationToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPendingApproval || b.Status == StatusApproved
}

// CanBeCancelled returns true if the booking status permits cancellation.
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// StartsAt combines the booking date and start time into a single moment
// in the business-local timezone.
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.At(b.BookingDate)
}

// BookingsFilter фильтр для выборки бронирований (админский список)
type BookingsFilter struct {
	Date            *time.Time     // Конкретная дата (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отклонённые и отменённые
}
