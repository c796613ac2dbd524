package models

import (
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на обновление расписания.
// Все поля опциональны - обновляются только переданные значения.
type UpdateScheduleRequest struct {
	SlotDurationMinutes       *int    `json:"slotDurationMinutes,omitempty"`
	StartTime                 *string `json:"startTime,omitempty"` // "09:00"
	EndTime                   *string `json:"endTime,omitempty"`   // "17:00"
	DaysAvailable             *[]int  `json:"daysAvailable,omitempty"`
	BookingBufferHours        *int    `json:"bookingBufferHours,omitempty"`
	CancellationAllowed       *bool   `json:"cancellationAllowed,omitempty"`
	CancellationDeadlineHours *int    `json:"cancellationDeadlineHours,omitempty"`
}

// ApplyToConfig применяет обновления к существующей конфигурации.
// Обновляются только непустые (not nil) поля из request.
func (r *UpdateScheduleRequest) ApplyToConfig(cfg *domain.ScheduleConfig) {
	if r.SlotDurationMinutes != nil {
		cfg.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.StartTime != nil {
		cfg.StartTime = types.TimeString(*r.StartTime)
	}
	if r.EndTime != nil {
		cfg.EndTime = types.TimeString(*r.EndTime)
	}
	if r.DaysAvailable != nil {
		cfg.DaysAvailable = *r.DaysAvailable
	}
	if r.BookingBufferHours != nil {
		cfg.BookingBufferHours = *r.BookingBufferHours
	}
	if r.CancellationAllowed != nil {
		cfg.CancellationAllowed = *r.CancellationAllowed
	}
	if r.CancellationDeadlineHours != nil {
		cfg.CancellationDeadlineHours = *r.CancellationDeadlineHours
	}
}

// Response модели

// ScheduleResponse ответ с конфигурацией расписания
type ScheduleResponse struct {
	SlotDurationMinutes       int       `json:"slotDurationMinutes"`
	StartTime                 string    `json:"startTime"` // "09:00"
	EndTime                   string    `json:"endTime"`   // "17:00"
	DaysAvailable             []int     `json:"daysAvailable"`
	BookingBufferHours        int       `json:"bookingBufferHours"`
	CancellationAllowed       bool      `json:"cancellationAllowed"`
	CancellationDeadlineHours int       `json:"cancellationDeadlineHours"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ScheduleResponse {
	if c == nil {
		return nil
	}

	return &ScheduleResponse{
		SlotDurationMinutes:       c.SlotDurationMinutes,
		StartTime:                 c.StartTime.String(),
		EndTime:                   c.EndTime.String(),
		DaysAvailable:             c.DaysAvailable,
		BookingBufferHours:        c.BookingBufferHours,
		CancellationAllowed:       c.CancellationAllowed,
		CancellationDeadlineHours: c.CancellationDeadlineHours,
		UpdatedAt:                 c.UpdatedAt,
	}
}
