package domain

import (
	"fmt"
	"time"

	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// ScheduleConfig represents the business-hours configuration that drives
// slot generation and the cancellation policy. Immutable per request:
// loaded once at the start of an operation and never mutated by the core.
type ScheduleConfig struct {
	ID                  int64
	SlotDurationMinutes int
	StartTime           types.TimeString
	EndTime             types.TimeString
	DaysAvailable       []int // дни недели 0-6, 0 = воскресенье

	BookingBufferHours int // минимальное время от "сейчас" до бронируемой даты

	CancellationAllowed       bool
	CancellationDeadlineHours int // 0 = без дедлайна

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the configuration invariants at the boundary so the
// scheduling core can rely on them.
func (c *ScheduleConfig) Validate() error {
	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("slot duration must be positive, got %d", c.SlotDurationMinutes)
	}
	if c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slot duration must not exceed %d minutes, got %d", MaxSlotDurationMinutes, c.SlotDurationMinutes)
	}
	if err := c.StartTime.Validate(); err != nil {
		return fmt.Errorf("invalid start time: %v", err)
	}
	if err := c.EndTime.Validate(); err != nil {
		return fmt.Errorf("invalid end time: %v", err)
	}
	if !c.StartTime.IsBefore(c.EndTime) {
		return fmt.Errorf("start time %s must be before end time %s", c.StartTime, c.EndTime)
	}
	if len(c.DaysAvailable) == 0 {
		return fmt.Errorf("at least one available day is required")
	}
	for _, day := range c.DaysAvailable {
		if day < 0 || day > 6 {
			return fmt.Errorf("invalid weekday %d, expected 0-6", day)
		}
	}
	if c.BookingBufferHours < 0 {
		return fmt.Errorf("booking buffer must not be negative, got %d", c.BookingBufferHours)
	}
	if c.CancellationDeadlineHours < 0 {
		return fmt.Errorf("cancellation deadline must not be negative, got %d", c.CancellationDeadlineHours)
	}
	return nil
}

// IsDayAvailable reports whether bookings are accepted on the given weekday.
func (c *ScheduleConfig) IsDayAvailable(day time.Weekday) bool {
	for _, d := range c.DaysAvailable {
		if d == int(day) {
			return true
		}
	}
	return false
}

// DefaultScheduleConfig returns the configuration used until an
// administrator saves one.
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		SlotDurationMinutes:       DefaultSlotDurationMinutes,
		StartTime:                 DefaultStartTime,
		EndTime:                   DefaultEndTime,
		DaysAvailable:             []int{1, 2, 3, 4, 5}, // понедельник - пятница
		BookingBufferHours:        DefaultBookingBufferHours,
		CancellationAllowed:       true,
		CancellationDeadlineHours: DefaultCancellationDeadlineHours,
	}
}
