package domain

import "github.com/theterminalguy/wp-booking-service/pkg/types"

// Default schedule configuration values
const (
	DefaultSlotDurationMinutes       = 30
	DefaultBookingBufferHours        = 24
	DefaultCancellationDeadlineHours = 24
)

// Default business hours
const (
	DefaultStartTime = types.TimeString("09:00")
	DefaultEndTime   = types.TimeString("17:00")
)

// Business validation constants
const (
	MaxSlotDurationMinutes = 480 // 8 часов
	MaxMessageLength       = 1000
	MaxNameLength          = 200
	MaxPhoneLength         = 40
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPendingApproval,
	StatusApproved,
}

// InactiveStatuses статусы, не блокирующие слот
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}
