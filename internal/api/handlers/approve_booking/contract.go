package approve_booking

import (
	"context"

	"github.com/theterminalguy/wp-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Approve(ctx context.Context, id int64) (*models.BookingResponse, error)
}

// ActionTokenVerifier проверяет подписанный токен действия
type ActionTokenVerifier interface {
	Verify(tokenStr, action string, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
