package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/theterminalguy/wp-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, publicID uuid.UUID, token string) (*models.BookingResponse, error)
	CancellationPreview(ctx context.Context, publicID uuid.UUID, token string) (*models.CancellationPreviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
