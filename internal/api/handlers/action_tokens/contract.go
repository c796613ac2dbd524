package action_tokens

import (
	"context"

	"github.com/theterminalguy/wp-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	ActionTokens(ctx context.Context, id int64) (*models.ActionTokensResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
