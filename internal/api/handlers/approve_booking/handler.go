package approve_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
	"github.com/theterminalguy/wp-booking-service/internal/platform/auth"
	"github.com/theterminalguy/wp-booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "invalid booking id"
	msgMissingAuthToken  = "authToken is required"
	msgInvalidAuthToken  = "invalid or expired action token"
	msgBookingNotFound   = "booking not found"
	msgInvalidTransition = "booking cannot be approved in its current status"
)

type Handler struct {
	service  BookingsService
	verifier ActionTokenVerifier
	logger   Logger
}

func NewHandler(service BookingsService, verifier ActionTokenVerifier, logger Logger) *Handler {
	return &Handler{
		service:  service,
		verifier: verifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/approve
// Query params: authToken (required) - подписанный токен действия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingIDStr := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	authToken := r.URL.Query().Get("authToken")
	if authToken == "" {
		h.logger.Warn("POST /admin/bookings/{id}/approve - Missing authToken: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingAuthToken)
		return
	}

	if err := h.verifier.Verify(authToken, auth.ActionApprove, bookingID); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid action token: booking_id=%d", bookingID)
		handlers.RespondForbidden(w, msgInvalidAuthToken)
		return
	}

	result, err := h.service.Approve(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /admin/bookings/{id}/approve - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/approve - Booking approved: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
