package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
	"github.com/theterminalguy/wp-booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID     = "invalid booking id"
	msgMissingToken         = "cancellation token is required"
	msgInvalidToken         = "invalid cancellation token"
	msgBookingNotFound      = "booking not found"
	msgDeadlinePassed       = "the cancellation deadline has passed"
	msgCancellationDisabled = "cancellation is not available for this booking"
	msgCannotCancel         = "this booking can no longer be cancelled"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandlePreview GET /api/v1/bookings/{publicId}/cancel
// Query params: token (required)
// Возвращает данные для страницы подтверждения, ничего не меняет.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	publicID, token, ok := h.parseRequest(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.CancellationPreview(r.Context(), publicID, token)
	if err != nil {
		h.respondServiceError(w, "GET", publicID.String(), err)
		return
	}

	h.logger.Info("GET /bookings/{publicId}/cancel - Preview retrieved: public_id=%s, can_cancel=%t",
		publicID, result.CanCancel)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCancel POST /api/v1/bookings/{publicId}/cancel
// Query params: token (required)
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	publicID, token, ok := h.parseRequest(w, r, "POST")
	if !ok {
		return
	}

	result, err := h.service.Cancel(r.Context(), publicID, token)
	if err != nil {
		h.respondServiceError(w, "POST", publicID.String(), err)
		return
	}

	h.logger.Info("POST /bookings/{publicId}/cancel - Booking cancelled: public_id=%s", publicID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request, method string) (uuid.UUID, string, bool) {
	publicIDStr := mux.Vars(r)["publicId"]
	publicID, err := uuid.Parse(publicIDStr)
	if err != nil {
		h.logger.Warn("%s /bookings/{publicId}/cancel - Invalid booking id: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return uuid.Nil, "", false
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		h.logger.Warn("%s /bookings/{publicId}/cancel - Missing token: public_id=%s", method, publicID)
		handlers.RespondBadRequest(w, msgMissingToken)
		return uuid.Nil, "", false
	}

	return publicID, token, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, method, publicID string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s /bookings/{publicId}/cancel - Booking not found: public_id=%s", method, publicID)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrInvalidToken):
		h.logger.Warn("%s /bookings/{publicId}/cancel - Invalid token: public_id=%s", method, publicID)
		handlers.RespondForbidden(w, msgInvalidToken)

	case errors.Is(err, bookings.ErrDeadlinePassed):
		h.logger.Warn("%s /bookings/{publicId}/cancel - Deadline passed: public_id=%s", method, publicID)
		handlers.RespondError(w, http.StatusConflict, msgDeadlinePassed)

	case errors.Is(err, bookings.ErrCancellationDisabled):
		h.logger.Warn("%s /bookings/{publicId}/cancel - Cancellation disabled: public_id=%s", method, publicID)
		handlers.RespondError(w, http.StatusConflict, msgCancellationDisabled)

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s /bookings/{publicId}/cancel - Cannot cancel: public_id=%s", method, publicID)
		handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

	default:
		h.logger.Error("%s /bookings/{publicId}/cancel - Failed: public_id=%s, error=%v", method, publicID, err)
		handlers.RespondInternalError(w)
	}
}
