package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/internal/service/bookings"
	"github.com/theterminalguy/wp-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidDate            = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus          = "invalid status filter"
	msgInvalidIncludeInactive = "invalid includeInactive value, expected true or false"
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

// Handle GET /api/v1/admin/bookings
// Query params: date (optional, YYYY-MM-DD), status (optional),
// includeInactive (optional, true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := r.URL.Query().Get("includeInactive"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
		req.IncludeInactive = include
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/bookings - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
