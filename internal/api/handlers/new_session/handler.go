package new_session

import (
	"net/http"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
)

// SessionResponse HTTP response model
type SessionResponse struct {
	SessionToken string `json:"sessionToken"`
}

type Handler struct {
	issuer SessionIssuer
	logger Logger
}

func NewHandler(issuer SessionIssuer, logger Logger) *Handler {
	return &Handler{
		issuer: issuer,
		logger: logger,
	}
}

// Handle POST /api/v1/session
// Выдает анонимный сессионный токен для публичных эндпоинтов бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Issue()
	if err != nil {
		h.logger.Error("POST /session - Failed to issue session token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /session - Session token issued")
	handlers.RespondJSON(w, http.StatusCreated, SessionResponse{SessionToken: token})
}
