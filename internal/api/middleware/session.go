package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
)

// sessionHeader заголовок с анонимным сессионным токеном
const sessionHeader = "X-Session-Token"

// SessionVerifier проверяет сессионный токен
type SessionVerifier interface {
	Verify(tokenStr string) error
}

// Session требует валидный анонимный сессионный токен на публичных
// эндпоинтах бронирования (аналог nonce-проверки формы)
func Session(verifier SessionVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(sessionHeader)
			if token == "" {
				handlers.RespondUnauthorized(w, "missing session token")
				return
			}

			if err := verifier.Verify(token); err != nil {
				handlers.RespondUnauthorized(w, "invalid session token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
