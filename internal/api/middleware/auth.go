package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
)

const bearerPrefix = "Bearer "

// AdminAuth проверяет Bearer токен администратора на /admin роутах
func AdminAuth(adminToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			provided := strings.TrimPrefix(header, bearerPrefix)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(adminToken)) != 1 {
				handlers.RespondUnauthorized(w, "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
