package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionRole роль анонимной сессии посетителя
const sessionRole = "guest"

var (
	// ErrInvalidSession возвращается при отсутствующем или невалидном
	// сессионном токене
	ErrInvalidSession = errors.New("auth: invalid session token")
)

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer выпускает и проверяет анонимные сессионные токены для
// публичных эндпоинтов (аналог nonce-проверки формы бронирования)
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionIssuer создает издателя сессионных токенов
func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает новый сессионный токен
func (i *SessionIssuer) Issue() (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: sessionRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify проверяет сессионный токен
func (i *SessionIssuer) Verify(tokenStr string) error {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}

	if claims.Role != sessionRole {
		return ErrInvalidSession
	}

	return nil
}
