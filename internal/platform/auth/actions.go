package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Админские действия, на которые выдаются подписанные токены
const (
	ActionApprove = "approve_booking"
	ActionReject  = "reject_booking"
)

var (
	// ErrInvalidActionToken возвращается при невалидном или чужом токене действия
	ErrInvalidActionToken = errors.New("auth: invalid action token")
)

// actionClaims JWT-клеймы токена действия: токен привязан к конкретному
// действию над конкретным бронированием и ограничен по времени
type actionClaims struct {
	Action    string `json:"action"`
	BookingID int64  `json:"bookingId"`
	jwt.RegisteredClaims
}

// ActionTokenIssuer выпускает и проверяет подписанные токены админских
// действий (approve/reject ссылки в письмах и админке)
type ActionTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewActionTokenIssuer создает издателя токенов действий
func NewActionTokenIssuer(secret string, ttl time.Duration) *ActionTokenIssuer {
	return &ActionTokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен на действие action над бронированием bookingID
func (i *ActionTokenIssuer) Issue(action string, bookingID int64) (string, error) {
	now := time.Now()
	claims := actionClaims{
		Action:    action,
		BookingID: bookingID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign action token: %w", err)
	}
	return signed, nil
}

// Verify проверяет, что токен подписан нами, не истёк и выписан именно
// на это действие и бронирование
func (i *ActionTokenIssuer) Verify(tokenStr, action string, bookingID int64) error {
	var claims actionClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidActionToken
	}

	if claims.Action != action || claims.BookingID != bookingID {
		return ErrInvalidActionToken
	}

	return nil
}
