package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// cancellationTokenBytes длина токена отмены в байтах (64 hex-символа)
const cancellationTokenBytes = 32

// NewCancellationToken генерирует непредсказуемый токен отмены.
// Токен - это secret capability: знание токена равно праву отменить
// бронирование, поэтому только криптографический источник случайности.
func NewCancellationToken() (string, error) {
	buf := make([]byte, cancellationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: failed to generate cancellation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// VerifyCancellationToken сравнивает токены за константное время
func VerifyCancellationToken(stored, provided string) bool {
	if stored == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
