package submit_booking

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must not exceed %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must not exceed %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

// validateSlot проверяет, что запрошенное время является валидным слотом
// расписания на эту дату: сетка слотов генерируется заново и время должно
// совпасть с одним из кандидатов
func validateSlot(cfg *domain.ScheduleConfig, date time.Time, startTime types.TimeString, now time.Time) error {
	candidates, err := generateTimeSlots(cfg, date, now)
	if err != nil {
		return fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	for _, slot := range candidates {
		if slot == startTime {
			return nil
		}
	}

	return ErrInvalidTimeSlot
}
