package submit_booking

import (
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	submitBooking "github.com/theterminalguy/wp-booking-service/internal/usecase/submit_booking"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Message     *string `json:"message,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID   string `json:"bookingId"` // публичный UUID
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// ToDateOnly парсит дату формата YYYY-MM-DD
func ToDateOnly(dateStr string) (time.Time, error) {
	return time.Parse(domain.DateFormat, dateStr)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Date:      bookingDate,
		StartTime: startTime,
		Message:   r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:   resp.BookingID.String(),
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
