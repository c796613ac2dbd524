package submit_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Name      string           // Имя клиента
	Email     string           // Email клиента
	Phone     string           // Телефон клиента
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Message   *string          // Сообщение клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID uuid.UUID        // Публичный идентификатор бронирования
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования (pending_approval)
	CreatedAt time.Time        // Время создания
}
