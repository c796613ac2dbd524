package submit_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	// активным бронированием
	ErrSlotNotAvailable = errors.New("submit_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не является валидным
	// слотом расписания (не кратно шагу, вне рабочих часов, недоступный
	// день или нарушен буфер бронирования)
	ErrInvalidTimeSlot = errors.New("submit_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
