package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidToken возвращается, когда токен отмены не совпадает
	ErrInvalidToken = errors.New("invalid cancellation token")

	// ErrDeadlinePassed возвращается, когда срок отмены уже прошёл
	ErrDeadlinePassed = errors.New("cancellation deadline has passed")

	// ErrCancellationDisabled возвращается, когда отмена клиентом выключена
	// в настройках расписания
	ErrCancellationDisabled = errors.New("cancellation is disabled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	// (например, повторное подтверждение или отмена отклонённой заявки)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
