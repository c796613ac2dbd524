package submit_booking

import (
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// generateTimeSlots генерирует кандидатные слоты на день (см. одноимённую
// функцию в usecase получения слотов: сетка обязана совпадать, иначе клиент
// сможет забронировать время, которого нет в выдаче)
func generateTimeSlots(cfg *domain.ScheduleConfig, requestDate, now time.Time) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if isDateInPast(requestDate, now) {
		return slots, nil
	}

	if violatesBookingBuffer(requestDate, now, cfg.BookingBufferHours) {
		return slots, nil
	}

	if !cfg.IsDayAvailable(requestDate.Weekday()) {
		return slots, nil
	}

	current := cfg.StartTime
	for current.IsBefore(cfg.EndTime) {
		slotEnd, err := current.AddMinutes(cfg.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(cfg.EndTime) {
			break
		}

		slots = append(slots, current)

		current = slotEnd
	}

	return slots, nil
}

// isSlotTaken проверяет, занят ли слот активным бронированием.
// Сравнение - точное равенство значений HH:MM.
func isSlotTaken(startTime types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.StartTime == startTime {
			return true
		}
	}
	return false
}

// violatesBookingBuffer проверяет, что дата не ближе к "сейчас", чем
// минимальный буфер бронирования в часах
func violatesBookingBuffer(date, now time.Time, bufferHours int) bool {
	dateStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateStart.Before(now.Add(time.Duration(bufferHours) * time.Hour))
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
