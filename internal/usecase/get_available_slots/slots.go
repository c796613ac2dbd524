package get_available_slots

import (
	"time"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// generateTimeSlots генерирует кандидатные слоты на день из конфигурации
// расписания. Возвращает пустой срез, если дата в прошлом, нарушает буфер
// бронирования или выпадает на недоступный день недели.
//
// Слоты идут от StartTime с фиксированным шагом SlotDurationMinutes.
// Слот, который не помещается целиком до EndTime, не эмитится.
func generateTimeSlots(cfg *domain.ScheduleConfig, requestDate, now time.Time) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if isDateInPast(requestDate, now) {
		return slots, nil
	}

	// Дата должна отстоять от "сейчас" минимум на буфер бронирования
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
		// Неполный хвост рабочего дня отбрасывается
		if slotEnd.IsAfter(cfg.EndTime) {
			break
		}

		slots = append(slots, current)

		current = slotEnd
	}

	return slots, nil
}

// filterBookedSlots убирает из кандидатов слоты, занятые активными
// бронированиями. Сравнение - точное равенство значений HH:MM, без
// какой-либо нормализации таймзон. Чистая функция своих аргументов.
func filterBookedSlots(candidates []types.TimeString, bookings []*domain.Booking) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		// Отклонённые и отменённые бронирования слот не блокируют
		if !b.IsActive() {
			continue
		}
		taken[b.StartTime] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot]; ok {
			continue
		}
		available = append(available, slot)
	}

	return available
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
