package domain

import "time"

// CancellationDeadline возвращает момент, после которого самостоятельная
// отмена недоступна. Второе значение false - дедлайна нет.
func CancellationDeadline(b *Booking, cfg *ScheduleConfig) (time.Time, bool) {
	if cfg.CancellationDeadlineHours == 0 {
		return time.Time{}, false
	}
	startsAt, err := b.StartsAt()
	if err != nil {
		return time.Time{}, false
	}
	return startsAt.Add(-time.Duration(cfg.CancellationDeadlineHours) * time.Hour), true
}

// CanCancel reports whether self-service cancellation is permitted at the
// given moment. Status checks are handled separately by the lifecycle
// service; this is purely the deadline policy.
func CanCancel(b *Booking, cfg *ScheduleConfig, now time.Time) bool {
	if !cfg.CancellationAllowed {
		return false
	}

	deadline, ok := CancellationDeadline(b, cfg)
	if !ok {
		// Дедлайн не настроен - отмена доступна вплоть до самой записи
		return true
	}

	return !now.After(deadline)
}
