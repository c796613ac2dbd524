package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию расписания
	cfg, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация не сохранялась, используем дефолтную
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default schedule config")
	}

	// 4. Генерируем кандидатные слоты
	candidates, err := generateTimeSlots(cfg, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// Для пустого дня не ходим в БД
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidate slots for %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 5. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		Date: ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Убираем занятые слоты
	available := filterBookedSlots(candidates, bookings)

	slots := make([]Slot, len(available))
	for i, s := range available {
		slots[i] = Slot{
			StartTime:       s,
			DurationMinutes: cfg.SlotDurationMinutes,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for %s",
		len(slots), len(candidates), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: slots}, nil
}
