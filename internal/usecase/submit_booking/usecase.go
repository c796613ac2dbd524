package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	bookingRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/pkg/ptr"
	"github.com/theterminalguy/wp-booking-service/pkg/txmanager"
)

// UseCase use case для создания заявки на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: date=%s time=%s email=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Booking

	// 2. Проверка доступности слота и вставка выполняются в serializable
	// транзакции: между проверкой и вставкой никто не должен занять слот
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		cfg, err := uc.scheduleRepo.Get(ctx)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		if cfg == nil {
			cfg = domain.DefaultScheduleConfig()
		}

		now := uc.timeProvider.Now()

		// Время должно совпасть с одним из кандидатных слотов расписания
		if err := validateSlot(cfg, req.Date, req.StartTime, now); err != nil {
			return err
		}

		// Активные бронирования на дату блокируются FOR UPDATE
		bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
			Date: ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if isSlotTaken(req.StartTime, bookings) {
			return ErrSlotNotAvailable
		}

		created, err = uc.bookingRepo.Create(ctx, &domain.Booking{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Message:     req.Message,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			Status:      domain.StatusPendingApproval,
		})
		if err != nil {
			// Частичный уникальный индекс - страховка на случай обхода
			// проверки выше
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInvalidTimeSlot) {
			uc.logger.Warn("SubmitBooking: %v", err)
			return nil, err
		}
		// Повторы сериализуемой транзакции исчерпаны: слот оспаривают
		// конкурентные запросы, для клиента это конфликт, а не сбой
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("SubmitBooking: serialization retries exhausted: %v", err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidInput) {
			uc.logger.Error("SubmitBooking: %v", err)
			return nil, err
		}
		uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 3. Уведомления не должны ломать успешное бронирование
	uc.notifier.BookingSubmitted(created)

	uc.logger.Info("SubmitBooking: created booking id=%d public_id=%s", created.ID, created.PublicID)

	return &Response{
		BookingID: created.PublicID,
		Date:      created.BookingDate,
		StartTime: created.StartTime,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
	}, nil
}
