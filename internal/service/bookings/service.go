package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	bookingRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/internal/platform/auth"
	"github.com/theterminalguy/wp-booking-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: подтверждение и отклонение
// заявок администратором, самостоятельная отмена клиентом по токену
type Service struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	notifier      Notifier
	actionTokens  ActionTokenIssuer
	timeProvider  TimeProvider
	publicBaseURL string
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	actionTokens ActionTokenIssuer,
	publicBaseURL string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		notifier:      notifier,
		actionTokens:  actionTokens,
		timeProvider:  &RealTimeProvider{},
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// GetByID получает бронирование по внутреннему ID (админка)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает список бронирований с фильтрацией по дате и статусу (админка)
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Approve подтверждает заявку на бронирование.
// Разрешён только переход pending_approval -> approved; повторное
// подтверждение и подтверждение отменённой заявки отклоняются.
func (s *Service) Approve(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Approve: approving booking id=%d", id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, booking, domain.StatusApproved); err != nil {
		return nil, err
	}

	// Клиент получает ссылку самостоятельной отмены вместе с подтверждением
	cancelURL := ""
	cfg, err := s.getScheduleConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.CancellationAllowed {
		token, err := s.ensureCancellationToken(ctx, booking)
		if err != nil {
			s.logger.Error("Approve: failed to issue cancellation token for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Approve - failed to issue cancellation token: %v", ErrInternal, err)
		}
		cancelURL = s.buildCancelURL(booking.PublicID, token)
	}

	s.notifier.BookingApproved(booking, cancelURL)

	s.logger.Info("Approve: successfully approved booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Reject отклоняет заявку на бронирование.
// Разрешён только переход pending_approval -> rejected.
func (s *Service) Reject(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%d", id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, booking, domain.StatusRejected); err != nil {
		return nil, err
	}

	s.notifier.BookingRejected(booking)

	s.logger.Info("Reject: successfully rejected booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование по публичному ID и токену отмены.
// Токен проверяется до любых проверок статуса, чтобы не раскрывать
// состояние чужого бронирования.
func (s *Service) Cancel(ctx context.Context, publicID uuid.UUID, token string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking public_id=%s", publicID)

	booking, err := s.getBookingByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyCancellationToken(booking, token); err != nil {
		return nil, err
	}

	cfg, err := s.getScheduleConfig(ctx)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
		return nil, ErrInvalidTransition
	}

	if !cfg.CancellationAllowed {
		s.logger.Warn("Cancel: cancellation is disabled, booking id=%d", booking.ID)
		return nil, ErrCancellationDisabled
	}

	if !domain.CanCancel(booking, cfg, s.timeProvider.Now()) {
		s.logger.Warn("Cancel: deadline passed for booking id=%d", booking.ID)
		return nil, ErrDeadlinePassed
	}

	if err := s.transition(ctx, booking, domain.StatusCancelled); err != nil {
		return nil, err
	}

	s.notifier.BookingCancelled(booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// CancellationPreview возвращает данные для страницы подтверждения отмены:
// бронирование, дедлайн и доступность отмены в данный момент. Ничего не меняет.
func (s *Service) CancellationPreview(ctx context.Context, publicID uuid.UUID, token string) (*models.CancellationPreviewResponse, error) {
	s.logger.Info("CancellationPreview: public_id=%s", publicID)

	booking, err := s.getBookingByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyCancellationToken(booking, token); err != nil {
		return nil, err
	}

	cfg, err := s.getScheduleConfig(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.CancellationPreviewResponse{
		Booking:             *models.FromDomainBooking(booking),
		CancellationAllowed: cfg.CancellationAllowed,
		CanCancel: booking.CanBeCancelled() &&
			cfg.CancellationAllowed &&
			domain.CanCancel(booking, cfg, s.timeProvider.Now()),
	}

	if deadline, ok := domain.CancellationDeadline(booking, cfg); ok {
		deadlineStr := deadline.Format("2006-01-02T15:04:05Z07:00")
		resp.Deadline = &deadlineStr
	}

	return resp, nil
}

// ActionTokens выпускает токены админских действий для бронирования.
// Ссылки с этими токенами вставляются в письмо администратору.
func (s *Service) ActionTokens(ctx context.Context, id int64) (*models.ActionTokensResponse, error) {
	s.logger.Info("ActionTokens: issuing tokens for booking id=%d", id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	approveToken, err := s.actionTokens.Issue(auth.ActionApprove, booking.ID)
	if err != nil {
		s.logger.Error("ActionTokens: failed to issue approve token for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ActionTokens - failed to issue token: %v", ErrInternal, err)
	}

	rejectToken, err := s.actionTokens.Issue(auth.ActionReject, booking.ID)
	if err != nil {
		s.logger.Error("ActionTokens: failed to issue reject token for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ActionTokens - failed to issue token: %v", ErrInternal, err)
	}

	return &models.ActionTokensResponse{
		BookingID:    booking.ID,
		ApproveToken: approveToken,
		RejectToken:  rejectToken,
	}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) getBookingByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBookingByPublicID: booking public_id=%s not found", publicID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBookingByPublicID: repository error for public_id=%s: %v", publicID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) getScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("getScheduleConfig: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
	}
	return cfg, nil
}

// transition переводит бронирование в новый статус.
// Обновление в БД guarded условием WHERE status = <текущий>: два
// конкурентных перехода из одного состояния не пройдут оба.
func (s *Service) transition(ctx context.Context, booking *domain.Booking, to domain.BookingStatus) error {
	if !booking.Status.CanTransitionTo(to) {
		s.logger.Warn("transition: booking id=%d, invalid transition %s -> %s", booking.ID, booking.Status, to)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatusFrom(ctx, booking.ID, booking.Status, to); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("transition: booking id=%d, concurrent status change, %s -> %s rejected",
				booking.ID, booking.Status, to)
			return ErrInvalidTransition
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	booking.Status = to
	return nil
}

// verifyCancellationToken сверяет токен запроса с сохранённым токеном
func (s *Service) verifyCancellationToken(booking *domain.Booking, token string) error {
	if booking.CancellationToken == nil || !auth.VerifyCancellationToken(*booking.CancellationToken, token) {
		s.logger.Warn("verifyCancellationToken: token mismatch for booking id=%d", booking.ID)
		return ErrInvalidToken
	}
	return nil
}

// ensureCancellationToken возвращает токен отмены бронирования, выпуская
// его при первом обращении. При гонке двух выпусков побеждает тот, чей
// UPDATE прошёл первым; проигравший перечитывает бронирование.
func (s *Service) ensureCancellationToken(ctx context.Context, booking *domain.Booking) (string, error) {
	if booking.CancellationToken != nil {
		return *booking.CancellationToken, nil
	}

	token, err := auth.NewCancellationToken()
	if err != nil {
		return "", err
	}

	stored, err := s.bookingRepo.SetCancellationToken(ctx, booking.ID, token)
	if err != nil {
		return "", err
	}
	if !stored {
		fresh, err := s.bookingRepo.GetByID(ctx, booking.ID)
		if err != nil {
			return "", err
		}
		if fresh.CancellationToken == nil {
			return "", fmt.Errorf("booking id=%d has no cancellation token after concurrent issue", booking.ID)
		}
		token = *fresh.CancellationToken
	}

	booking.CancellationToken = &token
	return token, nil
}

func (s *Service) buildCancelURL(publicID uuid.UUID, token string) string {
	return fmt.Sprintf("%s/api/v1/bookings/%s/cancel?token=%s", s.publicBaseURL, publicID, token)
}
