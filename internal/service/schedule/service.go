package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	scheduleRepo "github.com/theterminalguy/wp-booking-service/internal/infra/storage/schedule"
	"github.com/theterminalguy/wp-booking-service/internal/service/schedule/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Get возвращает текущую конфигурацию расписания.
// Пока администратор ничего не сохранял, возвращается дефолтная.
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule config")

	cfg, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("Get: no saved config, returning defaults")
			return models.FromDomainConfig(domain.DefaultScheduleConfig()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update обновляет конфигурацию расписания.
// Поддерживает частичное обновление - обновляются только указанные поля,
// остальные берутся из сохранённой (или дефолтной) конфигурации.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule config")

	// 1. Получаем текущую конфигурацию как основу
	cfg, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("Update: repository error: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		cfg = domain.DefaultScheduleConfig()
	}

	// 2. Применяем обновления
	req.ApplyToConfig(cfg)

	// 3. Валидируем результат целиком
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	updated, err := s.scheduleRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule config")
	return models.FromDomainConfig(updated), nil
}
