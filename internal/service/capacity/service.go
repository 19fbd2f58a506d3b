package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/capacity/models"
)

// Service сервис для управления вместимостью салона
type Service struct {
	capacityRepo CapacityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса вместимости
func NewService(capacityRepo CapacityRepository, logger Logger) *Service {
	return &Service{
		capacityRepo: capacityRepo,
		logger:       logger,
	}
}

// Get получает вместимость салона
// Если конфигурация не настроена, возвращает значение по умолчанию
func (s *Service) Get(ctx context.Context, salonID int64) (*models.CapacityResponse, error) {
	s.logger.Info("Get: fetching capacity config for salon=%d", salonID)

	cfg, err := s.capacityRepo.GetBySalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrConfigNotFound) {
			s.logger.Info("Get: no capacity config for salon=%d, using default", salonID)
			return models.FromDomainConfig(domain.DefaultCapacityConfig(salonID), true), nil
		}
		s.logger.Error("Get: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, false), nil
}

// Update создает или обновляет вместимость салона
func (s *Service) Update(ctx context.Context, salonID int64, req *models.UpdateCapacityRequest) (*models.CapacityResponse, error) {
	s.logger.Info("Update: updating capacity config for salon=%d, sheets=%d", salonID, req.AvailableSheets)

	if req.AvailableSheets < domain.MinAvailableSheets || req.AvailableSheets > domain.MaxAvailableSheets {
		s.logger.Warn("Update: invalid availableSheets=%d for salon=%d", req.AvailableSheets, salonID)
		return nil, fmt.Errorf("%w: availableSheets must be between %d and %d",
			ErrInvalidInput, domain.MinAvailableSheets, domain.MaxAvailableSheets)
	}

	cfg, err := s.capacityRepo.Upsert(ctx, &domain.ReservationCapacityConfig{
		SalonID:         salonID,
		AvailableSheets: req.AvailableSheets,
	})
	if err != nil {
		s.logger.Error("Update: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated capacity config for salon=%d", salonID)
	return models.FromDomainConfig(cfg, false), nil
}
