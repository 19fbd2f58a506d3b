package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	scheduleRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/schedule"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

// Service сервис для управления недельными расписаниями и исключениями
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// SetWeek полностью заменяет недельное расписание владельца
// Формат HH:MM и порядок границ окна валидируются до записи
func (s *Service) SetWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64, req *models.SetWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("SetWeek: updating weekly schedule for %s=%d, days=%d", ownerType, ownerID, len(req.Days))

	if !ownerType.IsValid() {
		return nil, ErrInvalidOwnerType
	}

	week, err := req.ToDomainWeek(ownerType, ownerID)
	if err != nil {
		s.logger.Warn("SetWeek: validation failed for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.UpsertWeek(ctx, ownerType, ownerID, week); err != nil {
		s.logger.Error("SetWeek: repository error for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: SetWeek - repository error: %v", ErrInternal, err)
	}

	updated, err := s.scheduleRepo.ListWeekly(ctx, ownerType, ownerID)
	if err != nil {
		s.logger.Error("SetWeek: failed to reload schedule for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: SetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWeek: successfully updated weekly schedule for %s=%d", ownerType, ownerID)
	return models.FromDomainWeek(ownerType, ownerID, updated), nil
}

// GetWeek получает недельное расписание владельца
// Отсутствующие дни означают "закрыто"
func (s *Service) GetWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching weekly schedule for %s=%d", ownerType, ownerID)

	if !ownerType.IsValid() {
		return nil, ErrInvalidOwnerType
	}

	week, err := s.scheduleRepo.ListWeekly(ctx, ownerType, ownerID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(ownerType, ownerID, week), nil
}

// SetException создает или обновляет исключение на конкретную дату
func (s *Service) SetException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, input *models.ExceptionInput) (*models.ExceptionResponse, error) {
	s.logger.Info("SetException: setting exception for %s=%d on %s", ownerType, ownerID, input.Date)

	if !ownerType.IsValid() {
		return nil, ErrInvalidOwnerType
	}

	ex, err := input.ToDomainException(ownerType, ownerID)
	if err != nil {
		s.logger.Warn("SetException: validation failed for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.UpsertException(ctx, ex); err != nil {
		s.logger.Error("SetException: repository error for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: SetException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetException: successfully set exception for %s=%d on %s", ownerType, ownerID, input.Date)
	return models.FromDomainException(ex), nil
}

// DeleteException удаляет исключение на конкретную дату
func (s *Service) DeleteException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) error {
	s.logger.Info("DeleteException: deleting exception for %s=%d on %s", ownerType, ownerID, date.Format(domain.DateFormat))

	if !ownerType.IsValid() {
		return ErrInvalidOwnerType
	}

	if err := s.scheduleRepo.DeleteException(ctx, ownerType, ownerID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception not found for %s=%d on %s",
				ownerType, ownerID, date.Format(domain.DateFormat))
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for %s=%d: %v", ownerType, ownerID, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception for %s=%d on %s",
		ownerType, ownerID, date.Format(domain.DateFormat))
	return nil
}

// ReplaceStaffExceptions полностью заменяет набор исключений сотрудника
// Переданные даты создаются или обновляются, отсутствующие удаляются.
// Выполняется в одной транзакции
func (s *Service) ReplaceStaffExceptions(ctx context.Context, staffID int64, req *models.ReplaceExceptionsRequest) (*models.ExceptionListResponse, error) {
	s.logger.Info("ReplaceStaffExceptions: replacing exceptions for staff=%d, count=%d", staffID, len(req.Exceptions))

	exceptions := make([]*domain.ScheduleException, 0, len(req.Exceptions))
	keepDates := make([]time.Time, 0, len(req.Exceptions))
	seen := make(map[string]bool, len(req.Exceptions))

	for _, input := range req.Exceptions {
		ex, err := input.ToDomainException(domain.OwnerStaff, staffID)
		if err != nil {
			s.logger.Warn("ReplaceStaffExceptions: validation failed for staff=%d: %v", staffID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		dateKey := ex.Date.Format(domain.DateFormat)
		if seen[dateKey] {
			s.logger.Warn("ReplaceStaffExceptions: duplicate date %s for staff=%d", dateKey, staffID)
			return nil, fmt.Errorf("%w: duplicate date %s", ErrInvalidInput, dateKey)
		}
		seen[dateKey] = true

		exceptions = append(exceptions, ex)
		keepDates = append(keepDates, ex.Date)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, ex := range exceptions {
			if err := s.scheduleRepo.UpsertException(txCtx, ex); err != nil {
				return fmt.Errorf("%w: ReplaceStaffExceptions - upsert error: %v", ErrInternal, err)
			}
		}

		if err := s.scheduleRepo.DeleteExceptionsNotIn(txCtx, domain.OwnerStaff, staffID, keepDates); err != nil {
			return fmt.Errorf("%w: ReplaceStaffExceptions - delete error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceStaffExceptions: transaction failed for staff=%d: %v", staffID, err)
		return nil, err
	}

	s.logger.Info("ReplaceStaffExceptions: successfully replaced %d exceptions for staff=%d", len(exceptions), staffID)
	return models.FromDomainExceptionList(exceptions), nil
}

// ListExceptions получает исключения владельца за период
func (s *Service) ListExceptions(ctx context.Context, ownerType domain.OwnerType, ownerID int64, from, to time.Time) (*models.ExceptionListResponse, error) {
	s.logger.Info("ListExceptions: fetching exceptions for %s=%d, from=%s, to=%s",
		ownerType, ownerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if !ownerType.IsValid() {
		return nil, ErrInvalidOwnerType
	}

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	exceptions, err := s.scheduleRepo.ListExceptions(ctx, ownerType, ownerID, from, to)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for %s=%d: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListExceptions: successfully fetched %d exceptions for %s=%d", len(exceptions), ownerType, ownerID)
	return models.FromDomainExceptionList(exceptions), nil
}
