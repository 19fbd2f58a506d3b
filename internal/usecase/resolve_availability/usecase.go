package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	scheduleRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/schedule"
	catalogClient "github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
)

// UseCase use case вычисления эффективного окна доступности
// Комбинирует недельные расписания салона и сотрудника с разовыми исключениями
type UseCase struct {
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case вычисления окна доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: salon=%d, staff=%v, date=%s",
		req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование салона и сотрудника
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("ResolveAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if req.StaffID != nil {
		if _, err := uc.catalogClient.GetStaff(ctx, req.SalonID, *req.StaffID); err != nil {
			if errors.Is(err, catalogClient.ErrStaffNotFound) {
				uc.logger.Warn("ResolveAvailability: staff id=%d not found in salon id=%d", *req.StaffID, req.SalonID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("ResolveAvailability: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 3. Эффективное окно салона
	salonWindow, salonOpen, err := uc.ownerWindow(ctx, domain.OwnerSalon, req.SalonID, req.Date)
	if err != nil {
		return nil, err
	}

	// 4. Эффективное окно сотрудника (если сотрудник не указан - окно салона)
	staffWindow, staffOpen := salonWindow, salonOpen
	if req.StaffID != nil {
		staffWindow, staffOpen, err = uc.ownerWindow(ctx, domain.OwnerStaff, *req.StaffID, req.Date)
		if err != nil {
			return nil, err
		}
	}

	// 5. Пересечение окон: бронь возможна только там, где открыты оба
	window, open := intersectWindows(salonWindow, salonOpen, staffWindow, staffOpen)
	if !open {
		uc.logger.Info("ResolveAvailability: closed for salon=%d, staff=%v, date=%s",
			req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))
		return &Response{
			SalonID: req.SalonID,
			StaffID: req.StaffID,
			Date:    req.Date,
			IsOpen:  false,
		}, nil
	}

	uc.logger.Info("ResolveAvailability: window %s-%s for salon=%d, staff=%v, date=%s",
		window.Start, window.End, req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		SalonID: req.SalonID,
		StaffID: req.StaffID,
		Date:    req.Date,
		IsOpen:  true,
		Window:  window,
	}, nil
}

// ownerWindow загружает недельную строку и исключение владельца на дату
// и вычисляет его эффективное окно
func (uc *UseCase) ownerWindow(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) (domain.Window, bool, error) {
	weekly, err := uc.scheduleRepo.GetWeekly(ctx, ownerType, ownerID, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("ResolveAvailability: failed to get weekly schedule for %s id=%d: %v", ownerType, ownerID, err)
		return domain.Window{}, false, fmt.Errorf("%w: failed to get weekly schedule: %v", ErrInternal, err)
	}

	exception, err := uc.scheduleRepo.GetException(ctx, ownerType, ownerID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("ResolveAvailability: failed to get exception for %s id=%d: %v", ownerType, ownerID, err)
		return domain.Window{}, false, fmt.Errorf("%w: failed to get schedule exception: %v", ErrInternal, err)
	}

	window, open := resolveOwnerWindow(weekly, exception)
	return window, open, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
