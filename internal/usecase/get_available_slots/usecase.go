package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	catalogClient "github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
)

// UseCase use case получения доступных слотов для бронирования
// Конвейер: эффективное окно -> генерация кандидатов -> занятость мест
type UseCase struct {
	resolver        AvailabilityResolver
	reservationRepo ReservationRepository
	capacityRepo    CapacityRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver AvailabilityResolver,
	reservationRepo ReservationRepository,
	capacityRepo CapacityRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		reservationRepo: reservationRepo,
		capacityRepo:    capacityRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, staff=%v, menu=%v, date=%s",
		req.SalonID, req.StaffID, req.MenuID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultGranularityMinutes
	}

	// 2. Определяем длительность: из услуги, если она указана
	duration := req.DurationMinutes
	if req.MenuID != nil {
		menu, err := uc.catalogClient.GetMenu(ctx, req.SalonID, *req.MenuID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrMenuNotFound) {
				uc.logger.Warn("GetAvailableSlots: menu id=%d not found", *req.MenuID)
				return nil, ErrMenuNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get menu id=%d: %v", *req.MenuID, err)
			return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
		}
		duration = menu.DurationMinutes
	}

	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	// 3. Вычисляем эффективное окно (салон + сотрудник + исключения)
	window, err := uc.resolver.Execute(ctx, &resolveAvailability.Request{
		SalonID: req.SalonID,
		StaffID: req.StaffID,
		Date:    req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrSalonNotFound):
			return nil, ErrSalonNotFound
		case errors.Is(err, resolveAvailability.ErrStaffNotFound):
			return nil, ErrStaffNotFound
		case errors.Is(err, resolveAvailability.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to resolve availability: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}
	}

	if !window.IsOpen {
		uc.logger.Info("GetAvailableSlots: closed on %s for salon=%d, staff=%v",
			req.Date.Format(domain.DateFormat), req.SalonID, req.StaffID)
		return &Response{
			SalonID:            req.SalonID,
			StaffID:            req.StaffID,
			Date:               req.Date,
			DurationMinutes:    duration,
			GranularityMinutes: granularity,
			IsOpen:             false,
			Slots:              []Slot{},
		}, nil
	}

	// 4. Генерируем кандидатов начала
	now := uc.timeProvider.Now()
	starts, err := generateSlots(window.Window, duration, granularity, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Загружаем вместимость салона (дефолт, если не настроена)
	capacityCfg, err := uc.capacityRepo.GetBySalon(ctx, req.SalonID)
	if err != nil {
		if !errors.Is(err, capacityRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get capacity config: %v", err)
			return nil, fmt.Errorf("%w: failed to get capacity config: %v", ErrInternal, err)
		}
		capacityCfg = domain.DefaultCapacityConfig(req.SalonID)
	}

	// 6. Загружаем подтвержденные брони салона и сотрудника на дату
	salonReservations, err := uc.reservationRepo.ListConfirmedForSalonDay(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list salon reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list salon reservations: %v", ErrInternal, err)
	}

	var staffReservations []*domain.Reservation
	if req.StaffID != nil {
		staffReservations, err = uc.reservationRepo.ListConfirmedForStaffDay(ctx, *req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list staff reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff reservations: %v", ErrInternal, err)
		}
	}

	// 7. Вычисляем занятость мест для каждого кандидата
	slots, err := calculateSlotOccupancy(
		starts,
		duration,
		req.Date,
		salonReservations,
		staffReservations,
		capacityCfg.AvailableSheets,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate occupancy: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for salon=%d, staff=%v, date=%s",
		len(slots), req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		SalonID:            req.SalonID,
		StaffID:            req.StaffID,
		Date:               req.Date,
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
		IsOpen:             true,
		Slots:              slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.MenuID != nil && *req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	if req.MenuID == nil && req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes is required when menuID is not set", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GranularityMinutes != 0 &&
		(req.GranularityMinutes < domain.MinGranularityMinutes || req.GranularityMinutes > domain.MaxGranularityMinutes) {
		return fmt.Errorf("%w: granularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}

	return nil
}
