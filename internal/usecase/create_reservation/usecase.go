package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	catalogClient "github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	capacityRepo    CapacityRepository
	resolver        AvailabilityResolver
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	capacityRepo CapacityRepository,
	resolver AvailabilityResolver,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		capacityRepo:    capacityRepo,
		resolver:        resolver,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Проверка вместимости и занятости сотрудника выполняется в сериализуемой
// транзакции вместе с записью, чтобы исключить гонку данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, salon=%d, staff=%d, menu=%d, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.StaffID, req.MenuID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату и время начала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	if err := validateStartTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateReservation: start time validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование салона
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateReservation: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateReservation: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 5. Проверяем существование сотрудника
	if _, err := uc.catalogClient.GetStaff(ctx, req.SalonID, req.StaffID); err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateReservation: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateReservation: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 6. Получаем услугу (длительность и денормализуемые данные)
	menu, err := uc.catalogClient.GetMenu(ctx, req.SalonID, req.MenuID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMenuNotFound) {
			uc.logger.Warn("CreateReservation: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateReservation: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	endTime, err := req.StartTime.AddMinutes(menu.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot crosses midnight: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Вычисляем эффективное окно (салон + сотрудник + исключения)
	window, err := uc.resolver.Execute(ctx, &resolveAvailability.Request{
		SalonID: req.SalonID,
		StaffID: ptr.Ptr(req.StaffID),
		Date:    req.Date,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	if !window.IsOpen {
		uc.logger.Warn("CreateReservation: closed on %s for salon=%d, staff=%d",
			req.Date.Format(domain.DateFormat), req.SalonID, req.StaffID)
		return nil, ErrSalonClosed
	}

	// 8. Проверяем, что интервал лежит в рабочем окне
	if err := validateWithinWindow(window.Window, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// Абсолютные моменты начала/конца
	startInstant, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	endInstant, err := endTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 9. Выполняем проверки пересечений и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Получаем вместимость салона (дефолт, если не настроена)
		capacityCfg, err := uc.capacityRepo.GetBySalon(txCtx, req.SalonID)
		if err != nil {
			if !errors.Is(err, capacityRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateReservation: failed to get capacity config: %v", err)
				return fmt.Errorf("%w: failed to get capacity config: %v", ErrInternal, err)
			}
			capacityCfg = domain.DefaultCapacityConfig(req.SalonID)
			uc.logger.Info("CreateReservation: using default capacity for salon=%d", req.SalonID)
		}

		// 9.2. Получаем подтвержденные брони салона на дату с блокировкой (FOR UPDATE)
		salonReservations, err := uc.reservationRepo.ListConfirmedForSalonDay(txCtx, req.SalonID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list salon reservations: %v", err)
			return fmt.Errorf("%w: failed to list salon reservations: %v", ErrInternal, err)
		}

		// 9.3. Проверяем вместимость салона
		// При availableSheets = 3 допустимо 0, 1 или 2 пересекающиеся брони
		overlapping := countSalonOverlaps(salonReservations, startInstant, endInstant, 0)
		if overlapping >= capacityCfg.AvailableSheets {
			uc.logger.Warn("CreateReservation: capacity conflict, %d/%d sheets taken",
				overlapping, capacityCfg.AvailableSheets)
			return ErrCapacityConflict
		}

		// 9.4. Проверяем занятость сотрудника
		staffReservations, err := uc.reservationRepo.ListConfirmedForStaffDay(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list staff reservations: %v", err)
			return fmt.Errorf("%w: failed to list staff reservations: %v", ErrInternal, err)
		}

		if hasStaffOverlap(staffReservations, startInstant, endInstant, 0) {
			uc.logger.Warn("CreateReservation: staff id=%d already booked at %s", req.StaffID, req.StartTime)
			return ErrDoubleBookingConflict
		}

		uc.logger.Info("CreateReservation: slot available, %d/%d sheets taken",
			overlapping, capacityCfg.AvailableSheets)

		// 9.5. Создаем бронь с денормализацией данных услуги
		reservation := &domain.Reservation{
			SalonID:    req.SalonID,
			StaffID:    req.StaffID,
			CustomerID: req.CustomerID,
			MenuID:     req.MenuID,
			Date:       req.Date,
			StartTime:  startInstant,
			EndTime:    endInstant,
			Status:     domain.StatusConfirmed,
			Detail: domain.ReservationDetail{
				MenuName:        menu.Name,
				MenuPrice:       getMenuPrice(menu),
				DurationMinutes: menu.DurationMinutes,
				Notes:           req.Notes,
			},
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		StaffID:         result.StaffID,
		CustomerID:      result.CustomerID,
		MenuID:          result.MenuID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Status:          string(result.Status),
		MenuName:        result.Detail.MenuName,
		MenuPrice:       result.Detail.MenuPrice,
		DurationMinutes: result.Detail.DurationMinutes,
		Notes:           result.Detail.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getMenuPrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getMenuPrice(menu *catalogClient.Menu) float64 {
	if menu.Price == nil {
		return 0.0
	}
	return *menu.Price
}
