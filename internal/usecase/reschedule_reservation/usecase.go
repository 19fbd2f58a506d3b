package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	reservationRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/reservation"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
)

// UseCase use case для переноса брони на другое время
type UseCase struct {
	reservationRepo ReservationRepository
	capacityRepo    CapacityRepository
	resolver        AvailabilityResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	capacity CapacityRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: repo,
		capacityRepo:    capacity,
		resolver:        resolver,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса брони
// Проверки пересечений повторяются для нового интервала в сериализуемой
// транзакции; собственная бронь при подсчете пересечений исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: id=%d, date=%s, time=%s",
		req.ReservationID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату и время начала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleReservation: date validation failed: %v", err)
		return nil, err
	}

	if err := validateStartTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("RescheduleReservation: start time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем бронь и проверяем, что ее можно перенести
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if !reservation.CanBeRescheduled() {
		uc.logger.Warn("RescheduleReservation: reservation id=%d in status=%s cannot be rescheduled",
			reservation.ID, reservation.Status)
		return nil, ErrCannotReschedule
	}

	duration := reservation.Detail.DurationMinutes

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("RescheduleReservation: slot crosses midnight: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Вычисляем эффективное окно на новую дату
	window, err := uc.resolver.Execute(ctx, &resolveAvailability.Request{
		SalonID: reservation.SalonID,
		StaffID: ptr.Ptr(reservation.StaffID),
		Date:    req.Date,
	})
	if err != nil {
		uc.logger.Error("RescheduleReservation: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	if !window.IsOpen {
		uc.logger.Warn("RescheduleReservation: closed on %s for salon=%d, staff=%d",
			req.Date.Format(domain.DateFormat), reservation.SalonID, reservation.StaffID)
		return nil, ErrSalonClosed
	}

	// 6. Проверяем, что новый интервал лежит в рабочем окне
	if err := validateWithinWindow(window.Window, req.StartTime, endTime); err != nil {
		uc.logger.Warn("RescheduleReservation: %v", err)
		return nil, err
	}

	startInstant, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	endInstant, err := endTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 7. Выполняем проверки пересечений и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем вместимость салона (дефолт, если не настроена)
		capacityCfg, err := uc.capacityRepo.GetBySalon(txCtx, reservation.SalonID)
		if err != nil {
			if !errors.Is(err, capacityRepo.ErrConfigNotFound) {
				uc.logger.Error("RescheduleReservation: failed to get capacity config: %v", err)
				return fmt.Errorf("%w: failed to get capacity config: %v", ErrInternal, err)
			}
			capacityCfg = domain.DefaultCapacityConfig(reservation.SalonID)
		}

		// 7.2. Получаем подтвержденные брони салона на новую дату с блокировкой (FOR UPDATE)
		salonReservations, err := uc.reservationRepo.ListConfirmedForSalonDay(txCtx, reservation.SalonID, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to list salon reservations: %v", err)
			return fmt.Errorf("%w: failed to list salon reservations: %v", ErrInternal, err)
		}

		// 7.3. Проверяем вместимость салона без учета собственной брони
		overlapping := countSalonOverlaps(salonReservations, startInstant, endInstant, reservation.ID)
		if overlapping >= capacityCfg.AvailableSheets {
			uc.logger.Warn("RescheduleReservation: capacity conflict, %d/%d sheets taken",
				overlapping, capacityCfg.AvailableSheets)
			return ErrCapacityConflict
		}

		// 7.4. Проверяем занятость сотрудника без учета собственной брони
		staffReservations, err := uc.reservationRepo.ListConfirmedForStaffDay(txCtx, reservation.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to list staff reservations: %v", err)
			return fmt.Errorf("%w: failed to list staff reservations: %v", ErrInternal, err)
		}

		if hasStaffOverlap(staffReservations, startInstant, endInstant, reservation.ID) {
			uc.logger.Warn("RescheduleReservation: staff id=%d already booked at %s",
				reservation.StaffID, req.StartTime)
			return ErrDoubleBookingConflict
		}

		// 7.5. Обновляем дату и интервал брони
		if err := uc.reservationRepo.UpdateSchedule(txCtx, reservation.ID, req.Date, startInstant, endInstant); err != nil {
			uc.logger.Error("RescheduleReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Перечитываем бронь для актуального ответа
	updated, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		uc.logger.Error("RescheduleReservation: failed to reload reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleReservation: successfully rescheduled reservation id=%d to %s %s",
		updated.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		ID:              updated.ID,
		SalonID:         updated.SalonID,
		StaffID:         updated.StaffID,
		CustomerID:      updated.CustomerID,
		MenuID:          updated.MenuID,
		Date:            updated.Date,
		StartTime:       updated.StartTime,
		EndTime:         updated.EndTime,
		Status:          string(updated.Status),
		MenuName:        updated.Detail.MenuName,
		MenuPrice:       updated.Detail.MenuPrice,
		DurationMinutes: updated.Detail.DurationMinutes,
		Notes:           updated.Detail.Notes,
		CreatedAt:       updated.CreatedAt,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}
