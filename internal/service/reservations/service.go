package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	reservationRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/reservation"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations/models"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
)

// toStatusFilter конвертирует опциональный строковый статус в domain фильтр
func toStatusFilter(status *string) (*domain.ReservationStatus, error) {
	if status == nil {
		return nil, nil
	}
	converted, err := models.ToDomainReservationStatus(*status)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

// Service сервис для работы с жизненным циклом броней
// Создание и перенос живут в отдельных use case с сериализуемыми транзакциями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает историю броней клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerReservations(ctx context.Context, req *models.GetCustomerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerReservations: fetching reservations for customer=%d, status=%v", req.CustomerID, req.Status)

	statusFilter, err := toStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetCustomerReservations: invalid status=%s for customer=%d", ptr.Deref(req.Status), req.CustomerID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		reservations, err = s.reservationRepo.ListByCustomer(txCtx, req.CustomerID, statusFilter)
		return err
	})
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: successfully fetched %d reservations for customer=%d", len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// GetSalonReservations получает брони салона с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, дате, статусу и включение архивированных броней
func (s *Service) GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSalonReservations: fetching reservations for salon=%d, staff=%v, date=%v, status=%v, includeArchived=%t",
		req.SalonID, req.StaffID, req.Date, req.Status, req.IncludeArchived)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonReservations: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		reservations, err = s.reservationRepo.ListBySalonWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("GetSalonReservations: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonReservations: successfully fetched %d reservations for salon=%d", len(reservations), req.SalonID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь клиента
// Клиент может отменить только свою бронь
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by customer=%d", reservationID, req.CustomerID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to reservation id=%d", req.CustomerID, reservationID)
		return ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Complete отмечает визит как завершенный
func (s *Service) Complete(ctx context.Context, reservationID int64) error {
	s.logger.Info("Complete: completing reservation id=%d", reservationID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Complete: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCompleted() {
		s.logger.Warn("Complete: reservation id=%d cannot be completed, status=%s", reservationID, reservation.Status)
		return ErrCannotComplete
	}

	if err := s.reservationRepo.Complete(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed reservation id=%d", reservationID)
	return nil
}

// Archive архивирует бронь (мягкое удаление)
// Детализация архивируется вместе с бронью
func (s *Service) Archive(ctx context.Context, reservationID int64) error {
	s.logger.Info("Archive: archiving reservation id=%d", reservationID)

	if err := s.reservationRepo.Archive(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Archive: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Archive: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Archive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Archive: successfully archived reservation id=%d", reservationID)
	return nil
}

// Delete удаляет бронь безвозвратно
// Бронь и ее детализация удаляются в одной транзакции
func (s *Service) Delete(ctx context.Context, reservationID int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", reservationID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.reservationRepo.Delete(txCtx, reservationID)
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", reservationID)
	return nil
}
