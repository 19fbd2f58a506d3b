package create_reservation

import (
	"errors"
	"net/http"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	"github.com/atsuki-sakai/bocker-scheduling/internal/api/middleware"
	createReservation "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingCustomerID     = "отсутствует ID клиента"
	msgSalonNotFound         = "салон не найден"
	msgStaffNotFound         = "сотрудник не найден"
	msgMenuNotFound          = "услуга не найдена"
	msgSalonClosed           = "салон закрыт в выбранную дату"
	msgOutsideWorkingHours   = "выбранное время вне рабочих часов"
	msgInvalidDate           = "некорректная дата визита"
	msgTooLateToBook         = "выбранное время уже прошло"
	msgCapacityConflict      = "все места салона в это время заняты"
	msgDoubleBookingConflict = "сотрудник уже занят в это время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing customer ID")
		handlers.RespondUnauthorized(w, msgMissingCustomerID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrCapacityConflict):
			h.logger.Warn("POST /reservations - Capacity conflict: customer_id=%d, salon_id=%d", customerID, req.SalonID)
			handlers.RespondConflict(w, handlers.CodeCapacityConflict, msgCapacityConflict)

		case errors.Is(err, createReservation.ErrDoubleBookingConflict):
			h.logger.Warn("POST /reservations - Double booking conflict: customer_id=%d, staff_id=%d", customerID, req.StaffID)
			handlers.RespondConflict(w, handlers.CodeDoubleBookingConflict, msgDoubleBookingConflict)

		case errors.Is(err, createReservation.ErrSalonNotFound):
			h.logger.Warn("POST /reservations - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createReservation.ErrStaffNotFound):
			h.logger.Warn("POST /reservations - Staff not found: salon_id=%d, staff_id=%d", req.SalonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: salon_id=%d, menu_id=%d", req.SalonID, req.MenuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrSalonClosed):
			h.logger.Warn("POST /reservations - Salon closed: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createReservation.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: salon_id=%d, time=%s", req.SalonID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: customer_id=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: customer_id=%d, time=%s", customerID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, customer_id=%d, salon_id=%d",
		result.ID, customerID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
