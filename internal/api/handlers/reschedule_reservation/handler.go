package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	rescheduleReservation "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID  = "некорректный ID брони"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgReservationNotFound   = "бронь не найдена"
	msgCannotReschedule      = "бронь нельзя перенести"
	msgSalonClosed           = "салон закрыт в выбранную дату"
	msgOutsideWorkingHours   = "выбранное время вне рабочих часов"
	msgInvalidDate           = "некорректная дата визита"
	msgTooLateToBook         = "выбранное время уже прошло"
	msgCapacityConflict      = "все места салона в это время заняты"
	msgDoubleBookingConflict = "сотрудник уже занят в это время"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrCapacityConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Capacity conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeCapacityConflict, msgCapacityConflict)

		case errors.Is(err, rescheduleReservation.ErrDoubleBookingConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Double booking conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeDoubleBookingConflict, msgDoubleBookingConflict)

		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, rescheduleReservation.ErrCannotReschedule):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Cannot reschedule: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleReservation.ErrSalonClosed):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Salon closed: reservation_id=%d, date=%s", reservationID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, rescheduleReservation.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Outside working hours: reservation_id=%d, time=%s",
				reservationID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleReservation.ErrInvalidDate):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid date: reservation_id=%d, date=%s", reservationID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleReservation.ErrTooLateToBook):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Too late to book: reservation_id=%d, time=%s",
				reservationID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Reservation rescheduled: reservation_id=%d, date=%s, time=%s",
		reservationID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
