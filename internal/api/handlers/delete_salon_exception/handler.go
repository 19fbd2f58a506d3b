package delete_salon_exception

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound       = "исключение не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/salons/{salonId}/schedule-exceptions/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{date} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteException(r.Context(), domain.OwnerSalon, salonID, date); err != nil {
		switch {
		case errors.Is(err, schedules.ErrExceptionNotFound):
			h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{date} - Exception not found: salon_id=%d, date=%s",
				salonID, vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /salons/{id}/schedule-exceptions/{date} - Failed to delete exception: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/schedule-exceptions/{date} - Exception deleted: salon_id=%d, date=%s",
		salonID, vars["date"])
	handlers.RespondNoContent(w)
}
