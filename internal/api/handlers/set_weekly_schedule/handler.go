package set_weekly_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

const (
	msgInvalidOwnerType   = "некорректный тип владельца расписания"
	msgInvalidOwnerID     = "некорректный ID владельца расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное недельное расписание"
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

// Handle PUT /api/v1/{ownerType}/{ownerId}/weekly-schedules
// ownerType: salons | staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerType, err := handlers.ParseOwnerType(vars["ownerType"])
	if err != nil {
		h.logger.Warn("PUT /{ownerType}/{id}/weekly-schedules - Invalid owner type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerType)
		return
	}

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /{ownerType}/{id}/weekly-schedules - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req models.SetWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /{ownerType}/{id}/weekly-schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWeek(r.Context(), ownerType, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidOwnerType):
			h.logger.Warn("PUT /{ownerType}/{id}/weekly-schedules - Invalid owner type: %s", ownerType)
			handlers.RespondBadRequest(w, msgInvalidOwnerType)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /{ownerType}/{id}/weekly-schedules - Invalid schedule: owner=%s/%d, error=%v",
				ownerType, ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /{ownerType}/{id}/weekly-schedules - Failed to set schedule: owner=%s/%d, error=%v",
				ownerType, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /{ownerType}/{id}/weekly-schedules - Schedule updated: owner=%s/%d, days=%d",
		ownerType, ownerID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
