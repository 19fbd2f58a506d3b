package get_weekly_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules"
)

const (
	msgInvalidOwnerType = "некорректный тип владельца расписания"
	msgInvalidOwnerID   = "некорректный ID владельца расписания"
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

// Handle GET /api/v1/{ownerType}/{ownerId}/weekly-schedules
// ownerType: salons | staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerType, err := handlers.ParseOwnerType(vars["ownerType"])
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/weekly-schedules - Invalid owner type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerType)
		return
	}

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/weekly-schedules - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	result, err := h.service.GetWeek(r.Context(), ownerType, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidOwnerType):
			h.logger.Warn("GET /{ownerType}/{id}/weekly-schedules - Invalid owner type: %s", ownerType)
			handlers.RespondBadRequest(w, msgInvalidOwnerType)

		default:
			h.logger.Error("GET /{ownerType}/{id}/weekly-schedules - Failed to get schedule: owner=%s/%d, error=%v",
				ownerType, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /{ownerType}/{id}/weekly-schedules - Schedule retrieved: owner=%s/%d, days=%d",
		ownerType, ownerID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
