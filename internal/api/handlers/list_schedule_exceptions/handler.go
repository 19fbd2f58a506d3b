package list_schedule_exceptions

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
	msgInvalidOwnerType = "некорректный тип владельца расписания"
	msgInvalidOwnerID   = "некорректный ID владельца расписания"
	msgMissingPeriod    = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod    = "некорректный период"
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

// Handle GET /api/v1/{ownerType}/{ownerId}/schedule-exceptions
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ownerType, err := handlers.ParseOwnerType(vars["ownerType"])
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid owner type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerType)
		return
	}

	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	query := r.URL.Query()
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListExceptions(r.Context(), ownerType, ownerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidOwnerType):
			h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid owner type: %s", ownerType)
			handlers.RespondBadRequest(w, msgInvalidOwnerType)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /{ownerType}/{id}/schedule-exceptions - Invalid period: owner=%s/%d", ownerType, ownerID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /{ownerType}/{id}/schedule-exceptions - Failed to list exceptions: owner=%s/%d, error=%v",
				ownerType, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /{ownerType}/{id}/schedule-exceptions - Exceptions retrieved: owner=%s/%d, count=%d",
		ownerType, ownerID, len(result.Exceptions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
