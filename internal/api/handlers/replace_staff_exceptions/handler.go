package replace_staff_exceptions

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
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExceptions  = "некорректный набор исключений"
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

// Handle PUT /api/v1/staff/{staffId}/schedule-exceptions
// Полная замена набора: отсутствующие даты удаляются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/schedule-exceptions - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.ReplaceExceptionsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/schedule-exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceStaffExceptions(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/schedule-exceptions - Invalid exceptions: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidExceptions)

		default:
			h.logger.Error("PUT /staff/{id}/schedule-exceptions - Failed to replace exceptions: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/schedule-exceptions - Exceptions replaced: staff_id=%d, count=%d",
		staffID, len(result.Exceptions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
