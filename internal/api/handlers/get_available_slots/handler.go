package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	getAvailableSlots "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidMenuID      = "некорректный ID услуги"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "некорректная длительность услуги"
	msgInvalidGranularity = "некорректный шаг генерации слотов"
	msgMissingDuration    = "длительность либо ID услуги обязательны"
	msgSalonNotFound      = "салон не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgMenuNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: date (required, YYYY-MM-DD), staffId, menuId,
// durationMinutes (required without menuId), granularityMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()

	var staffID *int64
	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		parsed, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &parsed
	}

	var menuID *int64
	if menuIDStr := query.Get("menuId"); menuIDStr != "" {
		parsed, err := strconv.ParseInt(menuIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid menu ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMenuID)
			return
		}
		menuID = &parsed
	}

	durationMinutes := 0
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	granularityMinutes := 0
	if granularityStr := query.Get("granularityMinutes"); granularityStr != "" {
		granularityMinutes, err = strconv.Atoi(granularityStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, staffID, menuID, dateStr, durationMinutes, granularityMinutes)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Staff not found: salon_id=%d, staff_id=%v", salonID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrMenuNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Menu not found: salon_id=%d, menu_id=%v", salonID, menuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingDuration)

		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved: salon_id=%d, staff_id=%v, slots_count=%d",
		salonID, staffID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
