package get_customer_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
	"github.com/atsuki-sakai/bocker-scheduling/internal/api/middleware"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgMissingCustomerID = "отсутствует ID клиента"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус брони"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/reservations
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/reservations - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Клиент может просматривать только свою историю
	authCustomerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/reservations - Missing customer ID")
		handlers.RespondUnauthorized(w, msgMissingCustomerID)
		return
	}
	if authCustomerID != customerID {
		h.logger.Warn("GET /customers/{id}/reservations - Access denied: customer_id=%d, auth_customer_id=%d",
			customerID, authCustomerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *string
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status = &statusStr
	}

	result, err := h.service.GetCustomerReservations(r.Context(), &models.GetCustomerReservationsRequest{
		CustomerID: customerID,
		Status:     status,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/reservations - Invalid status: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/reservations - Failed to get reservations: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/reservations - Reservations retrieved: customer_id=%d, count=%d",
		customerID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
