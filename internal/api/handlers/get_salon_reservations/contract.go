package get_salon_reservations

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations/models"
)

type ReservationService interface {
	GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
