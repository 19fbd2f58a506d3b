package update_capacity

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/service/capacity/models"
)

type CapacityService interface {
	Update(ctx context.Context, salonID int64, req *models.UpdateCapacityRequest) (*models.CapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
