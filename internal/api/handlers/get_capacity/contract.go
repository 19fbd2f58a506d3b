package get_capacity

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/service/capacity/models"
)

type CapacityService interface {
	Get(ctx context.Context, salonID int64) (*models.CapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
