package set_salon_exception

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	SetException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, input *models.ExceptionInput) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
