package list_schedule_exceptions

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	ListExceptions(ctx context.Context, ownerType domain.OwnerType, ownerID int64, from, to time.Time) (*models.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
