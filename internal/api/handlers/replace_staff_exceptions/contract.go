package replace_staff_exceptions

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	ReplaceStaffExceptions(ctx context.Context, staffID int64, req *models.ReplaceExceptionsRequest) (*models.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
