package get_weekly_schedule

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
