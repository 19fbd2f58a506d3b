package set_weekly_schedule

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules/models"
)

type ScheduleService interface {
	SetWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64, req *models.SetWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
