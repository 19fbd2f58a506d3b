package delete_salon_exception

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

type ScheduleService interface {
	DeleteException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
