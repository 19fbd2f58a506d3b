package resolve_availability

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeekly(ctx context.Context, ownerType domain.OwnerType, ownerID int64, weekday time.Weekday) (*domain.WeeklySchedule, error)
	GetException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) (*domain.ScheduleException, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*catalogservice.Salon, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*catalogservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
