package get_available_slots

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
)

// AvailabilityResolver интерфейс use case вычисления эффективного окна
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ListConfirmedForSalonDay(ctx context.Context, salonID int64, date time.Time) ([]*domain.Reservation, error)
	ListConfirmedForStaffDay(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error)
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.ReservationCapacityConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetMenu(ctx context.Context, salonID, menuID int64) (*catalogservice.Menu, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
