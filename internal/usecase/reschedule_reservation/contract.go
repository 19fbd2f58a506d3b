package reschedule_reservation

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListConfirmedForSalonDay(ctx context.Context, salonID int64, date time.Time) ([]*domain.Reservation, error)
	ListConfirmedForStaffDay(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error)
	UpdateSchedule(ctx context.Context, id int64, date, startTime, endTime time.Time) error
}

// CapacityRepository интерфейс репозитория вместимости салона
type CapacityRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.ReservationCapacityConfig, error)
}

// AvailabilityResolver интерфейс use case вычисления эффективного окна
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
