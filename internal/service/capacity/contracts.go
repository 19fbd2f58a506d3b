package capacity

import (
	"context"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

// CapacityRepository интерфейс репозитория вместимости салона
type CapacityRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.ReservationCapacityConfig, error)
	Upsert(ctx context.Context, cfg *domain.ReservationCapacityConfig) (*domain.ReservationCapacityConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
