package schedules

import (
	"context"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний и исключений
type ScheduleRepository interface {
	ListWeekly(ctx context.Context, ownerType domain.OwnerType, ownerID int64) ([]*domain.WeeklySchedule, error)
	UpsertWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64, week []*domain.WeeklySchedule) error
	ListExceptions(ctx context.Context, ownerType domain.OwnerType, ownerID int64, from, to time.Time) ([]*domain.ScheduleException, error)
	UpsertException(ctx context.Context, ex *domain.ScheduleException) error
	DeleteException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) error
	DeleteExceptionsNotIn(ctx context.Context, ownerType domain.OwnerType, ownerID int64, keepDates []time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
