package capacity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/dbmetrics"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации вместимости салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория вместимости
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalon получает конфигурацию вместимости салона
// Одна строка на салон; отсутствие строки означает дефолтную вместимость
func (r *Repository) GetBySalon(ctx context.Context, salonID int64) (*domain.ReservationCapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"available_sheets",
		"created_at",
		"updated_at",
	).
		From("reservation_capacity_configs").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ReservationCapacityConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.SalonID,
		&cfg.AvailableSheets,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет конфигурацию вместимости салона
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ReservationCapacityConfig) (*domain.ReservationCapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_capacity_configs").
		Columns(
			"salon_id",
			"available_sheets",
		).
		Values(
			cfg.SalonID,
			cfg.AvailableSheets,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE
			SET available_sheets = EXCLUDED.available_sheets,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
