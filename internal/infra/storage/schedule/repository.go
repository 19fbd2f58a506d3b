package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/dbmetrics"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/psqlbuilder"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// Repository репозиторий недельных расписаний и исключений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekly получает строку недельного расписания владельца на день недели
// Отсутствие строки означает "закрыто" и возвращается как ErrScheduleNotFound
func (r *Repository) GetWeekly(ctx context.Context, ownerType domain.OwnerType, ownerID int64, weekday time.Weekday) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_type",
		"owner_id",
		"weekday",
		"is_open",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{
			"owner_type": ownerType,
			"owner_id":   ownerID,
			"weekday":    int(weekday),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	var ws domain.WeeklySchedule
	var weekdayInt int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ws.ID,
		&ws.OwnerType,
		&ws.OwnerID,
		&weekdayInt,
		&ws.IsOpen,
		&ws.StartTime,
		&ws.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - scan schedule: %v", ErrScanRow, err)
	}

	ws.Weekday = time.Weekday(weekdayInt)
	ws.CreatedAt = createdAt.Time
	ws.UpdatedAt = updatedAt.Time

	return &ws, nil
}

// ListWeekly получает все строки недельного расписания владельца, упорядоченные по дню недели
func (r *Repository) ListWeekly(ctx context.Context, ownerType domain.OwnerType, ownerID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_type",
		"owner_id",
		"weekday",
		"is_open",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{
			"owner_type": ownerType,
			"owner_id":   ownerID,
		}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		var ws domain.WeeklySchedule
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&ws.ID,
			&ws.OwnerType,
			&ws.OwnerID,
			&weekdayInt,
			&ws.IsOpen,
			&ws.StartTime,
			&ws.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWeekly - scan row: %v", ErrScanRow, err)
		}

		ws.Weekday = time.Weekday(weekdayInt)
		ws.CreatedAt = createdAt.Time
		ws.UpdatedAt = updatedAt.Time
		schedules = append(schedules, &ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWeekly - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// UpsertWeek заменяет полное недельное расписание владельца
// Строки создаются лениво при первой настройке и далее только обновляются
// (ON CONFLICT по уникальному ключу owner+weekday)
func (r *Repository) UpsertWeek(ctx context.Context, ownerType domain.OwnerType, ownerID int64, week []*domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, ws := range week {
		query, args, err := psqlbuilder.Insert("weekly_schedules").
			Columns(
				"owner_type",
				"owner_id",
				"weekday",
				"is_open",
				"start_time",
				"end_time",
			).
			Values(
				ownerType,
				ownerID,
				int(ws.Weekday),
				ws.IsOpen,
				ws.StartTime,
				ws.EndTime,
			).
			Suffix(`ON CONFLICT (owner_type, owner_id, weekday) DO UPDATE
				SET is_open = EXCLUDED.is_open,
				    start_time = EXCLUDED.start_time,
				    end_time = EXCLUDED.end_time,
				    updated_at = NOW()`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: UpsertWeek - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertWeek - execute upsert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// GetException получает исключение владельца на конкретную дату
func (r *Repository) GetException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{
			"owner_type":     ownerType,
			"owner_id":       ownerID,
			"exception_date": date,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetException - build select query: %v", ErrBuildQuery, err)
	}

	ex, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetException - scan exception: %v", ErrScanRow, err)
	}

	return ex, nil
}

// ListExceptions получает исключения владельца за период [from, to]
func (r *Repository) ListExceptions(ctx context.Context, ownerType domain.OwnerType, ownerID int64, from, to time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{
			"owner_type": ownerType,
			"owner_id":   ownerID,
		}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		Where(squirrel.LtOrEq{"exception_date": to}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		ex, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// UpsertException создает или обновляет исключение владельца на дату
func (r *Repository) UpsertException(ctx context.Context, ex *domain.ScheduleException) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"owner_type",
			"owner_id",
			"exception_date",
			"start_time",
			"end_time",
			"kind",
			"notes",
		).
		Values(
			ex.OwnerType,
			ex.OwnerID,
			ex.Date,
			ex.StartTime,
			ex.EndTime,
			ex.Kind,
			ex.Notes,
		).
		Suffix(`ON CONFLICT (owner_type, owner_id, exception_date) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    kind = EXCLUDED.kind,
			    notes = EXCLUDED.notes,
			    updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertException - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertException - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteException удаляет исключение владельца на дату
func (r *Repository) DeleteException(ctx context.Context, ownerType domain.OwnerType, ownerID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{
			"owner_type":     ownerType,
			"owner_id":       ownerID,
			"exception_date": date,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// DeleteExceptionsNotIn удаляет все исключения владельца, даты которых
// отсутствуют в keepDates. Используется set-реконсиляцией исключений сотрудника
func (r *Repository) DeleteExceptionsNotIn(ctx context.Context, ownerType domain.OwnerType, ownerID int64, keepDates []time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{
			"owner_type": ownerType,
			"owner_id":   ownerID,
		})

	if len(keepDates) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"exception_date": keepDates})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteExceptionsNotIn - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteExceptionsNotIn - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

var exceptionColumns = []string{
	"id",
	"owner_type",
	"owner_id",
	"exception_date",
	"start_time",
	"end_time",
	"kind",
	"notes",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var ex domain.ScheduleException
	var startTime, endTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&ex.ID,
		&ex.OwnerType,
		&ex.OwnerID,
		&ex.Date,
		&startTime,
		&endTime,
		&ex.Kind,
		&ex.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ex.StartTime, err = nullTimeString(startTime); err != nil {
		return nil, err
	}
	if ex.EndTime, err = nullTimeString(endTime); err != nil {
		return nil, err
	}

	ex.CreatedAt = createdAt.Time
	ex.UpdatedAt = updatedAt.Time

	return &ex, nil
}

// nullTimeString конвертирует NULLable колонку TIME в *types.TimeString
// Postgres возвращает TIME как "10:00:00", берём только "HH:MM"
func nullTimeString(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}

	s := v.String
	if len(s) > 5 {
		s = s[:5]
	}

	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
