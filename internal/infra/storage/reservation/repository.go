package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/dbmetrics"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/psqlbuilder"
)

// Колонки брони с деталью (JOIN reservation_details)
var reservationColumns = []string{
	"r.id",
	"r.salon_id",
	"r.staff_id",
	"r.customer_id",
	"r.menu_id",
	"r.visit_date",
	"r.start_time",
	"r.end_time",
	"r.status",
	"r.archived",
	"r.cancellation_reason",
	"r.cancelled_at",
	"r.completed_at",
	"r.created_at",
	"r.updated_at",
	"d.menu_name",
	"d.menu_price",
	"d.duration_minutes",
	"d.notes",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронь вместе с детальной строкой
// Бронь и деталь - единое целое: обе вставки выполняются одним executor'ом,
// поэтому вызывающая сторона обязана обернуть Create в транзакцию
// (usecase создания брони делает это через TransactionManager)
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"salon_id",
			"staff_id",
			"customer_id",
			"menu_id",
			"visit_date",
			"start_time",
			"end_time",
			"status",
			"archived",
		).
		Values(
			res.SalonID,
			res.StaffID,
			res.CustomerID,
			res.MenuID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Status,
			res.Archived,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	detailQuery, detailArgs, err := psqlbuilder.Insert("reservation_details").
		Columns(
			"reservation_id",
			"menu_name",
			"menu_price",
			"duration_minutes",
			"notes",
		).
		Values(
			res.ID,
			res.Detail.MenuName,
			res.Detail.MenuPrice,
			res.Detail.DurationMinutes,
			res.Detail.Notes,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build detail insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, detailQuery, detailArgs...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute detail insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронь по ID вместе с деталью
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("reservation_details d ON d.reservation_id = r.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListConfirmedForSalonDay получает подтвержденные неархивированные брони салона на дату
// Используется проверкой вместимости. Деталь не загружается.
// Внутри транзакции строки блокируются FOR UPDATE, чтобы конкурирующие
// попытки бронирования на ту же дату сериализовались
func (r *Repository) ListConfirmedForSalonDay(ctx context.Context, salonID int64, date time.Time) ([]*domain.Reservation, error) {
	return r.listConfirmedForDay(ctx, squirrel.Eq{"salon_id": salonID}, date, "ListConfirmedForSalonDay")
}

// ListConfirmedForStaffDay получает подтвержденные неархивированные брони сотрудника на дату
// Используется проверкой двойного бронирования. Деталь не загружается
func (r *Repository) ListConfirmedForStaffDay(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error) {
	return r.listConfirmedForDay(ctx, squirrel.Eq{"staff_id": staffID}, date, "ListConfirmedForStaffDay")
}

func (r *Repository) listConfirmedForDay(ctx context.Context, owner squirrel.Eq, date time.Time, op string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"customer_id",
		"menu_id",
		"visit_date",
		"start_time",
		"end_time",
		"status",
		"archived",
	).
		From("reservations").
		Where(owner).
		Where(squirrel.Eq{"visit_date": date}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"archived": false}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(
			&res.ID,
			&res.SalonID,
			&res.StaffID,
			&res.CustomerID,
			&res.MenuID,
			&res.Date,
			&res.StartTime,
			&res.EndTime,
			&res.Status,
			&res.Archived,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

// ListByCustomer получает историю броней клиента, опционально фильтруя по статусу
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("reservation_details d ON d.reservation_id = r.id").
		Where(squirrel.Eq{"r.customer_id": customerID}).
		Where(squirrel.Eq{"r.archived": false}).
		OrderBy("r.visit_date DESC, r.start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows, "ListByCustomer")
}

// ListBySalonWithFilter получает брони салона с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, дате, статусу и включению архива
func (r *Repository) ListBySalonWithFilter(ctx context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("reservation_details d ON d.reservation_id = r.id").
		Where(squirrel.Eq{"r.salon_id": filter.SalonID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.staff_id": *filter.StaffID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.visit_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if !filter.IncludeArchived {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.archived": false})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("r.start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("r.visit_date DESC, r.start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows, "ListBySalonWithFilter")
}

// UpdateSchedule обновляет дату и время брони (перенос)
// Вызывается только после повторной проверки конфликтов в той же транзакции
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date, startTime, endTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("visit_date", date).
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSchedule")
}

// UpdateStatus обновляет статус брони
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет бронь с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// Complete помечает бронь завершенной
func (r *Repository) Complete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCompleted).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Complete")
}

// Archive архивирует бронь (мягкое удаление)
// Деталь архивируется вместе с бронью: флаг живет на брони,
// деталь доступна только через JOIN к ней
func (r *Repository) Archive(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("archived", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Archive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Archive")
}

// Delete физически удаляет бронь вместе с деталью
// Деталь удаляется первой; вызывающая сторона оборачивает Delete в транзакцию,
// чтобы бронь и деталь исчезли как единое целое
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	detailQuery, detailArgs, err := psqlbuilder.Delete("reservation_details").
		Where(squirrel.Eq{"reservation_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build detail delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, detailQuery, detailArgs...); err != nil {
		return fmt.Errorf("%w: Delete - execute detail delete: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// execExpectingRow выполняет запрос и возвращает ErrReservationNotFound,
// если ни одна строка не была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.SalonID,
		&res.StaffID,
		&res.CustomerID,
		&res.MenuID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.Archived,
		&res.CancellationReason,
		&res.CancelledAt,
		&res.CompletedAt,
		&createdAt,
		&updatedAt,
		&res.Detail.MenuName,
		&res.Detail.MenuPrice,
		&res.Detail.DurationMinutes,
		&res.Detail.Notes,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows, op string) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}
