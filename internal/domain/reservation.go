package domain

import (
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a single salon reservation
// Детальная строка (ReservationDetail) всегда создается, архивируется
// и удаляется вместе с бронью в одной транзакции
type Reservation struct {
	ID         int64
	SalonID    int64
	StaffID    int64
	CustomerID int64
	MenuID     int64

	// Дата визита (без времени) и абсолютные моменты начала/конца
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time

	Status   ReservationStatus
	Archived bool

	Detail ReservationDetail

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationDetail denormalized line item of a reservation
type ReservationDetail struct {
	MenuName        string
	MenuPrice       float64
	DurationMinutes int
	Notes           *string
}

// CountsForConflicts возвращает true, если бронь участвует в проверках пересечений
// Учитываются только подтвержденные неархивированные брони
func (r *Reservation) CountsForConflicts() bool {
	return r.Status == StatusConfirmed && !r.Archived
}

// OverlapsRange проверяет пересечение брони с полуинтервалом [start, end)
// Границы не считаются пересечением: бронь 10:00-11:00 не пересекается со слотом 11:00-12:00
func (r *Reservation) OverlapsRange(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return !r.Archived && (r.Status == StatusPending || r.Status == StatusConfirmed)
}

// CanBeCompleted returns true if the reservation can be completed
func (r *Reservation) CanBeCompleted() bool {
	return !r.Archived && r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation time can still be changed
func (r *Reservation) CanBeRescheduled() bool {
	return !r.Archived && (r.Status == StatusPending || r.Status == StatusConfirmed)
}

// SalonReservationsFilter фильтр для выборки броней салона
type SalonReservationsFilter struct {
	SalonID         int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по сотруднику (опционально)
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeArchived bool               // Включать ли архивированные брони
}
