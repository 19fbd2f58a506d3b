package reschedule_reservation

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// Request модель запроса на перенос брони
type Request struct {
	ReservationID int64            // ID переносимой брони
	Date          time.Time        // Новая дата визита (без времени)
	StartTime     types.TimeString // Новое время начала (например, "10:00")
}

// Response модель ответа с перенесенной бронью
type Response struct {
	ID         int64
	SalonID    int64
	StaffID    int64
	CustomerID int64
	MenuID     int64

	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Status    string

	MenuName        string
	MenuPrice       float64
	DurationMinutes int
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
