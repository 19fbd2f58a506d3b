package create_reservation

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	SalonID    int64            // ID салона
	StaffID    int64            // ID сотрудника
	CustomerID int64            // ID клиента
	MenuID     int64            // ID услуги
	Date       time.Time        // Дата визита (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной бронью
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

	// Денормализованные данные услуги
	MenuName        string
	MenuPrice       float64
	DurationMinutes int
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
