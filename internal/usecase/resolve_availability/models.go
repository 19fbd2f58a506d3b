package resolve_availability

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

// Request модель запроса на вычисление эффективного окна доступности
type Request struct {
	SalonID int64      // ID салона
	StaffID *int64     // ID сотрудника (опционально: без него окно только салона)
	Date    time.Time  // Дата (без времени)
}

// Response модель ответа с эффективным окном
type Response struct {
	SalonID int64
	StaffID *int64
	Date    time.Time

	// IsOpen false означает "закрыто" - окна нет
	IsOpen bool
	Window domain.Window
}
