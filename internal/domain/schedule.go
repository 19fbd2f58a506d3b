package domain

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// OwnerType владелец расписания: салон или сотрудник
type OwnerType string

const (
	OwnerSalon OwnerType = "salon"
	OwnerStaff OwnerType = "staff"
)

// IsValid возвращает true для известного типа владельца
func (o OwnerType) IsValid() bool {
	return o == OwnerSalon || o == OwnerStaff
}

// ExceptionKind тип разового исключения из расписания
type ExceptionKind string

const (
	ExceptionHoliday   ExceptionKind = "holiday"
	ExceptionLeave     ExceptionKind = "leave"
	ExceptionIrregular ExceptionKind = "irregular"
)

// WeeklySchedule повторяющееся недельное расписание
// Одна активная строка на (ownerType, ownerID, weekday)
type WeeklySchedule struct {
	ID        int64
	OwnerType OwnerType
	OwnerID   int64
	Weekday   time.Weekday // 0 = Sunday .. 6 = Saturday
	IsOpen    bool
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleException разовое исключение на конкретную дату
// Полностью перекрывает недельное расписание владельца в эту дату.
// StartTime/EndTime == nil означает "закрыто весь день"
type ScheduleException struct {
	ID        int64
	OwnerType OwnerType
	OwnerID   int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Kind      ExceptionKind
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosedAllDay возвращает true, если исключение закрывает владельца на весь день
func (e *ScheduleException) IsClosedAllDay() bool {
	return e.StartTime == nil || e.EndTime == nil
}

// Window эффективное окно доступности на одну дату
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// IsZero возвращает true для пустого окна
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Intersect возвращает пересечение двух окон
// Второй результат false, если окна не пересекаются
func (w Window) Intersect(other Window) (Window, bool) {
	start := w.Start
	if other.Start.IsAfter(start) {
		start = other.Start
	}

	end := w.End
	if other.End.IsBefore(end) {
		end = other.End
	}

	if !start.IsBefore(end) {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}
