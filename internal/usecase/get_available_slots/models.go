package get_available_slots

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID            int64      // ID салона
	StaffID            *int64     // ID сотрудника (опционально)
	MenuID             *int64     // ID услуги; если задан, длительность берётся из неё
	Date               time.Time  // Дата (без времени)
	DurationMinutes    int        // Длительность услуги; обязательна, если MenuID не задан
	GranularityMinutes int        // Шаг генерации слотов; 0 = значение по умолчанию
}

// Response модель ответа со списком слотов
type Response struct {
	SalonID            int64
	StaffID            *int64
	Date               time.Time
	DurationMinutes    int
	GranularityMinutes int
	IsOpen             bool
	Slots              []Slot
}

// Slot кандидат времени начала с информацией о занятости мест
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания (начало + длительность)
	AvailableSheets int              // Количество свободных мест в этом интервале
	TotalSheets     int              // Общее количество мест салона
}
