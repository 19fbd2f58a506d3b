package domain

// Default configuration values
const (
	DefaultAvailableSheets    = 3
	DefaultGranularityMinutes = 30
)

// Business validation constants
const (
	MinAvailableSheets    = 1
	MaxAvailableSheets    = 100
	MinDurationMinutes    = 5
	MaxDurationMinutes    = 480 // 8 hours
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 120
	MaxNotesLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы броней, видимых в обычных выборках
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
