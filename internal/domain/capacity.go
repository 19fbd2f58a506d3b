package domain

import "time"

// ReservationCapacityConfig конфигурация вместимости салона
// AvailableSheets - число посадочных мест (станций), то есть максимум
// одновременных подтвержденных броней по всему салону
type ReservationCapacityConfig struct {
	ID              int64
	SalonID         int64
	AvailableSheets int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCapacityConfig возвращает конфигурацию по умолчанию для салона
// Используется, когда салон не настраивал вместимость
func DefaultCapacityConfig(salonID int64) *ReservationCapacityConfig {
	return &ReservationCapacityConfig{
		SalonID:         salonID,
		AvailableSheets: DefaultAvailableSheets,
	}
}
