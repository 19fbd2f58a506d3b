package models

import "github.com/atsuki-sakai/bocker-scheduling/internal/domain"

// UpdateCapacityRequest запрос на изменение вместимости салона
type UpdateCapacityRequest struct {
	AvailableSheets int `json:"availableSheets"`
}

// CapacityResponse ответ с вместимостью салона
type CapacityResponse struct {
	SalonID         int64 `json:"salonId"`
	AvailableSheets int   `json:"availableSheets"`
	IsDefault       bool  `json:"isDefault"` // true, если используется значение по умолчанию
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.ReservationCapacityConfig, isDefault bool) *CapacityResponse {
	if cfg == nil {
		return nil
	}

	return &CapacityResponse{
		SalonID:         cfg.SalonID,
		AvailableSheets: cfg.AvailableSheets,
		IsDefault:       isDefault,
	}
}
