package models

import (
	"errors"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	CustomerID         int64  `json:"customerId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerReservationsRequest запрос на получение броней клиента
type GetCustomerReservationsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetSalonReservationsRequest запрос на получение броней салона
type GetSalonReservationsRequest struct {
	SalonID         int64      `json:"salonId"`
	StaffID         *int64     `json:"staffId,omitempty"`         // Фильтр по сотруднику (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате визита (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeArchived bool       `json:"includeArchived,omitempty"` // Включить архивированные брони
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonReservationsRequest) ToDomainFilter() (domain.SalonReservationsFilter, error) {
	filter := domain.SalonReservationsFilter{
		SalonID:         r.SalonID,
		StaffID:         r.StaffID,
		Date:            r.Date,
		IncludeArchived: r.IncludeArchived,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID         int64  `json:"id"`
	SalonID    int64  `json:"salonId"`
	StaffID    int64  `json:"staffId"`
	CustomerID int64  `json:"customerId"`
	MenuID     int64  `json:"menuId"`
	Date       string `json:"date"`      // "2026-03-14"
	StartTime  string `json:"startTime"` // ISO 8601 format
	EndTime    string `json:"endTime"`   // ISO 8601 format
	Status     string `json:"status"`
	Archived   bool   `json:"archived"`

	// Денормализованные данные услуги
	MenuName        string  `json:"menuName"`
	MenuPrice       float64 `json:"menuPrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		SalonID:            r.SalonID,
		StaffID:            r.StaffID,
		CustomerID:         r.CustomerID,
		MenuID:             r.MenuID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.Format(time.RFC3339),
		EndTime:            r.EndTime.Format(time.RFC3339),
		Status:             string(r.Status),
		Archived:           r.Archived,
		MenuName:           r.Detail.MenuName,
		MenuPrice:          r.Detail.MenuPrice,
		DurationMinutes:    r.Detail.DurationMinutes,
		Notes:              r.Detail.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	if r.CompletedAt != nil {
		completedStr := r.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if converted := FromDomainReservation(reservation); converted != nil {
			resp.Reservations[i] = *converted
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
