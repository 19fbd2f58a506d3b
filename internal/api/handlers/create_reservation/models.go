package create_reservation

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	createReservation "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/create_reservation"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID   int64   `json:"salonId"`
	StaffID   int64   `json:"staffId"`
	MenuID    int64   `json:"menuId"`
	Date      string  `json:"date"`      // "2026-03-14"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	StaffID         int64   `json:"staffId"`
	CustomerID      int64   `json:"customerId"`
	MenuID          int64   `json:"menuId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"` // ISO 8601
	EndTime         string  `json:"endTime"`   // ISO 8601
	Status          string  `json:"status"`
	MenuName        string  `json:"menuName"`
	MenuPrice       float64 `json:"menuPrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		SalonID:    r.SalonID,
		StaffID:    r.StaffID,
		CustomerID: customerID,
		MenuID:     r.MenuID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		StaffID:         resp.StaffID,
		CustomerID:      resp.CustomerID,
		MenuID:          resp.MenuID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		Status:          resp.Status,
		MenuName:        resp.MenuName,
		MenuPrice:       resp.MenuPrice,
		DurationMinutes: resp.DurationMinutes,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
