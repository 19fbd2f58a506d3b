package get_availability

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID   int64  `json:"salonId"`
	StaffID   *int64 `json:"staffId,omitempty"`
	Date      string `json:"date"`
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(salonID int64, staffID *int64, dateStr string) (*resolveAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &resolveAvailability.Request{
		SalonID: salonID,
		StaffID: staffID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		SalonID: resp.SalonID,
		StaffID: resp.StaffID,
		Date:    resp.Date.Format(domain.DateFormat),
		IsOpen:  resp.IsOpen,
	}

	if resp.IsOpen {
		result.StartTime = resp.Window.Start.String()
		result.EndTime = resp.Window.End.String()
	}

	return result
}
