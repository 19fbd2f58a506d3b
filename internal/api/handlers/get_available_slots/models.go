package get_available_slots

import (
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	getAvailableSlots "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/get_available_slots"
)

// SlotResponse один слот в HTTP ответе
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	AvailableSheets int    `json:"availableSheets"`
	TotalSheets     int    `json:"totalSheets"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	SalonID            int64          `json:"salonId"`
	StaffID            *int64         `json:"staffId,omitempty"`
	Date               string         `json:"date"`
	DurationMinutes    int            `json:"durationMinutes"`
	GranularityMinutes int            `json:"granularityMinutes"`
	IsOpen             bool           `json:"isOpen"`
	Slots              []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(
	salonID int64,
	staffID *int64,
	menuID *int64,
	dateStr string,
	durationMinutes int,
	granularityMinutes int,
) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:            salonID,
		StaffID:            staffID,
		MenuID:             menuID,
		Date:               date,
		DurationMinutes:    durationMinutes,
		GranularityMinutes: granularityMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			AvailableSheets: slot.AvailableSheets,
			TotalSheets:     slot.TotalSheets,
		}
	}

	return &AvailableSlotsResponse{
		SalonID:            resp.SalonID,
		StaffID:            resp.StaffID,
		Date:               resp.Date.Format(domain.DateFormat),
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		IsOpen:             resp.IsOpen,
		Slots:              slots,
	}
}
