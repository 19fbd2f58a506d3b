package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday, expected 0 (Sunday) .. 6 (Saturday)")

	// ErrDuplicateWeekday возвращается, когда день недели указан дважды
	ErrDuplicateWeekday = errors.New("duplicate weekday")

	// ErrInvalidTimeRange возвращается, когда окно задано некорректно
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidKind возвращается при некорректном типе исключения
	ErrInvalidKind = errors.New("invalid exception kind")
)

// Request модели

// DayInput входные данные одного дня недельного расписания
type DayInput struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"` // "HH:MM", обязательно при isOpen
	EndTime   string `json:"endTime,omitempty"`   // "HH:MM", обязательно при isOpen
}

// SetWeekRequest запрос на полную замену недельного расписания владельца
type SetWeekRequest struct {
	Days []DayInput `json:"days"`
}

// ToDomainWeek конвертирует запрос в domain модели с валидацией
// Формат HH:MM и порядок границ окна проверяются здесь, на записи
func (r *SetWeekRequest) ToDomainWeek(ownerType domain.OwnerType, ownerID int64) ([]*domain.WeeklySchedule, error) {
	seen := make(map[int]bool, len(r.Days))
	week := make([]*domain.WeeklySchedule, 0, len(r.Days))

	for _, day := range r.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, day.Weekday)
		}
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateWeekday, day.Weekday)
		}
		seen[day.Weekday] = true

		schedule := &domain.WeeklySchedule{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			Weekday:   time.Weekday(day.Weekday),
			IsOpen:    day.IsOpen,
		}

		if day.IsOpen {
			start, end, err := parseWindow(day.StartTime, day.EndTime)
			if err != nil {
				return nil, err
			}
			schedule.StartTime = start
			schedule.EndTime = end
		}

		week = append(week, schedule)
	}

	return week, nil
}

// ExceptionInput входные данные одного исключения
// Отсутствие startTime и endTime означает "закрыто весь день"
type ExceptionInput struct {
	Date      string  `json:"date"` // "YYYY-MM-DD"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Kind      string  `json:"kind"` // holiday | leave | irregular
	Notes     *string `json:"notes,omitempty"`
}

// ToDomainException конвертирует входные данные в domain модель с валидацией
func (in *ExceptionInput) ToDomainException(ownerType domain.OwnerType, ownerID int64) (*domain.ScheduleException, error) {
	date, err := time.Parse(domain.DateFormat, in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", in.Date, err)
	}

	kind, err := ToDomainExceptionKind(in.Kind)
	if err != nil {
		return nil, err
	}

	ex := &domain.ScheduleException{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Date:      date,
		Kind:      kind,
		Notes:     in.Notes,
	}

	// Оба времени либо заданы, либо отсутствуют
	if (in.StartTime == nil) != (in.EndTime == nil) {
		return nil, fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidTimeRange)
	}

	if in.StartTime != nil {
		start, end, err := parseWindow(*in.StartTime, *in.EndTime)
		if err != nil {
			return nil, err
		}
		ex.StartTime = &start
		ex.EndTime = &end
	}

	return ex, nil
}

// ReplaceExceptionsRequest запрос на полную замену набора исключений сотрудника
type ReplaceExceptionsRequest struct {
	Exceptions []ExceptionInput `json:"exceptions"`
}

// Response модели

// DayResponse один день недельного расписания
type DayResponse struct {
	Weekday   int    `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// WeekResponse недельное расписание владельца
type WeekResponse struct {
	OwnerType string        `json:"ownerType"`
	OwnerID   int64         `json:"ownerId"`
	Days      []DayResponse `json:"days"`
}

// ExceptionResponse одно исключение из расписания
type ExceptionResponse struct {
	ID        int64   `json:"id"`
	OwnerType string  `json:"ownerType"`
	OwnerID   int64   `json:"ownerId"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Kind      string  `json:"kind"`
	Notes     *string `json:"notes,omitempty"`
}

// ExceptionListResponse список исключений
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// Методы конвертации

// FromDomainWeek конвертирует недельное расписание в DTO
func FromDomainWeek(ownerType domain.OwnerType, ownerID int64, week []*domain.WeeklySchedule) *WeekResponse {
	resp := &WeekResponse{
		OwnerType: string(ownerType),
		OwnerID:   ownerID,
		Days:      make([]DayResponse, 0, len(week)),
	}

	for _, day := range week {
		dayResp := DayResponse{
			Weekday: int(day.Weekday),
			IsOpen:  day.IsOpen,
		}
		if day.IsOpen {
			dayResp.StartTime = day.StartTime.String()
			dayResp.EndTime = day.EndTime.String()
		}
		resp.Days = append(resp.Days, dayResp)
	}

	return resp
}

// FromDomainException конвертирует исключение в DTO
func FromDomainException(ex *domain.ScheduleException) *ExceptionResponse {
	if ex == nil {
		return nil
	}

	resp := &ExceptionResponse{
		ID:        ex.ID,
		OwnerType: string(ex.OwnerType),
		OwnerID:   ex.OwnerID,
		Date:      ex.Date.Format(domain.DateFormat),
		Kind:      string(ex.Kind),
		Notes:     ex.Notes,
	}

	if ex.StartTime != nil {
		start := ex.StartTime.String()
		resp.StartTime = &start
	}
	if ex.EndTime != nil {
		end := ex.EndTime.String()
		resp.EndTime = &end
	}

	return resp
}

// FromDomainExceptionList конвертирует список исключений в DTO
func FromDomainExceptionList(exceptions []*domain.ScheduleException) *ExceptionListResponse {
	resp := &ExceptionListResponse{
		Exceptions: make([]ExceptionResponse, 0, len(exceptions)),
	}

	for _, ex := range exceptions {
		if converted := FromDomainException(ex); converted != nil {
			resp.Exceptions = append(resp.Exceptions, *converted)
		}
	}

	return resp
}

// ToDomainExceptionKind конвертирует строку в domain.ExceptionKind с валидацией
func ToDomainExceptionKind(kind string) (domain.ExceptionKind, error) {
	k := domain.ExceptionKind(kind)

	validKinds := []domain.ExceptionKind{
		domain.ExceptionHoliday,
		domain.ExceptionLeave,
		domain.ExceptionIrregular,
	}

	for _, valid := range validKinds {
		if k == valid {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// parseWindow валидирует пару HH:MM и проверяет, что начало раньше конца
func parseWindow(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return "", "", fmt.Errorf("invalid startTime %q: %w", startStr, err)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return "", "", fmt.Errorf("invalid endTime %q: %w", endStr, err)
	}

	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidTimeRange, start, end)
	}

	return start, end, nil
}
