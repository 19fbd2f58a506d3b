package create_reservation

import (
	"fmt"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateStartTime проверяет, что для сегодняшней даты время начала еще не прошло
func validateStartTime(date time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	if startTime.IsBefore(types.NewTimeString(now)) {
		return ErrTooLateToBook
	}

	return nil
}

// validateWithinWindow проверяет, что интервал [start, end) полностью лежит в рабочем окне
func validateWithinWindow(window domain.Window, start, end types.TimeString) error {
	if start.IsBefore(window.Start) || end.IsAfter(window.End) {
		return fmt.Errorf("%w: slot %s-%s is outside window %s-%s",
			ErrOutsideWorkingHours, start, end, window.Start, window.End)
	}
	return nil
}

// countSalonOverlaps подсчитывает подтвержденные брони салона, пересекающиеся с интервалом
// Бронь с ID = excludeID пропускается (0 = не исключать ничего)
func countSalonOverlaps(reservations []*domain.Reservation, start, end time.Time, excludeID int64) int {
	count := 0
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.CountsForConflicts() {
			continue
		}
		if res.OverlapsRange(start, end) {
			count++
		}
	}
	return count
}

// hasStaffOverlap проверяет, есть ли у сотрудника подтвержденная бронь, пересекающаяся с интервалом
func hasStaffOverlap(reservations []*domain.Reservation, start, end time.Time, excludeID int64) bool {
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.CountsForConflicts() {
			continue
		}
		if res.OverlapsRange(start, end) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
