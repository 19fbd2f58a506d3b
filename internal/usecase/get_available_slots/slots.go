package get_available_slots

import (
	"fmt"
	"time"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

// generateSlots генерирует упорядоченный список времен начала внутри окна
// Чистая функция от (окно, длительность, шаг, дата, now): при одинаковых входных
// данных результат детерминирован, никаких обращений к хранилищу.
// Кандидат попадает в результат, если начало+длительность помещается в окно.
// Для сегодняшней даты кандидаты, начинающиеся раньше now, исключаются;
// для прошедших дат результат пуст
func generateSlots(
	window domain.Window,
	durationMinutes int,
	granularityMinutes int,
	date time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if isDateInPast(date, now) {
		return []types.TimeString{}, nil
	}

	windowStart, err := window.Start.Minutes()
	if err != nil {
		return nil, err
	}

	windowEnd, err := window.End.Minutes()
	if err != nil {
		return nil, err
	}

	// Минимальное допустимое начало: для сегодняшней даты - текущее время
	minStart := 0
	if isSameDay(date, now) {
		minStart = now.Hour()*60 + now.Minute()
	}

	slots := make([]types.TimeString, 0)
	for cursor := windowStart; cursor+durationMinutes <= windowEnd; cursor += granularityMinutes {
		if cursor < minStart {
			continue
		}
		slots = append(slots, minutesToTimeString(cursor))
	}

	return slots, nil
}

// calculateSlotOccupancy вычисляет занятость мест для каждого кандидата
// Количество свободных мест = вместимость салона минус число подтвержденных
// броней салона, пересекающихся с интервалом слота.
// Слоты, пересекающиеся с бронью указанного сотрудника, исключаются полностью:
// этот сотрудник не может быть в двух бронях одновременно
func calculateSlotOccupancy(
	starts []types.TimeString,
	durationMinutes int,
	date time.Time,
	salonReservations []*domain.Reservation,
	staffReservations []*domain.Reservation,
	availableSheets int,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(starts))

	for _, start := range starts {
		slotStart, err := start.At(date)
		if err != nil {
			return nil, err
		}
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		if countOverlapping(staffReservations, slotStart, slotEnd) > 0 {
			continue
		}

		overlapping := countOverlapping(salonReservations, slotStart, slotEnd)
		free := availableSheets - overlapping
		if free < 0 {
			free = 0
		}

		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			StartTime:       start,
			EndTime:         end,
			AvailableSheets: free,
			TotalSheets:     availableSheets,
		})
	}

	return slots, nil
}

// countOverlapping подсчитывает подтвержденные брони, пересекающиеся с [start, end)
// Пересечение полуинтервалов: граничные случаи (конец одного равен началу другого)
// пересечением не считаются
func countOverlapping(reservations []*domain.Reservation, start, end time.Time) int {
	count := 0
	for _, res := range reservations {
		if !res.CountsForConflicts() {
			continue
		}
		if res.OverlapsRange(start, end) {
			count++
		}
	}
	return count
}

// minutesToTimeString конвертирует минуты с начала дня в "HH:MM"
func minutesToTimeString(minutes int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
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
