package resolve_availability

import (
	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
)

// resolveOwnerWindow вычисляет эффективное окно одного владельца на дату
// Приоритет: исключение полностью перекрывает недельное расписание.
// Исключение без времени начала/конца означает "закрыто весь день".
// Отсутствующая или закрытая строка недельного расписания означает "закрыто"
func resolveOwnerWindow(weekly *domain.WeeklySchedule, exception *domain.ScheduleException) (domain.Window, bool) {
	if exception != nil {
		if exception.IsClosedAllDay() {
			return domain.Window{}, false
		}
		return domain.Window{Start: *exception.StartTime, End: *exception.EndTime}, true
	}

	if weekly == nil || !weekly.IsOpen {
		return domain.Window{}, false
	}

	if weekly.StartTime.IsZero() || weekly.EndTime.IsZero() {
		return domain.Window{}, false
	}

	return domain.Window{Start: weekly.StartTime, End: weekly.EndTime}, true
}

// intersectWindows пересекает окно салона с окном сотрудника
// Бронь возможна только в пересечении; если любое из окон закрыто - результат закрыт
func intersectWindows(salon domain.Window, salonOpen bool, staff domain.Window, staffOpen bool) (domain.Window, bool) {
	if !salonOpen || !staffOpen {
		return domain.Window{}, false
	}
	return salon.Intersect(staff)
}
