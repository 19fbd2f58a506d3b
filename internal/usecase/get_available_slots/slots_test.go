package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

func slotDate() time.Time {
	return time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
}

// now задолго до даты слотов: фильтр прошедшего времени не срабатывает
func beforeSlotDate() time.Time {
	return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
}

func reservationAt(t *testing.T, date time.Time, start, end types.TimeString) *domain.Reservation {
	t.Helper()

	startInstant, err := start.At(date)
	require.NoError(t, err)
	endInstant, err := end.At(date)
	require.NoError(t, err)

	return &domain.Reservation{
		StartTime: startInstant,
		EndTime:   endInstant,
		Status:    domain.StatusConfirmed,
	}
}

func TestGenerateSlots_FitsWithinWindow(t *testing.T) {
	// Окно 09:00-17:00 (пересечение салона 09:00-18:00 и мастера 09:00-17:00),
	// услуга 60 минут, шаг 30: последний кандидат 16:00
	window := domain.Window{Start: "09:00", End: "17:00"}

	slots, err := generateSlots(window, 60, 30, slotDate(), beforeSlotDate())
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:00"), slots[len(slots)-1])
	assert.Len(t, slots, 15)
}

func TestGenerateSlots_LastSlotEndsExactlyAtWindowEnd(t *testing.T) {
	window := domain.Window{Start: "10:00", End: "12:00"}

	slots, err := generateSlots(window, 60, 60, slotDate(), beforeSlotDate())
	require.NoError(t, err)

	// 10:00-11:00 и 11:00-12:00 помещаются, 12:00-13:00 уже нет
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slots)
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	window := domain.Window{Start: "10:00", End: "11:00"}

	slots, err := generateSlots(window, 90, 30, slotDate(), beforeSlotDate())
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_PastDateReturnsEmpty(t *testing.T) {
	window := domain.Window{Start: "09:00", End: "18:00"}
	now := time.Date(2025, 6, 17, 8, 0, 0, 0, time.UTC)

	slots, err := generateSlots(window, 60, 30, slotDate(), now)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_TodayExcludesPastStarts(t *testing.T) {
	window := domain.Window{Start: "09:00", End: "12:00"}
	// Сейчас 10:15 того же дня: кандидаты 09:00, 09:30, 10:00 уже в прошлом
	now := time.Date(2025, 6, 16, 10, 15, 0, 0, time.UTC)

	slots, err := generateSlots(window, 60, 30, slotDate(), now)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, slots)
}

func TestGenerateSlots_CustomGranularity(t *testing.T) {
	window := domain.Window{Start: "09:00", End: "10:00"}

	slots, err := generateSlots(window, 15, 15, slotDate(), beforeSlotDate())
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:15", "09:30", "09:45"}, slots)
}

func TestCalculateSlotOccupancy_CountsSalonOverlaps(t *testing.T) {
	date := slotDate()
	starts := []types.TimeString{"10:00", "11:00", "12:00"}

	salonReservations := []*domain.Reservation{
		reservationAt(t, date, "10:00", "11:00"),
		reservationAt(t, date, "10:30", "11:30"),
	}

	slots, err := calculateSlotOccupancy(starts, 60, date, salonReservations, nil, 3)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	// 10:00-11:00 пересекается с обеими бронями
	assert.Equal(t, 1, slots[0].AvailableSheets)
	// 11:00-12:00 пересекается только с броней 10:30-11:30
	assert.Equal(t, 2, slots[1].AvailableSheets)
	// 12:00-13:00 свободен полностью
	assert.Equal(t, 3, slots[2].AvailableSheets)

	for _, s := range slots {
		assert.Equal(t, 3, s.TotalSheets)
	}
}

func TestCalculateSlotOccupancy_BoundaryTouchIsNotOverlap(t *testing.T) {
	date := slotDate()
	salonReservations := []*domain.Reservation{
		reservationAt(t, date, "10:00", "11:00"),
	}

	slots, err := calculateSlotOccupancy([]types.TimeString{"11:00"}, 60, date, salonReservations, nil, 3)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// Бронь 10:00-11:00 не пересекается со слотом 11:00-12:00
	assert.Equal(t, 3, slots[0].AvailableSheets)
}

func TestCalculateSlotOccupancy_StaffBusySlotExcluded(t *testing.T) {
	date := slotDate()
	staffReservations := []*domain.Reservation{
		reservationAt(t, date, "11:00", "12:00"),
	}

	slots, err := calculateSlotOccupancy(
		[]types.TimeString{"10:00", "11:00", "11:30", "12:00"},
		60, date, nil, staffReservations, 3,
	)
	require.NoError(t, err)

	// Слоты 11:00 и 11:30 пересекаются с бронью мастера и полностью исключены
	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, starts)
}

func TestCalculateSlotOccupancy_CancelledReservationsIgnored(t *testing.T) {
	date := slotDate()
	cancelled := reservationAt(t, date, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled
	archived := reservationAt(t, date, "10:00", "11:00")
	archived.Archived = true

	slots, err := calculateSlotOccupancy(
		[]types.TimeString{"10:00"},
		60, date, []*domain.Reservation{cancelled, archived}, nil, 3,
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, 3, slots[0].AvailableSheets)
}

func TestCalculateSlotOccupancy_FullyBookedSlotShowsZero(t *testing.T) {
	date := slotDate()
	salonReservations := []*domain.Reservation{
		reservationAt(t, date, "10:00", "11:00"),
		reservationAt(t, date, "10:00", "11:00"),
		reservationAt(t, date, "10:00", "11:00"),
	}

	slots, err := calculateSlotOccupancy([]types.TimeString{"10:00"}, 60, date, salonReservations, nil, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, 0, slots[0].AvailableSheets)
}

func TestCalculateSlotOccupancy_EndTimeFollowsDuration(t *testing.T) {
	slots, err := calculateSlotOccupancy([]types.TimeString{"09:30"}, 45, slotDate(), nil, nil, 3)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, types.TimeString("09:30"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:15"), slots[0].EndTime)
}
