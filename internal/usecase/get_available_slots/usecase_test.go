package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	"github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type fakeResolver struct {
	resp *resolveAvailability.Response
	err  error
}

func (f *fakeResolver) Execute(_ context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.resp
	resp.SalonID = req.SalonID
	resp.StaffID = req.StaffID
	resp.Date = req.Date
	return &resp, nil
}

type fakeReservationRepo struct {
	salonReservations []*domain.Reservation
	staffReservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListConfirmedForSalonDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.salonReservations, nil
}

func (f *fakeReservationRepo) ListConfirmedForStaffDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.staffReservations, nil
}

type fakeCapacityRepo struct {
	config *domain.ReservationCapacityConfig
}

func (f *fakeCapacityRepo) GetBySalon(_ context.Context, _ int64) (*domain.ReservationCapacityConfig, error) {
	if f.config == nil {
		return nil, capacityRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeCatalog struct {
	menu    *catalogservice.Menu
	menuErr error
}

func (f *fakeCatalog) GetMenu(_ context.Context, _, _ int64) (*catalogservice.Menu, error) {
	if f.menuErr != nil {
		return nil, f.menuErr
	}
	return f.menu, nil
}

func openResolver(start, end types.TimeString) *fakeResolver {
	return &fakeResolver{
		resp: &resolveAvailability.Response{
			IsOpen: true,
			Window: domain.Window{Start: start, End: end},
		},
	}
}

func TestUseCase_Execute_SlotsFromMenuDuration(t *testing.T) {
	// Окно 09:00-17:00, услуга 60 минут, шаг по умолчанию 30
	uc := NewUseCase(
		openResolver("09:00", "17:00"),
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeCatalog{menu: &catalogservice.Menu{ID: 5, DurationMinutes: 60}},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: beforeSlotDate()}

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1,
		StaffID: ptr.Ptr(int64(10)),
		MenuID:  ptr.Ptr(int64(5)),
		Date:    slotDate(),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultGranularityMinutes, resp.GranularityMinutes)
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1].EndTime)
}

func TestUseCase_Execute_ClosedDayReturnsEmptySlots(t *testing.T) {
	uc := NewUseCase(
		&fakeResolver{resp: &resolveAvailability.Response{IsOpen: false}},
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeCatalog{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:         1,
		Date:            slotDate(),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_DefaultCapacityWhenNotConfigured(t *testing.T) {
	uc := NewUseCase(
		openResolver("10:00", "11:00"),
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeCatalog{},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: beforeSlotDate()}

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:         1,
		Date:            slotDate(),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.DefaultAvailableSheets, resp.Slots[0].TotalSheets)
	assert.Equal(t, domain.DefaultAvailableSheets, resp.Slots[0].AvailableSheets)
}

func TestUseCase_Execute_ConfiguredCapacityUsed(t *testing.T) {
	uc := NewUseCase(
		openResolver("10:00", "11:00"),
		&fakeReservationRepo{},
		&fakeCapacityRepo{config: &domain.ReservationCapacityConfig{SalonID: 1, AvailableSheets: 5}},
		&fakeCatalog{},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: beforeSlotDate()}

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:         1,
		Date:            slotDate(),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 5, resp.Slots[0].TotalSheets)
}

func TestUseCase_Execute_StaffReservationExcludesSlot(t *testing.T) {
	date := slotDate()
	uc := NewUseCase(
		openResolver("10:00", "13:00"),
		&fakeReservationRepo{
			staffReservations: []*domain.Reservation{
				reservationAt(t, date, "11:00", "12:00"),
			},
		},
		&fakeCapacityRepo{},
		&fakeCatalog{},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: beforeSlotDate()}

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:            1,
		StaffID:            ptr.Ptr(int64(10)),
		Date:               date,
		DurationMinutes:    60,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, starts)
}

func TestUseCase_Execute_MenuNotFound(t *testing.T) {
	uc := NewUseCase(
		openResolver("09:00", "18:00"),
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeCatalog{menuErr: catalogservice.ErrMenuNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1,
		MenuID:  ptr.Ptr(int64(99)),
		Date:    slotDate(),
	})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUseCase_Execute_SalonNotFoundFromResolver(t *testing.T) {
	uc := NewUseCase(
		&fakeResolver{err: resolveAvailability.ErrSalonNotFound},
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeCatalog{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID:         99,
		Date:            slotDate(),
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(openResolver("09:00", "18:00"), &fakeReservationRepo{}, &fakeCapacityRepo{}, &fakeCatalog{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero salon id", req: &Request{Date: slotDate(), DurationMinutes: 60}},
		{name: "missing date", req: &Request{SalonID: 1, DurationMinutes: 60}},
		{name: "duration required without menu", req: &Request{SalonID: 1, Date: slotDate()}},
		{name: "duration above max", req: &Request{SalonID: 1, Date: slotDate(), DurationMinutes: 600}},
		{name: "granularity below min", req: &Request{SalonID: 1, Date: slotDate(), DurationMinutes: 60, GranularityMinutes: 1}},
		{name: "granularity above max", req: &Request{SalonID: 1, Date: slotDate(), DurationMinutes: 60, GranularityMinutes: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
