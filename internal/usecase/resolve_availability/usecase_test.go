package resolve_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	scheduleRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/schedule"
	"github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	weekly     map[domain.OwnerType]*domain.WeeklySchedule
	exceptions map[domain.OwnerType]*domain.ScheduleException
}

func (f *fakeScheduleRepo) GetWeekly(_ context.Context, ownerType domain.OwnerType, _ int64, _ time.Weekday) (*domain.WeeklySchedule, error) {
	if ws, ok := f.weekly[ownerType]; ok {
		return ws, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) GetException(_ context.Context, ownerType domain.OwnerType, _ int64, _ time.Time) (*domain.ScheduleException, error) {
	if ex, ok := f.exceptions[ownerType]; ok {
		return ex, nil
	}
	return nil, scheduleRepo.ErrExceptionNotFound
}

type fakeCatalogClient struct {
	salonErr error
	staffErr error
}

func (f *fakeCatalogClient) GetSalon(_ context.Context, salonID int64) (*catalogservice.Salon, error) {
	if f.salonErr != nil {
		return nil, f.salonErr
	}
	return &catalogservice.Salon{ID: salonID, Name: "Test Salon", Active: true}, nil
}

func (f *fakeCatalogClient) GetStaff(_ context.Context, salonID, staffID int64) (*catalogservice.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return &catalogservice.Staff{ID: staffID, SalonID: salonID, Active: true}, nil
}

func testDate() time.Time {
	// 2025-06-16 - понедельник
	return time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
}

func TestUseCase_Execute_IntersectsSalonAndStaffWindows(t *testing.T) {
	repo := &fakeScheduleRepo{
		weekly: map[domain.OwnerType]*domain.WeeklySchedule{
			domain.OwnerSalon: openWeekly("09:00", "18:00"),
			domain.OwnerStaff: openWeekly("09:00", "17:00"),
		},
	}
	uc := NewUseCase(repo, &fakeCatalogClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1,
		StaffID: ptr.Ptr(int64(10)),
		Date:    testDate(),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, domain.Window{Start: "09:00", End: "17:00"}, resp.Window)
}

func TestUseCase_Execute_SalonOnlyWindow(t *testing.T) {
	repo := &fakeScheduleRepo{
		weekly: map[domain.OwnerType]*domain.WeeklySchedule{
			domain.OwnerSalon: openWeekly("10:00", "19:00"),
		},
	}
	uc := NewUseCase(repo, &fakeCatalogClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, domain.Window{Start: "10:00", End: "19:00"}, resp.Window)
}

func TestUseCase_Execute_StaffHolidayClosesDay(t *testing.T) {
	repo := &fakeScheduleRepo{
		weekly: map[domain.OwnerType]*domain.WeeklySchedule{
			domain.OwnerSalon: openWeekly("09:00", "18:00"),
			domain.OwnerStaff: openWeekly("09:00", "18:00"),
		},
		exceptions: map[domain.OwnerType]*domain.ScheduleException{
			domain.OwnerStaff: {Kind: domain.ExceptionLeave},
		},
	}
	uc := NewUseCase(repo, &fakeCatalogClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1,
		StaffID: ptr.Ptr(int64(10)),
		Date:    testDate(),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
	assert.True(t, resp.Window.IsZero())
}

func TestUseCase_Execute_SalonExceptionOverridesWeekly(t *testing.T) {
	repo := &fakeScheduleRepo{
		weekly: map[domain.OwnerType]*domain.WeeklySchedule{
			domain.OwnerSalon: openWeekly("09:00", "18:00"),
		},
		exceptions: map[domain.OwnerType]*domain.ScheduleException{
			domain.OwnerSalon: {
				Kind:      domain.ExceptionIrregular,
				StartTime: ptr.Ptr(types.TimeString("12:00")),
				EndTime:   ptr.Ptr(types.TimeString("16:00")),
			},
		},
	}
	uc := NewUseCase(repo, &fakeCatalogClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, domain.Window{Start: "12:00", End: "16:00"}, resp.Window)
}

func TestUseCase_Execute_NoScheduleMeansClosed(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := NewUseCase(repo, &fakeCatalogClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
}

func TestUseCase_Execute_SalonNotFound(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeCatalogClient{salonErr: catalogservice.ErrSalonNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestUseCase_Execute_StaffNotFound(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeCatalogClient{staffErr: catalogservice.ErrStaffNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1,
		StaffID: ptr.Ptr(int64(99)),
		Date:    testDate(),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeCatalogClient{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero salon id", req: &Request{Date: testDate()}},
		{name: "negative staff id", req: &Request{SalonID: 1, StaffID: ptr.Ptr(int64(-1)), Date: testDate()}},
		{name: "missing date", req: &Request{SalonID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
