package reschedule_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	reservationRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/reservation"
	resolveAvailability "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservations      map[int64]*domain.Reservation
	salonReservations []*domain.Reservation
	staffReservations []*domain.Reservation
	updatedID         int64
	updatedStart      time.Time
	updatedEnd        time.Time
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if res, ok := f.reservations[id]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListConfirmedForSalonDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.salonReservations, nil
}

func (f *fakeReservationRepo) ListConfirmedForStaffDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.staffReservations, nil
}

func (f *fakeReservationRepo) UpdateSchedule(_ context.Context, id int64, date, startTime, endTime time.Time) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Date = date
	res.StartTime = startTime
	res.EndTime = endTime
	f.updatedID = id
	f.updatedStart = startTime
	f.updatedEnd = endTime
	return nil
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

type fakeResolver struct {
	resp *resolveAvailability.Response
}

func (f *fakeResolver) Execute(_ context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	resp := *f.resp
	resp.SalonID = req.SalonID
	resp.StaffID = req.StaffID
	resp.Date = req.Date
	return &resp, nil
}

func visitDate() time.Time {
	return time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
}

func beforeVisitDate() time.Time {
	return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
}

func openResolver(start, end types.TimeString) *fakeResolver {
	return &fakeResolver{
		resp: &resolveAvailability.Response{
			IsOpen: true,
			Window: domain.Window{Start: start, End: end},
		},
	}
}

func confirmedReservation(t *testing.T, id int64, date time.Time, start, end types.TimeString) *domain.Reservation {
	t.Helper()

	startInstant, err := start.At(date)
	require.NoError(t, err)
	endInstant, err := end.At(date)
	require.NoError(t, err)

	return &domain.Reservation{
		ID:         id,
		SalonID:    1,
		StaffID:    10,
		CustomerID: 100,
		MenuID:     5,
		Date:       date,
		StartTime:  startInstant,
		EndTime:    endInstant,
		Status:     domain.StatusConfirmed,
		Detail: domain.ReservationDetail{
			MenuName:        "Cut",
			MenuPrice:       3500,
			DurationMinutes: 60,
		},
	}
}

func newTestUseCase(repo *fakeReservationRepo, capacity *fakeCapacityRepo, resolver *fakeResolver) *UseCase {
	uc := NewUseCase(repo, capacity, resolver, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: beforeVisitDate()}
	return uc
}

func TestUseCase_Execute_Success(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: own},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.updatedID)

	wantStart, _ := types.TimeString("14:00").At(visitDate())
	wantEnd, _ := types.TimeString("15:00").At(visitDate())
	assert.Equal(t, wantStart, repo.updatedStart)
	assert.Equal(t, wantEnd, repo.updatedEnd)
	assert.Equal(t, wantStart, resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestUseCase_Execute_UnpaddedStartTimeRejected(t *testing.T) {
	// "9:30" лексикографически больше "19:00": без строгого формата
	// перенос на 09:30 прошел бы проверку окна 19:00-21:00
	own := confirmedReservation(t, 1, visitDate(), "19:00", "20:00")
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: own},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("19:00", "21:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "9:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.updatedID)
}

func TestUseCase_Execute_OwnReservationExcludedFromConflicts(t *testing.T) {
	// Перенос 10:00-11:00 -> 10:30-11:30: старый интервал пересекается с новым,
	// но собственная бронь не должна учитываться в проверках
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	repo := &fakeReservationRepo{
		reservations:      map[int64]*domain.Reservation{1: own},
		salonReservations: []*domain.Reservation{own},
		staffReservations: []*domain.Reservation{own},
	}
	capacity := &fakeCapacityRepo{config: &domain.ReservationCapacityConfig{SalonID: 1, AvailableSheets: 1}}
	uc := newTestUseCase(repo, capacity, openResolver("09:00", "18:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.updatedID)
}

func TestUseCase_Execute_OtherReservationsStillConflict(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	other := confirmedReservation(t, 2, visitDate(), "14:00", "15:00")
	repo := &fakeReservationRepo{
		reservations:      map[int64]*domain.Reservation{1: own},
		salonReservations: []*domain.Reservation{own, other},
		staffReservations: []*domain.Reservation{own, other},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "14:30",
	})
	assert.ErrorIs(t, err, ErrDoubleBookingConflict)
}

func TestUseCase_Execute_CapacityConflictOnNewSlot(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	other := confirmedReservation(t, 2, visitDate(), "14:00", "15:00")
	other.StaffID = 11
	repo := &fakeReservationRepo{
		reservations:      map[int64]*domain.Reservation{1: own},
		salonReservations: []*domain.Reservation{own, other},
	}
	capacity := &fakeCapacityRepo{config: &domain.ReservationCapacityConfig{SalonID: 1, AvailableSheets: 1}}
	uc := newTestUseCase(repo, capacity, openResolver("09:00", "18:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "14:30",
	})
	assert.ErrorIs(t, err, ErrCapacityConflict)
}

func TestUseCase_Execute_ReservationNotFound(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 99,
		Date:          visitDate(),
		StartTime:     "10:00",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUseCase_Execute_CannotReschedule(t *testing.T) {
	tests := []struct {
		name   string
		modify func(res *domain.Reservation)
	}{
		{name: "cancelled", modify: func(res *domain.Reservation) { res.Status = domain.StatusCancelled }},
		{name: "completed", modify: func(res *domain.Reservation) { res.Status = domain.StatusCompleted }},
		{name: "archived", modify: func(res *domain.Reservation) { res.Archived = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
			tt.modify(own)
			repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: own}}
			uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))

			_, err := uc.Execute(context.Background(), &Request{
				ReservationID: 1,
				Date:          visitDate(),
				StartTime:     "14:00",
			})
			assert.ErrorIs(t, err, ErrCannotReschedule)
		})
	}
}

func TestUseCase_Execute_ClosedOnNewDate(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: own}}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, &fakeResolver{resp: &resolveAvailability.Response{IsOpen: false}})

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "10:00",
	})
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestUseCase_Execute_OutsideWindowOnNewDate(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: own}}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "12:00"))

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "11:30",
	})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	own := confirmedReservation(t, 1, visitDate(), "10:00", "11:00")
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: own}}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Date:          visitDate(),
		StartTime:     "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"))

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero reservation id", req: &Request{Date: visitDate(), StartTime: "10:00"}},
		{name: "missing date", req: &Request{ReservationID: 1, StartTime: "10:00"}},
		{name: "missing start time", req: &Request{ReservationID: 1, Date: visitDate()}},
		{name: "malformed start time", req: &Request{ReservationID: 1, Date: visitDate(), StartTime: "25:00"}},
		{name: "start time without leading zero", req: &Request{ReservationID: 1, Date: visitDate(), StartTime: "9:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
