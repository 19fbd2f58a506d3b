package create_reservation

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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	salonReservations []*domain.Reservation
	staffReservations []*domain.Reservation
	created           *domain.Reservation
	nextID            int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
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

type fakeCatalogClient struct {
	salonErr error
	staffErr error
	menuErr  error
	menu     *catalogservice.Menu
}

func (f *fakeCatalogClient) GetSalon(_ context.Context, salonID int64) (*catalogservice.Salon, error) {
	if f.salonErr != nil {
		return nil, f.salonErr
	}
	return &catalogservice.Salon{ID: salonID, Active: true}, nil
}

func (f *fakeCatalogClient) GetStaff(_ context.Context, salonID, staffID int64) (*catalogservice.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return &catalogservice.Staff{ID: staffID, SalonID: salonID, Active: true}, nil
}

func (f *fakeCatalogClient) GetMenu(_ context.Context, salonID, menuID int64) (*catalogservice.Menu, error) {
	if f.menuErr != nil {
		return nil, f.menuErr
	}
	if f.menu != nil {
		return f.menu, nil
	}
	return &catalogservice.Menu{
		ID:              menuID,
		SalonID:         salonID,
		Name:            "Cut",
		Price:           ptr.Ptr(3500.0),
		DurationMinutes: 60,
	}, nil
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

var reservationIDSeq int64

func confirmedAt(t *testing.T, date time.Time, start, end types.TimeString, staffID int64) *domain.Reservation {
	t.Helper()

	startInstant, err := start.At(date)
	require.NoError(t, err)
	endInstant, err := end.At(date)
	require.NoError(t, err)

	reservationIDSeq++
	return &domain.Reservation{
		ID:        reservationIDSeq,
		SalonID:   1,
		StaffID:   staffID,
		StartTime: startInstant,
		EndTime:   endInstant,
		Status:    domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeReservationRepo, capacity *fakeCapacityRepo, resolver *fakeResolver, catalog *fakeCatalogClient) *UseCase {
	uc := NewUseCase(repo, capacity, resolver, catalog, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: beforeVisitDate()}
	return uc
}

func validRequest() *Request {
	return &Request{
		SalonID:    1,
		StaffID:    10,
		CustomerID: 100,
		MenuID:     5,
		Date:       visitDate(),
		StartTime:  "10:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Cut", resp.MenuName)
	assert.Equal(t, 3500.0, resp.MenuPrice)
	assert.Equal(t, 60, resp.DurationMinutes)

	require.NotNil(t, repo.created)
	startInstant, _ := types.TimeString("10:00").At(visitDate())
	endInstant, _ := types.TimeString("11:00").At(visitDate())
	assert.Equal(t, startInstant, repo.created.StartTime)
	assert.Equal(t, endInstant, repo.created.EndTime)
}

func TestUseCase_Execute_CapacityConflict(t *testing.T) {
	date := visitDate()
	// Вместимость 2: две пересекающиеся брони полностью занимают салон
	repo := &fakeReservationRepo{
		salonReservations: []*domain.Reservation{
			confirmedAt(t, date, "10:00", "11:00", 11),
			confirmedAt(t, date, "10:30", "11:30", 12),
		},
	}
	capacity := &fakeCapacityRepo{config: &domain.ReservationCapacityConfig{SalonID: 1, AvailableSheets: 2}}
	uc := newTestUseCase(repo, capacity, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityConflict)
	assert.Nil(t, repo.created)
}

func TestUseCase_Execute_CapacityAllowsUpToLimit(t *testing.T) {
	date := visitDate()
	// Вместимость 3: две пересекающиеся брони - третья еще помещается
	repo := &fakeReservationRepo{
		salonReservations: []*domain.Reservation{
			confirmedAt(t, date, "10:00", "11:00", 11),
			confirmedAt(t, date, "10:30", "11:30", 12),
		},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestUseCase_Execute_DoubleBookingConflict(t *testing.T) {
	date := visitDate()
	repo := &fakeReservationRepo{
		staffReservations: []*domain.Reservation{
			confirmedAt(t, date, "10:30", "11:30", 10),
		},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoubleBookingConflict)
	assert.Nil(t, repo.created)
}

func TestUseCase_Execute_BackToBackStaffReservationsAllowed(t *testing.T) {
	date := visitDate()
	// Бронь мастера 09:00-10:00 заканчивается ровно в момент начала новой
	repo := &fakeReservationRepo{
		staffReservations: []*domain.Reservation{
			confirmedAt(t, date, "09:00", "10:00", 10),
		},
	}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCapacityRepo{},
		&fakeResolver{resp: &resolveAvailability.Response{IsOpen: false}},
		&fakeCatalogClient{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestUseCase_Execute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{name: "starts before window", startTime: "08:30"},
		{name: "ends after window", startTime: "17:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		})
	}
}

func TestUseCase_Execute_UnpaddedStartTimeRejected(t *testing.T) {
	// "9:30" лексикографически больше "19:00", поэтому без строгой валидации
	// формата бронь прошла бы проверку окна 19:00-21:00 и создалась бы в 09:30
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeCapacityRepo{}, openResolver("19:00", "21:00"), &fakeCatalogClient{})

	req := validRequest()
	req.StartTime = "9:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.created)
}

func TestUseCase_Execute_EndsExactlyAtWindowEnd(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	req := validRequest()
	req.StartTime = "17:00"

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_TooLateToBookToday(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})
	// Сегодняшний день, время начала уже прошло
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestUseCase_Execute_CatalogNotFound(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalogClient
		wantErr error
	}{
		{name: "salon", catalog: &fakeCatalogClient{salonErr: catalogservice.ErrSalonNotFound}, wantErr: ErrSalonNotFound},
		{name: "staff", catalog: &fakeCatalogClient{staffErr: catalogservice.ErrStaffNotFound}, wantErr: ErrStaffNotFound},
		{name: "menu", catalog: &fakeCatalogClient{menuErr: catalogservice.ErrMenuNotFound}, wantErr: ErrMenuNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), tt.catalog)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCapacityRepo{}, openResolver("09:00", "18:00"), &fakeCatalogClient{})

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}

	tests := []struct {
		name   string
		modify func(req *Request)
	}{
		{name: "zero salon id", modify: func(req *Request) { req.SalonID = 0 }},
		{name: "zero staff id", modify: func(req *Request) { req.StaffID = 0 }},
		{name: "zero customer id", modify: func(req *Request) { req.CustomerID = 0 }},
		{name: "zero menu id", modify: func(req *Request) { req.MenuID = 0 }},
		{name: "missing date", modify: func(req *Request) { req.Date = time.Time{} }},
		{name: "missing start time", modify: func(req *Request) { req.StartTime = "" }},
		{name: "malformed start time", modify: func(req *Request) { req.StartTime = "25:99" }},
		{name: "start time without leading zero", modify: func(req *Request) { req.StartTime = "9:30" }},
		{name: "notes too long", modify: func(req *Request) { req.Notes = ptr.Ptr(string(longNotes)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
