package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsuki-sakai/bocker-scheduling/internal/domain"
	reservationRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/reservation"
	"github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations/models"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct {
	readOnlyCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	listedStatus    *domain.ReservationStatus
	listedFilter    domain.SalonReservationsFilter
	cancelledID     int64
	cancelledReason string
	completedID     int64
	archivedID      int64
	deletedID       int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if res, ok := f.reservations[id]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListByCustomer(_ context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.listedStatus = status
	result := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.CustomerID == customerID {
			result = append(result, res)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) ListBySalonWithFilter(_ context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	f.listedFilter = filter
	return nil, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

func (f *fakeReservationRepo) Complete(_ context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.completedID = id
	return nil
}

func (f *fakeReservationRepo) Archive(_ context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.archivedID = id
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.deletedID = id
	return nil
}

func confirmedReservation(id, customerID int64) *domain.Reservation {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:         id,
		SalonID:    1,
		StaffID:    10,
		CustomerID: customerID,
		MenuID:     5,
		Date:       date,
		StartTime:  date.Add(10 * time.Hour),
		EndTime:    date.Add(11 * time.Hour),
		Status:     domain.StatusConfirmed,
		Detail: domain.ReservationDetail{
			MenuName:        "Cut",
			MenuPrice:       3500,
			DurationMinutes: 60,
		},
	}
}

func newTestService(repo *fakeReservationRepo) *Service {
	return NewService(repo, &fakeTxManager{}, nopLogger{})
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-06-16", resp.Date)
	assert.Equal(t, "Cut", resp.MenuName)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_GetCustomerReservations_StatusFilter(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.listedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.listedStatus)
	assert.Len(t, resp.Reservations, 1)
}

func TestService_GetCustomerReservations_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{})

	_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListsRunInReadOnlyTransaction(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm, nopLogger{})

	_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
	})
	require.NoError(t, err)

	_, err = svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, txm.readOnlyCalls)
}

func TestService_GetSalonReservations_BuildsFilter(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := newTestService(repo)

	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
		SalonID:         1,
		StaffID:         ptr.Ptr(int64(10)),
		Date:            &date,
		Status:          ptr.Ptr("confirmed"),
		IncludeArchived: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.listedFilter.SalonID)
	require.NotNil(t, repo.listedFilter.StaffID)
	assert.Equal(t, int64(10), *repo.listedFilter.StaffID)
	require.NotNil(t, repo.listedFilter.Date)
	assert.Equal(t, "2025-06-16", repo.listedFilter.Date.Format(domain.DateFormat))
	require.NotNil(t, repo.listedFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.listedFilter.Status)
	assert.True(t, repo.listedFilter.IncludeArchived)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		CustomerID:         100,
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, "plans changed", repo.cancelledReason)
}

func TestService_Cancel_AccessDenied(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		CustomerID:         200,
		CancellationReason: "not mine",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestService_Cancel_WrongStatus(t *testing.T) {
	tests := []struct {
		name   string
		modify func(res *domain.Reservation)
	}{
		{name: "already cancelled", modify: func(res *domain.Reservation) { res.Status = domain.StatusCancelled }},
		{name: "completed", modify: func(res *domain.Reservation) { res.Status = domain.StatusCompleted }},
		{name: "archived", modify: func(res *domain.Reservation) { res.Archived = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := confirmedReservation(1, 100)
			tt.modify(res)
			repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
			svc := newTestService(repo)

			err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 100})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestService_Complete(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Complete(context.Background(), 1))
	assert.Equal(t, int64(1), repo.completedID)
}

func TestService_Complete_WrongStatus(t *testing.T) {
	res := confirmedReservation(1, 100)
	res.Status = domain.StatusCancelled
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
	svc := newTestService(repo)

	err := svc.Complete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestService_Archive(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Archive(context.Background(), 1))
	assert.Equal(t, int64(1), repo.archivedID)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{1: confirmedReservation(1, 100)},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, int64(1), repo.deletedID)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{})

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
