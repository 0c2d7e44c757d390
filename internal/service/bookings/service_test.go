package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings   map[int64]*domain.EventBooking
	lastFilter domain.VenueBookingsFilter
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.EventBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.EventBooking, error) {
	r.lastFilter = filter
	result := make([]*domain.EventBooking, 0)
	for _, b := range r.bookings {
		if b.VenueID == filter.VenueID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeRepo) GetByCreator(_ context.Context, userID int64, statuses []domain.BookingStatus) ([]*domain.EventBooking, error) {
	result := make([]*domain.EventBooking, 0)
	for _, b := range r.bookings {
		if b.CreatedBy != userID {
			continue
		}
		if len(statuses) > 0 && b.Status != statuses[0] {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

type fakeCanceller struct {
	err      error
	comments []string
}

func (c *fakeCanceller) CancelManual(_ context.Context, b *domain.EventBooking, _ int64, comment string, _ time.Time) error {
	if c.err != nil {
		return c.err
	}
	if b.IsTerminal() {
		return cancellation.ErrAlreadyTerminal
	}
	c.comments = append(c.comments, comment)
	b.Status = domain.StatusCancelled
	return nil
}

// fakeExpiry отменяет все бронирования, ожидающие оплату
type fakeExpiry struct {
	calls int
	err   error
}

func (e *fakeExpiry) CancelIfExpired(_ context.Context, b *domain.EventBooking) (bool, error) {
	e.calls++
	if e.err != nil {
		return false, e.err
	}
	if b.Status != domain.StatusAwaitingPayment {
		return false, nil
	}
	b.Status = domain.StatusCancelled
	return true, nil
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, CreatedBy: 100, Status: domain.StatusAwaitingPayment},
		2: {ID: 2, VenueID: 7, CreatedBy: 100, Status: domain.StatusApproved},
	}}
	expiry := &fakeExpiry{}
	svc := NewService(repo, expiry, &fakeCanceller{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status, "stale booking is expired at read time")

	resp, err = svc.GetByID(context.Background(), 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	_, err = svc.GetByID(context.Background(), 3, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_OnlyCreator(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, CreatedBy: 100, Status: domain.StatusAwaitingPayment},
	}}
	expiry := &fakeExpiry{}
	svc := NewService(repo, expiry, &fakeCanceller{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, expiry.calls, "foreign booking is not touched")
}

func TestService_GetByID_ExpiryErrorIsNotFatal(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, CreatedBy: 100, Status: domain.StatusAwaitingPayment},
	}}
	svc := NewService(repo, &fakeExpiry{err: errors.New("db is down")}, &fakeCanceller{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "awaiting_payment", resp.Status)
}

func TestService_GetVenueBookings(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, Status: domain.StatusPending},
		2: {ID: 2, VenueID: 8, Status: domain.StatusPending},
	}}
	expiry := &fakeExpiry{}
	svc := NewService(repo, expiry, &fakeCanceller{}, nopLogger{})

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID:  7,
		From:     &from,
		To:       &to,
		Statuses: []string{"pending", "approved"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending, domain.StatusApproved}, repo.lastFilter.Statuses)
	assert.Equal(t, 1, expiry.calls)
}

func TestService_GetVenueBookings_ExpiredRowsLeaveStatusFilter(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, Status: domain.StatusAwaitingPayment},
	}}
	svc := NewService(repo, &fakeExpiry{}, &fakeCanceller{}, nopLogger{})

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID:  7,
		Statuses: []string{"awaiting_payment"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestService_GetVenueBookings_IncludeCancelledKeepsExpired(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, Status: domain.StatusAwaitingPayment},
	}}
	svc := NewService(repo, &fakeExpiry{}, &fakeCanceller{}, nopLogger{})

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 7, IncludeCancelled: true})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
}

func TestService_GetVenueBookings_InvalidInput(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeExpiry{}, &fakeCanceller{}, nopLogger{})
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 7, From: &from, To: &from})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 7, Statuses: []string{"confirmed"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, VenueID: 7, CreatedBy: 100, Status: domain.StatusPending},
		2: {ID: 2, VenueID: 7, CreatedBy: 100, Status: domain.StatusCancelled},
	}}
	canceller := &fakeCanceller{}
	svc := NewService(repo, &fakeExpiry{}, canceller, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{commentCancelledByUser}, canceller.comments)

	err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 200})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrCannotCancel)

	err = svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel_Failure(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, CreatedBy: 100, Status: domain.StatusPaid},
	}}
	svc := NewService(repo, &fakeExpiry{}, &fakeCanceller{err: cancellation.ErrInternal}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 100, CancellationReason: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetUserBookings(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.EventBooking{
		1: {ID: 1, CreatedBy: 100, Status: domain.StatusPending},
		2: {ID: 2, CreatedBy: 100, Status: domain.StatusAwaitingPayment},
		3: {ID: 3, CreatedBy: 200, Status: domain.StatusPending},
	}}
	expiry := &fakeExpiry{}
	svc := NewService(repo, expiry, &fakeCanceller{}, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, 2, expiry.calls)

	status := "pending"
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	awaiting := "awaiting_payment"
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: &awaiting})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings, "expired booking no longer matches the status filter")

	bad := "done"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
