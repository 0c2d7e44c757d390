package get_free_windows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	items      []*domain.EventBooking
	lastFilter domain.VenueBookingsFilter
	err        error
}

func (r *fakeBookings) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.EventBooking, error) {
	r.lastFilter = filter
	return r.items, r.err
}

type fakeSchedules map[int64]*domain.VenueSchedule

func (r fakeSchedules) GetByVenueID(_ context.Context, venueID int64) (*domain.VenueSchedule, error) {
	s, ok := r[venueID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s, nil
}

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func newUseCase(bookings *fakeBookings, now time.Time) *UseCase {
	schedules := fakeSchedules{1: {
		VenueID:   1,
		UTCOffset: "+03:00",
		Weekly: []domain.WeeklyInterval{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		},
	}}
	uc := NewUseCase(bookings, schedules, &fakeTxManager{}, DefaultOptions(), nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	msk := time.FixedZone("+03:00", 3*3600)
	bookings := &fakeBookings{items: []*domain.EventBooking{
		{StartAt: time.Date(2025, 3, 10, 12, 0, 0, 0, msk), EndAt: time.Date(2025, 3, 10, 13, 0, 0, 0, msk)},
	}}
	// 08:00 по времени площадки, за два часа до первого окна
	uc := newUseCase(bookings, time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.Len(t, resp.Windows, 2)
	assert.True(t, resp.Windows[0].Start.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, msk)))
	assert.Equal(t, 180, resp.Windows[0].DurationMinutes())
	assert.True(t, resp.Windows[1].Start.Equal(time.Date(2025, 3, 10, 13, 0, 0, 0, msk)))
	assert.Equal(t, 300, resp.Windows[1].DurationMinutes())

	assert.Equal(t, domain.DefaultBlockingStatuses, bookings.lastFilter.Statuses)
	assert.True(t, bookings.lastFilter.From.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, msk)))
}

func TestUseCase_Execute_LeadTimeToday(t *testing.T) {
	// 10:00:30 по времени площадки
	uc := newUseCase(&fakeBookings{}, time.Date(2025, 3, 10, 7, 0, 30, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "10:15", resp.Windows[0].Start.Format(domain.TimeFormat))
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	bookings := &fakeBookings{}
	uc := newUseCase(bookings, time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
	assert.Zero(t, bookings.lastFilter.VenueID, "closed day does not query bookings")
}

func TestUseCase_Execute_Errors(t *testing.T) {
	now := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)

	_, err := newUseCase(&fakeBookings{}, now).Execute(context.Background(), &Request{VenueID: 0, Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = newUseCase(&fakeBookings{}, now).Execute(context.Background(), &Request{VenueID: 2, Date: now})
	assert.ErrorIs(t, err, ErrNoSchedule)

	_, err = newUseCase(&fakeBookings{}, now).Execute(context.Background(), &Request{VenueID: 1, Date: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = newUseCase(&fakeBookings{err: errors.New("timeout")}, now).Execute(context.Background(), &Request{VenueID: 1, Date: now})
	assert.ErrorIs(t, err, ErrInternal)
}

type failingTxManager struct{}

func (failingTxManager) DoReadOnly(context.Context, func(ctx context.Context) error) error {
	return errors.New("begin tx: connection refused")
}

func TestUseCase_Execute_ReadsInOneTransaction(t *testing.T) {
	now := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeBookings{}, now)
	tx := &fakeTxManager{}
	uc.txManager = tx

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: now})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	uc.txManager = failingTxManager{}
	_, err = uc.Execute(context.Background(), &Request{VenueID: 1, Date: now})
	assert.ErrorIs(t, err, ErrInternal)
}
