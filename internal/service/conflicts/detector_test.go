package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type fakeRepo struct {
	bookings []*domain.EventBooking
	err      error
	statuses []domain.BookingStatus
}

func (f *fakeRepo) ExistsOverlapping(_ context.Context, venueID int64, start, end time.Time, statuses []domain.BookingStatus) (bool, error) {
	f.statuses = statuses
	if f.err != nil {
		return false, f.err
	}
	return len(FindOverlapping(f.bookings, venueID, start, end, statuses)) > 0, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"partial", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"equal", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"adjacent after", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"adjacent before", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// симметричность
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDetector_HasConflict(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.EventBooking{
		{ID: 1, VenueID: 7, StartAt: at(10, 0), EndAt: at(11, 0), Status: domain.StatusApproved},
		{ID: 2, VenueID: 7, StartAt: at(12, 0), EndAt: at(13, 0), Status: domain.StatusCancelled},
		{ID: 3, VenueID: 8, StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.StatusPending},
	}}
	detector := NewDetector(repo, []domain.BookingStatus{domain.StatusPending, domain.StatusApproved})
	ctx := context.Background()

	conflict, err := detector.HasConflict(ctx, 7, at(10, 30), at(11, 30))
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = detector.HasConflict(ctx, 7, at(11, 0), at(12, 0))
	require.NoError(t, err)
	assert.False(t, conflict, "adjacent window is free")

	conflict, err = detector.HasConflict(ctx, 7, at(12, 0), at(13, 0))
	require.NoError(t, err)
	assert.False(t, conflict, "cancelled booking does not block")

	conflict, err = detector.HasConflict(ctx, 7, at(14, 0), at(15, 0))
	require.NoError(t, err)
	assert.False(t, conflict, "other venue does not block")
}

func TestDetector_DefaultStatuses(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.EventBooking{
		{ID: 1, VenueID: 7, StartAt: at(10, 0), EndAt: at(11, 0), Status: domain.StatusAwaitingPayment},
	}}
	detector := NewDetector(repo, nil)

	conflict, err := detector.HasConflict(context.Background(), 7, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.Equal(t, domain.DefaultBlockingStatuses, repo.statuses)
}

func TestDetector_RepositoryError(t *testing.T) {
	detector := NewDetector(&fakeRepo{err: errors.New("connection refused")}, nil)

	_, err := detector.HasConflict(context.Background(), 7, at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrInternal)
}
