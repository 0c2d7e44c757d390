package expire_pending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

func TestEvaluate(t *testing.T) {
	now := baseTime

	settings := &domain.VenueSettings{
		PendingReviewMinutes:      60,
		PendingBeforeStartMinutes: 120,
		PendingWarningMinutes:     30,
	}

	tests := []struct {
		name        string
		createdAgo  time.Duration
		untilStart  time.Duration
		wantCancel  bool
		wantComment string
		minutesLeft int
		warn        bool
	}{
		{"fresh", 5 * time.Minute, 24 * time.Hour, false, "", 55, false},
		{"review warning", 35 * time.Minute, 24 * time.Hour, false, "", 25, true},
		{"review cutoff", 60 * time.Minute, 24 * time.Hour, true, domain.CommentPendingReviewExpired, 0, false},
		{"start warning wins when closer", 5 * time.Minute, 130 * time.Minute, false, "", 10, true},
		{"start cutoff", 5 * time.Minute, 120 * time.Minute, true, domain.CommentPendingStartExpired, 0, false},
		{"already started", 5 * time.Minute, -time.Hour, true, domain.CommentPendingStartExpired, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &domain.EventBooking{
				Status:    domain.StatusPending,
				CreatedAt: now.Add(-tt.createdAgo),
				StartAt:   now.Add(tt.untilStart),
			}

			d := Evaluate(booking, nil, settings, now)
			assert.Equal(t, tt.wantCancel, d.Cancel)
			assert.Equal(t, tt.wantComment, d.Comment)
			if !tt.wantCancel {
				assert.Equal(t, tt.minutesLeft, d.MinutesLeft)
			}
			assert.Equal(t, tt.warn, d.Warn(settings))
		})
	}
}

func TestEvaluate_NoRules(t *testing.T) {
	booking := &domain.EventBooking{CreatedAt: baseTime.AddDate(-1, 0, 0), StartAt: baseTime}
	settings := &domain.VenueSettings{PendingWarningMinutes: 30}

	d := Evaluate(booking, nil, settings, baseTime)
	assert.False(t, d.Cancel)
	assert.Equal(t, -1, d.MinutesLeft)
	assert.False(t, d.Warn(settings))
}
