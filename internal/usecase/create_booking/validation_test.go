package create_booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

func weekdaySchedule() *domain.VenueSchedule {
	return &domain.VenueSchedule{
		VenueID:   venueID,
		UTCOffset: "UTC",
		Weekly: []domain.WeeklyInterval{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "24:00"},
		},
	}
}

func TestValidateWindow(t *testing.T) {
	now := mon(8, 0)
	tue := func(hour, minute int) time.Time { return mon(hour, minute).AddDate(0, 0, 1) }

	eventStart := mon(12, 0)
	eventEnd := mon(17, 0)
	boundedEvent := &domain.Event{ID: eventID, StartsAt: &eventStart, EndsAt: &eventEnd}

	closedMonday := weekdaySchedule()
	closedMonday.Exceptions = []domain.ScheduleException{
		{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Closed: true},
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		event    *domain.Event
		schedule *domain.VenueSchedule
		wantErr  error
		field    string
	}{
		{"fits first interval", mon(10, 0), mon(11, 0), nil, weekdaySchedule(), nil, ""},
		{"exactly the interval", mon(9, 0), mon(13, 0), nil, weekdaySchedule(), nil, ""},
		{"one minute before opening", mon(8, 59), mon(13, 0), nil, weekdaySchedule(), ErrOutsideIntervals, FieldStart},
		{"one minute after closing", mon(9, 0), mon(13, 1), nil, weekdaySchedule(), ErrOutsideIntervals, FieldStart},
		{"spans two intervals", mon(12, 0), mon(15, 0), nil, weekdaySchedule(), ErrOutsideIntervals, FieldStart},
		{"end before start", mon(11, 0), mon(10, 0), nil, weekdaySchedule(), ErrInvalidRange, FieldEnd},
		{"empty range", mon(11, 0), mon(11, 0), nil, weekdaySchedule(), ErrInvalidRange, FieldEnd},
		{"inside lead time", mon(8, 10), mon(9, 0), nil, weekdaySchedule(), ErrTooSoon, FieldStart},
		{"too short", mon(10, 0), mon(10, 10), nil, weekdaySchedule(), ErrTooShort, FieldEnd},
		{"spans midnight", mon(23, 0), tue(1, 0), nil, weekdaySchedule(), ErrSpansMidnight, FieldEnd},
		{"ends at midnight", tue(23, 0), tue(24, 0), nil, weekdaySchedule(), nil, ""},
		{"before event start", mon(10, 0), mon(12, 30), boundedEvent, weekdaySchedule(), ErrOutsideEvent, FieldStart},
		{"after event end", mon(16, 0), mon(17, 30), boundedEvent, weekdaySchedule(), ErrOutsideEvent, FieldEnd},
		{"inside event", mon(14, 0), mon(15, 0), boundedEvent, weekdaySchedule(), nil, ""},
		{"no schedule", mon(10, 0), mon(11, 0), nil, nil, ErrNoSchedule, FieldVenueID},
		{"closed exception", mon(10, 0), mon(11, 0), nil, closedMonday, ErrVenueClosed, FieldStart},
		{"no weekly intervals", mon(10, 0).AddDate(0, 0, 2), mon(11, 0).AddDate(0, 0, 2), nil, weekdaySchedule(), ErrVenueClosed, FieldStart},
		// Правило 1 проверяется раньше правила 6
		{"first failure wins", mon(11, 0), mon(10, 0), nil, nil, ErrInvalidRange, FieldEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(tt.start, tt.end)
			err := validateWindow(req, now, tt.event, tt.schedule, DefaultOptions())

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestValidateWindow_VenueTimezone(t *testing.T) {
	schedule := weekdaySchedule()
	schedule.UTCOffset = "+03:00"
	now := mon(0, 0)

	// 07:00-08:00 UTC = 10:00-11:00 по времени площадки
	assert.NoError(t, validateWindow(request(mon(7, 0), mon(8, 0)), now, nil, schedule, DefaultOptions()))

	// 10:00-11:00 UTC = 13:00-14:00, перерыв между интервалами
	err := validateWindow(request(mon(10, 0), mon(11, 0)), now, nil, schedule, DefaultOptions())
	assert.ErrorIs(t, err, ErrOutsideIntervals)

	// 20:30-21:30 UTC = 23:30-00:30, переход через полночь по времени площадки
	err = validateWindow(request(mon(20, 30), mon(21, 30)), now, nil, schedule, DefaultOptions())
	assert.ErrorIs(t, err, ErrSpansMidnight)
}

func TestValidateWindow_ExceptionIntervalsReplaceWeekly(t *testing.T) {
	schedule := weekdaySchedule()
	schedule.Exceptions = []domain.ScheduleException{
		{
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Intervals: []domain.TimeInterval{{StartTime: "15:00", EndTime: "16:00"}},
		},
	}
	now := mon(8, 0)

	err := validateWindow(request(mon(10, 0), mon(11, 0)), now, nil, schedule, DefaultOptions())
	assert.ErrorIs(t, err, ErrOutsideIntervals)

	assert.NoError(t, validateWindow(request(mon(15, 0), mon(16, 0)), now, nil, schedule, DefaultOptions()))
}
