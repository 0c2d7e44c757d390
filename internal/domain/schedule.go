package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// VenueSchedule weekly availability of a venue plus date-specific exceptions
type VenueSchedule struct {
	ID         int64
	VenueID    int64
	UTCOffset  string // "+03:00", "-05:30", "UTC"
	Weekly     []WeeklyInterval
	Exceptions []ScheduleException
}

// WeeklyInterval open interval on a day of week (1 = Monday ... 7 = Sunday)
type WeeklyInterval struct {
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ScheduleException override for a single calendar date.
// Closed = true closes the venue for the day, otherwise Intervals replace the weekly ones.
type ScheduleException struct {
	Date      time.Time // только дата, время не учитывается
	Closed    bool
	Intervals []TimeInterval
}

// TimeInterval interval within a day [StartTime, EndTime)
type TimeInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Contains returns true if [start, end) lies fully inside the interval
func (i TimeInterval) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(i.StartTime) && !end.IsAfter(i.EndTime)
}

// Location fixed zone built from the UTC offset label
func (s *VenueSchedule) Location() (*time.Location, error) {
	return ParseUTCOffset(s.UTCOffset)
}

// IntervalsFor resolves open intervals for the calendar date of day.
// An exception for the date always wins over weekly intervals.
func (s *VenueSchedule) IntervalsFor(day time.Time) []TimeInterval {
	for _, exc := range s.Exceptions {
		if !SameDate(exc.Date, day) {
			continue
		}
		if exc.Closed {
			return nil
		}
		return exc.Intervals
	}

	dow := ISOWeekday(day)
	intervals := make([]TimeInterval, 0, 2)
	for _, w := range s.Weekly {
		if w.DayOfWeek == dow {
			intervals = append(intervals, TimeInterval{StartTime: w.StartTime, EndTime: w.EndTime})
		}
	}
	return intervals
}

// ISOWeekday day of week where Monday = 1 and Sunday = 7
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// SameDate compares calendar dates ignoring time and location of the values
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseUTCOffset parses "+HH:MM" / "-HH:MM" / "UTC" / "" into a fixed zone
func ParseUTCOffset(label string) (*time.Location, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "UTC") || label == "Z" {
		return time.UTC, nil
	}

	label = strings.TrimPrefix(strings.TrimPrefix(label, "UTC"), "GMT")

	sign := 1
	switch {
	case strings.HasPrefix(label, "+"):
		label = label[1:]
	case strings.HasPrefix(label, "-"):
		sign = -1
		label = label[1:]
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, label)
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(label, "%d:%d", &hours, &minutes); err != nil {
		if _, err := fmt.Sscanf(label, "%d", &hours); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, label)
		}
	}
	if hours > 14 || minutes < 0 || minutes > 59 || hours < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, label)
	}

	offset := sign * (hours*3600 + minutes*60)
	name := fmt.Sprintf("%+03d:%02d", sign*hours, minutes)
	if sign < 0 && hours == 0 {
		name = fmt.Sprintf("-00:%02d", minutes)
	}
	return time.FixedZone(name, offset), nil
}
