package get_free_windows

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// openWindows переводит интервалы работы дня day в абсолютное время, упорядоченные по началу.
// Пересекающиеся и смежные интервалы склеиваются.
func openWindows(intervals []domain.TimeInterval, day time.Time) []Window {
	windows := make([]Window, 0, len(intervals))
	for _, interval := range intervals {
		if interval.StartTime.Minutes() < 0 || interval.EndTime.Minutes() < 0 {
			continue
		}
		start := interval.StartTime.On(day)
		end := interval.EndTime.On(day)
		if !start.Before(end) {
			continue
		}
		windows = append(windows, Window{Start: start, End: end})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	merged := make([]Window, 0, len(windows))
	for _, w := range windows {
		if n := len(merged); n > 0 && !w.Start.After(merged[n-1].End) {
			if w.End.After(merged[n-1].End) {
				merged[n-1].End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// freeWindows вычитает занятые промежутки из окон работы.
// Окна начинаются не раньше earliest, окна короче minDuration отбрасываются.
// Бронирование, заканчивающееся ровно в начале окна, его не занимает.
func freeWindows(open []Window, bookings []*domain.EventBooking, earliest time.Time, minDuration time.Duration) []Window {
	busy := make([]Window, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, Window{Start: b.StartAt, End: b.EndAt})
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	result := make([]Window, 0, len(open))
	for _, w := range open {
		cursor := w.Start
		if cursor.Before(earliest) {
			cursor = earliest
		}

		for _, b := range busy {
			if !b.End.After(cursor) || !b.Start.Before(w.End) {
				continue
			}
			if b.Start.After(cursor) {
				result = appendWindow(result, cursor, b.Start, minDuration)
			}
			if b.End.After(cursor) {
				cursor = b.End
			}
		}

		result = appendWindow(result, cursor, w.End, minDuration)
	}
	return result
}

func appendWindow(windows []Window, start, end time.Time, minDuration time.Duration) []Window {
	if end.Sub(start) < minDuration || !start.Before(end) {
		return windows
	}
	return append(windows, Window{Start: start, End: end})
}
