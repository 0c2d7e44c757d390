package workinghours

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Minutes возвращает количество минут диапазона [from, to), попадающих в открытые интервалы площадки.
//
// Интервалы определяются по каждому календарному дню диапазона (в часовом поясе площадки):
// исключение на дату имеет приоритет над недельным расписанием.
// Без расписания считаются все минуты диапазона.
func Minutes(schedule *domain.VenueSchedule, from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	if schedule == nil {
		return int(to.Sub(from) / time.Minute)
	}

	loc, err := schedule.Location()
	if err != nil {
		loc = time.UTC
	}
	from = from.In(loc)
	to = to.In(loc)

	var total time.Duration
	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, interval := range schedule.IntervalsFor(day) {
			total += clip(interval, day, from, to)
		}
	}

	return int(total / time.Minute)
}

// clip пересечение интервала дня day с диапазоном [from, to)
func clip(interval domain.TimeInterval, day, from, to time.Time) time.Duration {
	if interval.StartTime.Minutes() < 0 || interval.EndTime.Minutes() < 0 {
		return 0
	}

	start := interval.StartTime.On(day)
	end := interval.EndTime.On(day)

	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
