package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.CreatorID <= 0 {
		return fmt.Errorf("%w: creatorID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет правила допуска 1-8 по порядку, первая ошибка побеждает.
// schedule может быть nil, тогда даты считаются в UTC.
func validateWindow(
	req *Request,
	now time.Time,
	event *domain.Event,
	schedule *domain.VenueSchedule,
	opts Options,
) error {
	// 1. Начало раньше окончания
	if !req.Start.Before(req.End) {
		return newValidationError(FieldEnd, ErrInvalidRange, msgInvalidRange)
	}

	// 2. Минимальный запас до начала
	if req.Start.Before(now.Add(time.Duration(opts.LeadTimeMinutes) * time.Minute)) {
		return newValidationError(FieldStart, ErrTooSoon, fmt.Sprintf(msgTooSoon, opts.LeadTimeMinutes))
	}

	// 3. Минимальная длительность
	if req.End.Sub(req.Start) < time.Duration(opts.MinDurationMinutes)*time.Minute {
		return newValidationError(FieldEnd, ErrTooShort, fmt.Sprintf(msgTooShort, opts.MinDurationMinutes))
	}

	loc := time.UTC
	if schedule != nil {
		if l, err := schedule.Location(); err == nil {
			loc = l
		}
	}
	start := req.Start.In(loc)
	end := req.End.In(loc)

	// 4. Один календарный день. Окончание ровно в полночь относится к тому же дню
	if !domain.SameDate(start, lastInstant(end)) {
		return newValidationError(FieldEnd, ErrSpansMidnight, msgSpansMidnight)
	}

	// 5. Границы мероприятия
	if event != nil {
		if event.StartsAt != nil && req.Start.Before(*event.StartsAt) {
			return newValidationError(FieldStart, ErrOutsideEvent, msgOutsideEvent)
		}
		if event.EndsAt != nil && req.End.After(*event.EndsAt) {
			return newValidationError(FieldEnd, ErrOutsideEvent, msgOutsideEvent)
		}
	}

	// 6. Расписание площадки
	if schedule == nil {
		return newValidationError(FieldVenueID, ErrNoSchedule, msgNoSchedule)
	}

	// 7. Интервалы работы на дату бронирования
	intervals := schedule.IntervalsFor(start)
	if len(intervals) == 0 {
		return newValidationError(FieldStart, ErrVenueClosed, msgVenueClosed)
	}

	// 8. Бронирование целиком внутри одного интервала
	startTime := types.NewTimeString(start)
	endTime := endTimeOfDay(start, end)
	for _, interval := range intervals {
		if interval.Contains(startTime, endTime) {
			return nil
		}
	}

	return newValidationError(FieldStart, ErrOutsideIntervals, msgOutsideIntervals)
}

// lastInstant момент, относящийся к тому же дню, что и правая граница [.., t)
func lastInstant(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}

// endTimeOfDay время окончания в формате HH:MM; полночь следующего дня дает "24:00"
func endTimeOfDay(start, end time.Time) types.TimeString {
	if !domain.SameDate(start, end) {
		return types.TimeString("24:00")
	}
	return types.NewTimeString(end)
}
