package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const (
	schedulesTable          = "venue_schedules"
	weeklyIntervalsTable    = "venue_schedule_intervals"
	exceptionsTable         = "venue_schedule_exceptions"
	exceptionIntervalsTable = "venue_schedule_exception_intervals"
)

// Repository репозиторий расписаний площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenueID получает расписание площадки вместе с недельными интервалами
// и исключениями (с их интервалами)
func (r *Repository) GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "venue_id", "utc_offset").
		From(schedulesTable).
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.VenueSchedule
	var utcOffset sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.ID, &schedule.VenueID, &utcOffset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - scan schedule: %v", ErrScanRow, err)
	}
	schedule.UTCOffset = utcOffset.String

	if _, err := domain.ParseUTCOffset(schedule.UTCOffset); err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - venue=%d: %v", ErrInvalidSchedule, venueID, err)
	}

	schedule.Weekly, err = r.getWeeklyIntervals(ctx, executor, schedule.ID)
	if err != nil {
		return nil, err
	}

	schedule.Exceptions, err = r.getExceptions(ctx, executor, schedule.ID)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *Repository) getWeeklyIntervals(ctx context.Context, executor DBExecutor, scheduleID int64) ([]domain.WeeklyInterval, error) {
	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From(weeklyIntervalsTable).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.WeeklyInterval, 0)
	for rows.Next() {
		var interval domain.WeeklyInterval
		if err := rows.Scan(&interval.DayOfWeek, &interval.StartTime, &interval.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyIntervals - scan row: %v", ErrScanRow, err)
		}
		if interval.DayOfWeek < 1 || interval.DayOfWeek > 7 {
			return nil, fmt.Errorf("%w: getWeeklyIntervals - day_of_week=%d", ErrInvalidSchedule, interval.DayOfWeek)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

func (r *Repository) getExceptions(ctx context.Context, executor DBExecutor, scheduleID int64) ([]domain.ScheduleException, error) {
	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.date",
		"e.is_closed",
		"i.start_time",
		"i.end_time",
	).
		From(exceptionsTable + " e").
		LeftJoin(exceptionIntervalsTable + " i ON i.exception_id = e.id").
		Where(squirrel.Eq{"e.schedule_id": scheduleID}).
		OrderBy("e.date ASC", "i.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.ScheduleException, 0)
	indexByID := make(map[int64]int)

	for rows.Next() {
		var (
			id         int64
			date       time.Time
			closed     bool
			start, end types.TimeString
		)
		if err := rows.Scan(&id, &date, &closed, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: getExceptions - scan row: %v", ErrScanRow, err)
		}

		idx, ok := indexByID[id]
		if !ok {
			exceptions = append(exceptions, domain.ScheduleException{Date: date, Closed: closed})
			idx = len(exceptions) - 1
			indexByID[id] = idx
		}

		// LEFT JOIN: у исключения может не быть интервалов
		if !start.IsZero() && !end.IsZero() {
			exceptions[idx].Intervals = append(exceptions[idx].Intervals, domain.TimeInterval{
				StartTime: start,
				EndTime:   end,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}
