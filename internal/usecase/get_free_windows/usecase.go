package get_free_windows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
)

// UseCase use case для получения свободных окон площадки на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeWindows: user=%d, venue=%d, date=%s",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeWindows: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// Расписание и бронирования читаются из одного снимка
	var response *Response
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		response, err = uc.compute(ctx, req, now)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNoSchedule) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetFreeWindows: transaction failed for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return response, nil
}

func (uc *UseCase) compute(ctx context.Context, req *Request, now time.Time) (*Response, error) {
	schedule, err := uc.scheduleRepo.GetByVenueID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetFreeWindows: venue=%d has no schedule", req.VenueID)
			return nil, ErrNoSchedule
		}
		uc.logger.Error("GetFreeWindows: failed to get schedule for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	loc, err := schedule.Location()
	if err != nil {
		uc.logger.Error("GetFreeWindows: venue=%d has invalid utc offset %q", req.VenueID, schedule.UTCOffset)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Дата берется как календарная, без учета часового пояса запроса
	y, m, d := req.Date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	if !dayEnd.After(now) {
		uc.logger.Warn("GetFreeWindows: date %s is in the past", dayStart.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	response := &Response{
		VenueID:   req.VenueID,
		Date:      dayStart,
		UTCOffset: schedule.UTCOffset,
		Windows:   []Window{},
	}

	open := openWindows(schedule.IntervalsFor(dayStart), dayStart)
	if len(open) == 0 {
		uc.logger.Info("GetFreeWindows: venue=%d is closed on %s", req.VenueID, dayStart.Format(domain.DateFormat))
		return response, nil
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
		VenueID:  req.VenueID,
		From:     &dayStart,
		To:       &dayEnd,
		Statuses: uc.opts.BlockingStatuses,
	})
	if err != nil {
		uc.logger.Error("GetFreeWindows: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	earliest := now.Truncate(time.Minute).Add(time.Duration(uc.opts.LeadTimeMinutes) * time.Minute)
	response.Windows = freeWindows(
		open,
		bookings,
		earliest.In(loc),
		time.Duration(uc.opts.MinDurationMinutes)*time.Minute,
	)

	uc.logger.Info("GetFreeWindows: venue=%d, date=%s, windows=%d, busy=%d",
		req.VenueID, dayStart.Format(domain.DateFormat), len(response.Windows), len(bookings))

	return response, nil
}
