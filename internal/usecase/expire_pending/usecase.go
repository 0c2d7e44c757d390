package expire_pending

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

// UseCase автоотмена бронирований, слишком долго ожидающих рассмотрения
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	canceller    Canceller
	gate         Gate
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	canceller Canceller,
	gate Gate,
	notifier Notifier,
	sweepMetrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		canceller:    canceller,
		gate:         gate,
		notifier:     notifier,
		metrics:      sweepMetrics,
		timeProvider: &RealTimeProvider{},
		opts:         opts,
		logger:       logger,
	}
}

// RunIfDue выполняет проход, если он еще не выполнялся в течение интервала.
// Возвращает количество отмененных бронирований.
func (uc *UseCase) RunIfDue(ctx context.Context) int {
	acquired, err := uc.gate.TryAcquire(ctx, JobName, uc.opts.Interval)
	if err != nil {
		uc.logger.Error("ExpirePending: throttle error: %v", err)
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultError, 0, 0)
		return 0
	}
	if !acquired {
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultSkipped, 0, 0)
		return 0
	}

	return uc.Run(ctx, uc.timeProvider.Now())
}

// Run выполняет проход без проверки throttle.
// Ошибки по отдельным бронированиям логируются и не прерывают проход.
// Все загруженные бронирования помечаются проверенными и уходят в конец очереди.
func (uc *UseCase) Run(ctx context.Context, now time.Time) int {
	bookings, err := uc.bookingRepo.GetBatchForReview(ctx, domain.StatusPending, uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("ExpirePending: failed to load pending bookings: %v", err)
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultError, 0, 0)
		return 0
	}

	policies := make(map[int64]*venuePolicy)
	cancelled, failed, warned := 0, 0, 0
	checked := make([]int64, 0, len(bookings))

	for _, booking := range bookings {
		checked = append(checked, booking.ID)

		policy, err := uc.policyFor(ctx, booking.VenueID, policies)
		if err != nil {
			uc.logger.Error("ExpirePending: booking=%d skipped: %v", booking.ID, err)
			failed++
			continue
		}

		decision := Evaluate(booking, policy.schedule, policy.settings, now)

		if decision.Cancel {
			err := uc.canceller.CancelAuto(ctx, booking, decision.Comment, now)
			switch {
			case err == nil:
				cancelled++
			case errors.Is(err, cancellation.ErrStatusChanged), errors.Is(err, cancellation.ErrAlreadyTerminal):
				uc.logger.Info("ExpirePending: booking=%d already moved on, skipped", booking.ID)
			default:
				uc.logger.Error("ExpirePending: failed to cancel booking=%d: %v", booking.ID, err)
				failed++
			}
			continue
		}

		if decision.Warn(policy.settings) && uc.warnOnce(ctx, booking, decision.MinutesLeft) {
			warned++
		}
	}

	if err := uc.bookingRepo.MarkChecked(ctx, checked, now); err != nil {
		uc.logger.Error("ExpirePending: failed to mark %d bookings as checked: %v", len(checked), err)
	}

	uc.logger.Info("ExpirePending: processed=%d, cancelled=%d, warned=%d, failed=%d",
		len(bookings), cancelled, warned, failed)
	uc.metrics.ObserveSweep(JobName, metrics.SweepResultAcquired, cancelled, failed)

	return cancelled
}

// warnOnce отправляет предупреждение, если оно еще не отправлялось для бронирования
func (uc *UseCase) warnOnce(ctx context.Context, booking *domain.EventBooking, minutesLeft int) bool {
	key := warningKeyPrefix + strconv.FormatInt(booking.ID, 10)

	acquired, err := uc.gate.TryAcquire(ctx, key, uc.opts.WarningTTL)
	if err != nil {
		uc.logger.Error("ExpirePending: warning marker for booking=%d: %v", booking.ID, err)
		return false
	}
	if !acquired {
		return false
	}

	uc.notifier.NotifyPendingWarning(ctx, booking, minutesLeft)
	uc.metrics.IncPendingWarnings()
	return true
}

// policyFor загружает расписание и настройки площадки один раз за проход
func (uc *UseCase) policyFor(ctx context.Context, venueID int64, cache map[int64]*venuePolicy) (*venuePolicy, error) {
	if policy, ok := cache[venueID]; ok {
		return policy, nil
	}

	schedule, err := uc.scheduleRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, fmt.Errorf("%w: schedule of venue=%d: %v", ErrInternal, venueID, err)
		}
		schedule = nil
	}

	settings, err := uc.settingsRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: settings of venue=%d: %v", ErrInternal, venueID, err)
		}
		settings = domain.DefaultVenueSettings(venueID)
	}

	policy := &venuePolicy{schedule: schedule, settings: settings}
	cache[venueID] = policy
	return policy, nil
}
