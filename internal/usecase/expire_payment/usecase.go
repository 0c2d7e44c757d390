package expire_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

// UseCase автоотмена бронирований с истекшим сроком оплаты
type UseCase struct {
	bookingRepo  BookingRepository
	canceller    Canceller
	gate         Gate
	metrics      Metrics
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	canceller Canceller,
	gate Gate,
	sweepMetrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		canceller:    canceller,
		gate:         gate,
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
		uc.logger.Error("ExpirePayment: throttle error: %v", err)
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultError, 0, 0)
		return 0
	}
	if !acquired {
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultSkipped, 0, 0)
		return 0
	}

	return uc.Run(ctx, uc.timeProvider.Now())
}

// Run выполняет проход без проверки throttle
func (uc *UseCase) Run(ctx context.Context, now time.Time) int {
	bookings, err := uc.bookingRepo.GetExpiredAwaitingPayment(ctx, now, uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("ExpirePayment: failed to load expired bookings: %v", err)
		uc.metrics.ObserveSweep(JobName, metrics.SweepResultError, 0, 0)
		return 0
	}

	cancelled, failed := 0, 0
	for _, booking := range bookings {
		ok, err := uc.cancelIfExpired(ctx, booking, now)
		if err != nil {
			uc.logger.Error("ExpirePayment: failed to cancel booking=%d: %v", booking.ID, err)
			failed++
			continue
		}
		if ok {
			cancelled++
		}
	}

	uc.logger.Info("ExpirePayment: processed=%d, cancelled=%d, failed=%d", len(bookings), cancelled, failed)
	uc.metrics.ObserveSweep(JobName, metrics.SweepResultAcquired, cancelled, failed)

	return cancelled
}

// CancelIfExpired отменяет одно бронирование, если срок его оплаты истек.
// Возвращает false, если бронирование не ожидает оплату или срок еще не наступил.
// Используется при чтении бронирования, throttle не применяется.
func (uc *UseCase) CancelIfExpired(ctx context.Context, booking *domain.EventBooking) (bool, error) {
	return uc.cancelIfExpired(ctx, booking, uc.timeProvider.Now())
}

func (uc *UseCase) cancelIfExpired(ctx context.Context, booking *domain.EventBooking, now time.Time) (bool, error) {
	if !booking.IsPaymentExpired(now) {
		return false, nil
	}

	err := uc.canceller.CancelAuto(ctx, booking, domain.CommentPaymentExpired, now)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cancellation.ErrStatusChanged), errors.Is(err, cancellation.ErrAlreadyTerminal):
		uc.logger.Info("ExpirePayment: booking=%d already moved on, skipped", booking.ID)
		return false, nil
	default:
		return false, fmt.Errorf("%w: booking=%d: %v", ErrInternal, booking.ID, err)
	}
}
