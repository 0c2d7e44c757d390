package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

// Service автоматическая отмена бронирования вместе с его открытым платежом
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отмены
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// CancelAuto отменяет бронирование с комментарием comment от имени системы.
// Бронирование и его платежи в статусах created/pending обновляются в одной транзакции;
// уведомление отправляется после коммита. При успехе booking обновляется на месте.
func (s *Service) CancelAuto(ctx context.Context, booking *domain.EventBooking, comment string, now time.Time) error {
	return s.cancel(ctx, booking, domain.Cancellation{
		BookingID:      booking.ID,
		ExpectedStatus: booking.Status,
		Comment:        comment,
		Source:         domain.ModerationSourceAuto,
		At:             now,
	})
}

// CancelManual отменяет бронирование по запросу пользователя actorID
func (s *Service) CancelManual(ctx context.Context, booking *domain.EventBooking, actorID int64, comment string, now time.Time) error {
	return s.cancel(ctx, booking, domain.Cancellation{
		BookingID:      booking.ID,
		ExpectedStatus: booking.Status,
		Comment:        comment,
		Source:         domain.ModerationSourceManual,
		ModeratedBy:    &actorID,
		At:             now,
	})
}

func (s *Service) cancel(ctx context.Context, booking *domain.EventBooking, c domain.Cancellation) error {
	if booking.IsTerminal() {
		return ErrAlreadyTerminal
	}

	var paymentsCancelled int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.bookingRepo.Cancel(txCtx, c)
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return ErrStatusChanged
		}
		if err != nil {
			return fmt.Errorf("%w: cancel - booking=%d: %v", ErrInternal, booking.ID, err)
		}

		paymentsCancelled, err = s.paymentRepo.UpdateStatusByOwner(
			txCtx,
			domain.BookingPaymentOwner(booking.ID),
			domain.OpenPaymentStatuses,
			domain.PaymentStatusCancelled,
			c.At,
		)
		if err != nil {
			return fmt.Errorf("%w: cancel - payments of booking=%d: %v", ErrInternal, booking.ID, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	previous := booking.Status
	comment, source, at := c.Comment, c.Source, c.At
	booking.Status = domain.StatusCancelled
	booking.ModerationComment = &comment
	booking.ModerationSource = &source
	booking.ModeratedBy = c.ModeratedBy
	booking.ModeratedAt = &at
	booking.UpdatedAt = at

	s.logger.Info("cancel: booking=%d, %s -> %s, source=%s, payments_cancelled=%d",
		booking.ID, previous, domain.StatusCancelled, source, paymentsCancelled)

	s.notifier.NotifyStatus(ctx, booking, domain.StatusCancelled, c.ModeratedBy)

	return nil
}
