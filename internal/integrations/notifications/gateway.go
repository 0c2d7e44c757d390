package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

const defaultPublishTimeout = 5 * time.Second

// Gateway отправляет уведомления о бронированиях.
// Ошибки доставки только логируются: состояние бронирования от них не зависит.
type Gateway struct {
	publisher Publisher
	timeout   time.Duration
	now       func() time.Time
	log       Logger
}

// NewGateway создает новый экземпляр шлюза уведомлений.
// Если publisher равен nil, события только пишутся в лог.
func NewGateway(publisher Publisher, timeout time.Duration, log Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Gateway{
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
		log:       log,
	}
}

// NotifyStatus сообщает о новом статусе бронирования. actorID равен nil для автоматических переходов
func (g *Gateway) NotifyStatus(ctx context.Context, booking *domain.EventBooking, status domain.BookingStatus, actorID *int64) {
	event := StatusChangedEvent{
		BookingID:  booking.ID,
		EventID:    booking.EventID,
		VenueID:    booking.VenueID,
		Status:     string(status),
		Comment:    booking.ModerationComment,
		ActorID:    actorID,
		CreatedBy:  booking.CreatedBy,
		StartAt:    booking.StartAt,
		EndAt:      booking.EndAt,
		OccurredAt: g.now().UTC(),
	}
	if booking.ModerationSource != nil {
		source := string(*booking.ModerationSource)
		event.Source = &source
	}

	if err := g.publish(ctx, RoutingKeyStatusChanged, event); err != nil {
		g.log.Error("NotifyStatus: booking=%d, status=%s: %v", booking.ID, status, err)
		return
	}
	g.log.Info("NotifyStatus: booking=%d, status=%s", booking.ID, status)
}

// NotifyPendingWarning предупреждает, что заявка будет автоматически отменена через minutesLeft минут
func (g *Gateway) NotifyPendingWarning(ctx context.Context, booking *domain.EventBooking, minutesLeft int) {
	event := PendingWarningEvent{
		BookingID:   booking.ID,
		EventID:     booking.EventID,
		VenueID:     booking.VenueID,
		CreatedBy:   booking.CreatedBy,
		MinutesLeft: minutesLeft,
		StartAt:     booking.StartAt,
		OccurredAt:  g.now().UTC(),
	}

	if err := g.publish(ctx, RoutingKeyPendingWarning, event); err != nil {
		g.log.Error("NotifyPendingWarning: booking=%d, minutes_left=%d: %v", booking.ID, minutesLeft, err)
		return
	}
	g.log.Info("NotifyPendingWarning: booking=%d, minutes_left=%d", booking.ID, minutesLeft)
}

func (g *Gateway) publish(ctx context.Context, key string, v any) (err error) {
	if g.publisher == nil {
		g.log.Warn("publish: broker disabled, event %s dropped", key)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPublish, r)
		}
	}()

	// Отправка не должна зависеть от отмены исходного запроса
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	if err := g.publisher.PublishJSON(ctx, key, v); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}
