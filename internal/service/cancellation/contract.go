package cancellation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Cancel(ctx context.Context, c domain.Cancellation) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	UpdateStatusByOwner(
		ctx context.Context,
		owner domain.PaymentOwner,
		from []domain.PaymentStatus,
		to domain.PaymentStatus,
		at time.Time,
	) (int64, error)
}

// Notifier отправка уведомлений о смене статуса
type Notifier interface {
	NotifyStatus(ctx context.Context, booking *domain.EventBooking, status domain.BookingStatus, actorID *int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
