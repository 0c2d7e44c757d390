package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventBooking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.EventBooking, error)
	GetByCreator(ctx context.Context, userID int64, statuses []domain.BookingStatus) ([]*domain.EventBooking, error)
}

// PaymentExpiry отмена бронирования с истекшим сроком оплаты в момент чтения
type PaymentExpiry interface {
	CancelIfExpired(ctx context.Context, booking *domain.EventBooking) (bool, error)
}

// Canceller ручная отмена бронирования вместе с открытыми платежами
type Canceller interface {
	CancelManual(ctx context.Context, booking *domain.EventBooking, actorID int64, comment string, now time.Time) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider, возвращающая реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
