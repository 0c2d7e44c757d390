package expire_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetExpiredAwaitingPayment(ctx context.Context, now time.Time, limit int) ([]*domain.EventBooking, error)
}

// Canceller автоматическая отмена бронирования с каскадом на платеж
type Canceller interface {
	CancelAuto(ctx context.Context, booking *domain.EventBooking, comment string, now time.Time) error
}

// Gate защита "не чаще одного раза за интервал"
type Gate interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Metrics метрики фоновых задач
type Metrics interface {
	ObserveSweep(job, result string, cancelled, failed int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
