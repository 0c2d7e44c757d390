package expire_pending

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBatchForReview(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.EventBooking, error)
	MarkChecked(ctx context.Context, ids []int64, at time.Time) error
}

// ScheduleRepository интерфейс репозитория расписаний площадок
type ScheduleRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSchedule, error)
}

// SettingsRepository интерфейс репозитория настроек площадок
type SettingsRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSettings, error)
}

// Canceller автоматическая отмена бронирования с каскадом на платеж
type Canceller interface {
	CancelAuto(ctx context.Context, booking *domain.EventBooking, comment string, now time.Time) error
}

// Gate защита "не чаще одного раза за интервал"
type Gate interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Notifier отправка предупреждений
type Notifier interface {
	NotifyPendingWarning(ctx context.Context, booking *domain.EventBooking, minutesLeft int)
}

// Metrics метрики фоновых задач
type Metrics interface {
	ObserveSweep(job, result string, cancelled, failed int)
	IncPendingWarnings()
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
