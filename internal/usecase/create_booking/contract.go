package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.EventBooking) (*domain.EventBooking, error)
}

// EventRepository интерфейс репозитория мероприятий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// ScheduleRepository интерфейс репозитория расписаний площадок
type ScheduleRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSchedule, error)
}

// ConflictDetector проверка пересечения с занятым временем площадки
type ConflictDetector interface {
	HasConflict(ctx context.Context, venueID int64, start, end time.Time) (bool, error)
}

// Notifier отправка уведомлений о смене статуса
type Notifier interface {
	NotifyStatus(ctx context.Context, booking *domain.EventBooking, status domain.BookingStatus, actorID *int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
