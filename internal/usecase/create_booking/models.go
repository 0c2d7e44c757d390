package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	EventID   int64     // ID мероприятия
	VenueID   int64     // ID площадки
	CreatorID int64     // ID пользователя, создающего бронирование
	Start     time.Time // Начало (с точностью до минуты)
	End       time.Time // Окончание
}

// Options параметры допуска бронирований
type Options struct {
	LeadTimeMinutes    int // минимальный запас до начала
	MinDurationMinutes int // минимальная длительность
}

// DefaultOptions параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		LeadTimeMinutes:    domain.DefaultLeadTimeMinutes,
		MinDurationMinutes: domain.DefaultMinDurationMinutes,
	}
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	EventID   int64
	VenueID   int64
	StartAt   time.Time
	EndAt     time.Time
	Status    string
	CreatedBy int64
	CreatedAt time.Time
}
