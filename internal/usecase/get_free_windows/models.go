package get_free_windows

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса свободных окон площадки
type Request struct {
	UserID  int64     // ID пользователя (для логирования, не влияет на результат)
	VenueID int64     // ID площадки
	Date    time.Time // Календарная дата в часовом поясе площадки (время не учитывается)
}

// Options параметры допуска, те же что при создании бронирования
type Options struct {
	LeadTimeMinutes    int
	MinDurationMinutes int
	BlockingStatuses   []domain.BookingStatus
}

// DefaultOptions параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		LeadTimeMinutes:    domain.DefaultLeadTimeMinutes,
		MinDurationMinutes: domain.DefaultMinDurationMinutes,
		BlockingStatuses:   domain.DefaultBlockingStatuses,
	}
}

// Response модель ответа со списком свободных окон
type Response struct {
	VenueID   int64
	Date      time.Time // Начало дня в часовом поясе площадки
	UTCOffset string
	Windows   []Window
}

// Window свободный промежуток [Start, End) внутри часов работы площадки
type Window struct {
	Start time.Time
	End   time.Time
}

// DurationMinutes длительность окна в минутах
func (w Window) DurationMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}
