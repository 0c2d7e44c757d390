package notifications

import "time"

// Ключи маршрутизации событий
const (
	RoutingKeyStatusChanged  = "booking.status_changed"
	RoutingKeyPendingWarning = "booking.pending_warning"
)

// StatusChangedEvent событие смены статуса бронирования
type StatusChangedEvent struct {
	BookingID  int64     `json:"booking_id"`
	EventID    int64     `json:"event_id"`
	VenueID    int64     `json:"venue_id"`
	Status     string    `json:"status"`
	Source     *string   `json:"source,omitempty"`
	Comment    *string   `json:"comment,omitempty"`
	ActorID    *int64    `json:"actor_id,omitempty"` // nil для автоматических переходов
	CreatedBy  int64     `json:"created_by"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PendingWarningEvent предупреждение о скорой автоотмене заявки
type PendingWarningEvent struct {
	BookingID   int64     `json:"booking_id"`
	EventID     int64     `json:"event_id"`
	VenueID     int64     `json:"venue_id"`
	CreatedBy   int64     `json:"created_by"`
	MinutesLeft int       `json:"minutes_left"`
	StartAt     time.Time `json:"start_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}
