package domain

import "time"

// BookingStatus represents the status of an event booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusAwaitingPayment BookingStatus = "awaiting_payment"
	StatusPaid            BookingStatus = "paid"
	StatusApproved        BookingStatus = "approved"
	StatusCancelled       BookingStatus = "cancelled"
)

// ModerationSource показывает, кто принял решение по бронированию
type ModerationSource string

const (
	ModerationSourceManual ModerationSource = "manual"
	ModerationSourceAuto   ModerationSource = "auto"
)

// EventBooking reservation of a venue for part of a parent event
type EventBooking struct {
	ID        int64
	EventID   int64
	VenueID   int64
	StartAt   time.Time
	EndAt     time.Time
	Status    BookingStatus
	CreatedBy int64

	ModerationComment *string
	ModerationSource  *ModerationSource
	ModeratedBy       *int64
	ModeratedAt       *time.Time

	PaymentDueAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transitions are possible
func (b *EventBooking) IsTerminal() bool {
	return b.Status == StatusCancelled
}

// IsPaymentExpired returns true if the booking waits for payment past its deadline
func (b *EventBooking) IsPaymentExpired(now time.Time) bool {
	return b.Status == StatusAwaitingPayment &&
		b.PaymentDueAt != nil &&
		!b.PaymentDueAt.After(now)
}

// DurationMinutes длительность бронирования в минутах
func (b *EventBooking) DurationMinutes() int {
	return int(b.EndAt.Sub(b.StartAt) / time.Minute)
}

// Cancellation описывает отмену бронирования.
// ModeratedBy nil для автоматической отмены.
type Cancellation struct {
	BookingID      int64
	ExpectedStatus BookingStatus // отмена применяется, только если статус не изменился
	Comment        string
	Source         ModerationSource
	ModeratedBy    *int64
	At             time.Time
}

// CanTransition проверяет допустимость перехода между статусами.
// Статусы двигаются только вперед: pending -> awaiting_payment -> paid -> approved,
// отмена возможна из любого нетерминального статуса.
func CanTransition(from, to BookingStatus) bool {
	if from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank > fromRank
}

var statusRank = map[BookingStatus]int{
	StatusPending:         0,
	StatusAwaitingPayment: 1,
	StatusPaid:            2,
	StatusApproved:        3,
}

// Event parent event the booking belongs to.
// StartsAt/EndsAt are optional bounds for its bookings.
type Event struct {
	ID       int64
	Title    string
	StartsAt *time.Time
	EndsAt   *time.Time
}

// HasBounds returns true if the event restricts its bookings to a time window
func (e *Event) HasBounds() bool {
	return e.StartsAt != nil && e.EndsAt != nil
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID          int64           // Обязательный параметр
	From             *time.Time      // Бронирования, заканчивающиеся позже From (опционально)
	To               *time.Time      // Бронирования, начинающиеся раньше To (опционально)
	Statuses         []BookingStatus // Фильтр по статусам (опционально)
	IncludeCancelled bool            // Включать ли отмененные бронирования
}

// AllowsStatus проверяет, проходит ли статус фильтр.
// Без явных статусов отмененные пропускаются только при IncludeCancelled.
func (f VenueBookingsFilter) AllowsStatus(status BookingStatus) bool {
	if len(f.Statuses) == 0 {
		return status != StatusCancelled || f.IncludeCancelled
	}
	for _, s := range f.Statuses {
		if s == status {
			return true
		}
	}
	return false
}
