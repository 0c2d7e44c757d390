package domain

import "time"

// Default venue settings
const (
	DefaultPendingReviewMinutes      = 480 // рабочий день
	DefaultPendingBeforeStartMinutes = 60
	DefaultPendingWarningMinutes     = 30
)

// Booking admission defaults
const (
	DefaultLeadTimeMinutes    = 15
	DefaultMinDurationMinutes = 15
)

// Sweeper defaults
const (
	DefaultPendingSweepInterval = 30 * time.Second
	DefaultPaymentSweepInterval = 2 * time.Minute
	DefaultSweepBatchSize       = 50
	DefaultWarningDedupTTL      = 6 * time.Hour
)

// Auto cancellation comments shown to users
const (
	CommentPendingReviewExpired = "Бронирование автоматически отменено: истекло время на рассмотрение заявки"
	CommentPendingStartExpired  = "Бронирование автоматически отменено: заявка не была рассмотрена до начала мероприятия"
	CommentPaymentExpired       = "Бронирование автоматически отменено: истек срок оплаты"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OpenPaymentStatuses payment statuses cancelled together with the booking
var OpenPaymentStatuses = []PaymentStatus{
	PaymentStatusCreated,
	PaymentStatusPending,
}

// ActiveStatuses non-terminal booking statuses
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingPayment,
	StatusPaid,
	StatusApproved,
}

// DefaultBlockingStatuses statuses that occupy venue time for conflict detection
var DefaultBlockingStatuses = ActiveStatuses

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusAwaitingPayment, StatusPaid, StatusApproved, StatusCancelled:
		return status, true
	default:
		return "", false
	}
}
