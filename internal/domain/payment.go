package domain

import "time"

// PaymentStatus status of a payment
type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentOwnerKind kind of entity a payment belongs to
type PaymentOwnerKind string

const (
	PaymentOwnerEventBooking PaymentOwnerKind = "event_booking"
)

// PaymentOwner tagged reference to the payable entity
type PaymentOwner struct {
	Kind PaymentOwnerKind
	ID   int64
}

// BookingPaymentOwner owner reference for an event booking
func BookingPaymentOwner(bookingID int64) PaymentOwner {
	return PaymentOwner{Kind: PaymentOwnerEventBooking, ID: bookingID}
}

// Payment payment linked to an owner
type Payment struct {
	ID        int64
	Owner     PaymentOwner
	Status    PaymentStatus
	Amount    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true while the payment may still be cancelled by expiry
func (p *Payment) IsOpen() bool {
	return p.Status == PaymentStatusCreated || p.Status == PaymentStatusPending
}
