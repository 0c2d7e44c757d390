package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	UserID           int64      `json:"userId"`
	VenueID          int64      `json:"venueId"`
	From             *time.Time `json:"from,omitempty"`             // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`               // Конец периода (опционально)
	Statuses         []string   `json:"statuses,omitempty"`         // Фильтр по статусам (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:          r.VenueID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}

	for _, raw := range r.Statuses {
		status, err := ToDomainBookingStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// GetUserBookingsRequest запрос на получение бронирований, созданных пользователем
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	VenueID   int64     `json:"venueId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"createdBy"`

	ModerationComment *string    `json:"moderationComment,omitempty"`
	ModerationSource  *string    `json:"moderationSource,omitempty"` // manual | auto
	ModeratedBy       *int64     `json:"moderatedBy,omitempty"`
	ModeratedAt       *time.Time `json:"moderatedAt,omitempty"`
	PaymentDueAt      *time.Time `json:"paymentDueAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.EventBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		EventID:           b.EventID,
		VenueID:           b.VenueID,
		Start:             b.StartAt,
		End:               b.EndAt,
		Status:            string(b.Status),
		CreatedBy:         b.CreatedBy,
		ModerationComment: b.ModerationComment,
		ModeratedBy:       b.ModeratedBy,
		ModeratedAt:       b.ModeratedAt,
		PaymentDueAt:      b.PaymentDueAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	if b.ModerationSource != nil {
		source := string(*b.ModerationSource)
		resp.ModerationSource = &source
	}

	return resp
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.EventBooking) *BookingListResponse {
	result := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	parsed, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}
