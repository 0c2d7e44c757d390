package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventID int64  `json:"eventId"`
	VenueID int64  `json:"venueId"`
	Start   string `json:"start"` // RFC3339, "2025-10-15T10:00:00+03:00"
	End     string `json:"end"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"eventId"`
	VenueID   int64  `json:"venueId"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// parseError ошибка разбора поля запроса
type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string {
	return e.field + ": " + e.err.Error()
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(creatorID int64) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, &parseError{field: createBooking.FieldStart, err: err}
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, &parseError{field: createBooking.FieldEnd, err: err}
	}

	return &createBooking.Request{
		EventID:   r.EventID,
		VenueID:   r.VenueID,
		CreatorID: creatorID,
		Start:     start,
		End:       end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		EventID:   resp.EventID,
		VenueID:   resp.VenueID,
		Start:     resp.StartAt.Format(time.RFC3339),
		End:       resp.EndAt.Format(time.RFC3339),
		Status:    resp.Status,
		CreatedBy: resp.CreatedBy,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
