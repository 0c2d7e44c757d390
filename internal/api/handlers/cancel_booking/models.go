package cancel_booking

import (
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model. Тело запроса необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = strings.TrimSpace(*r.CancellationReason)
	}

	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: reason,
	}
}
