package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistsOverlapping(ctx context.Context, venueID int64, start, end time.Time, statuses []domain.BookingStatus) (bool, error)
}
