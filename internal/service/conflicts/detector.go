package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Detector проверяет пересечение окна с активными бронированиями площадки
type Detector struct {
	repo     BookingRepository
	blocking []domain.BookingStatus
}

// NewDetector создает детектор. Пустой список статусов заменяется на domain.DefaultBlockingStatuses
func NewDetector(repo BookingRepository, blocking []domain.BookingStatus) *Detector {
	if len(blocking) == 0 {
		blocking = domain.DefaultBlockingStatuses
	}
	return &Detector{repo: repo, blocking: blocking}
}

// BlockingStatuses статусы, которые занимают время площадки
func (d *Detector) BlockingStatuses() []domain.BookingStatus {
	return d.blocking
}

// HasConflict возвращает true, если на площадке есть бронирование в блокирующем статусе,
// пересекающееся с [start, end)
func (d *Detector) HasConflict(ctx context.Context, venueID int64, start, end time.Time) (bool, error) {
	exists, err := d.repo.ExistsOverlapping(ctx, venueID, start, end, d.blocking)
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - venue=%d: %v", ErrInternal, venueID, err)
	}
	return exists, nil
}

// Overlaps проверка пересечения полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Соседние интервалы (aEnd == bStart) не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindOverlapping возвращает бронирования площадки в статусах statuses, пересекающиеся с [start, end)
func FindOverlapping(bookings []*domain.EventBooking, venueID int64, start, end time.Time, statuses []domain.BookingStatus) []*domain.EventBooking {
	result := make([]*domain.EventBooking, 0)
	for _, b := range bookings {
		if b.VenueID != venueID || !containsStatus(statuses, b.Status) {
			continue
		}
		if Overlaps(b.StartAt, b.EndAt, start, end) {
			result = append(result, b)
		}
	}
	return result
}

func containsStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
