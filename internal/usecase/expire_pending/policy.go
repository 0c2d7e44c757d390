package expire_pending

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/workinghours"
)

// Evaluate применяет правила автоотмены к бронированию в статусе pending.
//   - по рабочим минутам с момента создания (pending_review_minutes);
//   - по минутам до начала бронирования (pending_before_start_minutes).
func Evaluate(
	booking *domain.EventBooking,
	schedule *domain.VenueSchedule,
	settings *domain.VenueSettings,
	now time.Time,
) Decision {
	minutesLeft := -1

	if settings.HasReviewCutoff() {
		elapsed := workinghours.Minutes(schedule, booking.CreatedAt, now)
		if elapsed >= settings.PendingReviewMinutes {
			return Decision{Cancel: true, Comment: domain.CommentPendingReviewExpired}
		}
		minutesLeft = settings.PendingReviewMinutes - elapsed
	}

	if settings.HasStartCutoff() {
		untilStart := int(booking.StartAt.Sub(now) / time.Minute)
		if untilStart <= settings.PendingBeforeStartMinutes {
			return Decision{Cancel: true, Comment: domain.CommentPendingStartExpired}
		}
		slack := untilStart - settings.PendingBeforeStartMinutes
		if minutesLeft < 0 || slack < minutesLeft {
			minutesLeft = slack
		}
	}

	return Decision{MinutesLeft: minutesLeft}
}
