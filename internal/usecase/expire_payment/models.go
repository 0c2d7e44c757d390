package expire_payment

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// JobName имя задачи в метриках и ключ throttle
const JobName = "expire_payment"

// Options параметры запуска
type Options struct {
	Interval  time.Duration
	BatchSize int
}

// DefaultOptions параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Interval:  domain.DefaultPaymentSweepInterval,
		BatchSize: domain.DefaultSweepBatchSize,
	}
}
