package expire_pending

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// JobName имя задачи в метриках и ключ throttle
const JobName = "expire_pending"

const warningKeyPrefix = "pending_warning:"

// Options параметры запуска
type Options struct {
	Interval   time.Duration // не чаще одного прохода за интервал
	BatchSize  int           // максимум бронирований за проход
	WarningTTL time.Duration // время жизни отметки об отправленном предупреждении
}

// DefaultOptions параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Interval:   domain.DefaultPendingSweepInterval,
		BatchSize:  domain.DefaultSweepBatchSize,
		WarningTTL: domain.DefaultWarningDedupTTL,
	}
}

// Decision результат проверки одного бронирования
type Decision struct {
	Cancel      bool
	Comment     string
	MinutesLeft int // минут до автоотмены, если Cancel = false; -1 если ни одно правило не включено
}

// Warn возвращает true, если пора отправить предупреждение
func (d Decision) Warn(settings *domain.VenueSettings) bool {
	return !d.Cancel &&
		settings.HasWarning() &&
		d.MinutesLeft > 0 &&
		d.MinutesLeft <= settings.PendingWarningMinutes
}

type venuePolicy struct {
	schedule *domain.VenueSchedule // nil, если расписания нет
	settings *domain.VenueSettings
}
