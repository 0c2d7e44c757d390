package settings

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек площадок
type SettingsRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSettings, error)
	Upsert(ctx context.Context, settings *domain.VenueSettings) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
