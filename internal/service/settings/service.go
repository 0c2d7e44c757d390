package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings/models"
)

// Service сервис настроек автоотмены площадок
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки площадки. Если своих настроек нет, возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context, venueID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for venue=%d", venueID)

	if venueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	settings, isDefault, err := s.load(ctx, venueID)
	if err != nil {
		s.logger.Error("Get: repository error for venue=%d: %v", venueID, err)
		return nil, err
	}

	return models.FromDomainSettings(settings, isDefault), nil
}

// Update частично обновляет настройки площадки
func (s *Service) Update(ctx context.Context, venueID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for venue=%d", venueID)

	if venueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	settings, _, err := s.load(ctx, venueID)
	if err != nil {
		s.logger.Error("Update: repository error for venue=%d: %v", venueID, err)
		return nil, err
	}

	req.ApplyTo(settings)

	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for venue=%d: %v", venueID, err)
		return nil, err
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		s.logger.Error("Update: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: venue=%d review=%d before_start=%d warning=%d", venueID,
		settings.PendingReviewMinutes, settings.PendingBeforeStartMinutes, settings.PendingWarningMinutes)
	return models.FromDomainSettings(settings, false), nil
}

func (s *Service) load(ctx context.Context, venueID int64) (*domain.VenueSettings, bool, error) {
	settings, err := s.settingsRepo.GetByVenueID(ctx, venueID)
	if err == nil {
		return settings, false, nil
	}
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return domain.DefaultVenueSettings(venueID), true, nil
	}
	return nil, false, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
}

// validateSettings проверяет пороги: все значения неотрицательные
func validateSettings(s *domain.VenueSettings) error {
	if s.PendingReviewMinutes < 0 {
		return fmt.Errorf("%w: pendingReviewMinutes", ErrInvalidThreshold)
	}
	if s.PendingBeforeStartMinutes < 0 {
		return fmt.Errorf("%w: pendingBeforeStartMinutes", ErrInvalidThreshold)
	}
	if s.PendingWarningMinutes < 0 {
		return fmt.Errorf("%w: pendingWarningMinutes", ErrInvalidThreshold)
	}
	return nil
}
