package models

import "github.com/m04kA/SMC-VenueBookingService/internal/domain"

// UpdateSettingsRequest частичное обновление настроек площадки.
// Не указанные поля сохраняют текущее значение. 0 выключает правило.
type UpdateSettingsRequest struct {
	PendingReviewMinutes      *int `json:"pendingReviewMinutes,omitempty"`
	PendingBeforeStartMinutes *int `json:"pendingBeforeStartMinutes,omitempty"`
	PendingWarningMinutes     *int `json:"pendingWarningMinutes,omitempty"`
}

// ApplyTo применяет обновления к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.VenueSettings) {
	if r.PendingReviewMinutes != nil {
		s.PendingReviewMinutes = *r.PendingReviewMinutes
	}
	if r.PendingBeforeStartMinutes != nil {
		s.PendingBeforeStartMinutes = *r.PendingBeforeStartMinutes
	}
	if r.PendingWarningMinutes != nil {
		s.PendingWarningMinutes = *r.PendingWarningMinutes
	}
}

// SettingsResponse настройки автоотмены площадки
type SettingsResponse struct {
	VenueID                   int64 `json:"venueId"`
	PendingReviewMinutes      int   `json:"pendingReviewMinutes"`
	PendingBeforeStartMinutes int   `json:"pendingBeforeStartMinutes"`
	PendingWarningMinutes     int   `json:"pendingWarningMinutes"`
	IsDefault                 bool  `json:"isDefault"` // у площадки нет своих настроек
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.VenueSettings, isDefault bool) *SettingsResponse {
	return &SettingsResponse{
		VenueID:                   s.VenueID,
		PendingReviewMinutes:      s.PendingReviewMinutes,
		PendingBeforeStartMinutes: s.PendingBeforeStartMinutes,
		PendingWarningMinutes:     s.PendingWarningMinutes,
		IsDefault:                 isDefault,
	}
}
