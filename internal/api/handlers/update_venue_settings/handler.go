package update_venue_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/settings/models"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidThreshold   = "значения порогов не могут быть отрицательными"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/settings
// Частичное обновление: не переданные поля не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, venueIDStr, ok := handlers.PathID(r, "venueId")
	if !ok {
		h.logger.Warn("PUT /venues/{id}/settings - Invalid venue ID: %q", venueIDStr)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /venues/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), venueID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidThreshold), errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/settings - Invalid data: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidThreshold)

		default:
			h.logger.Error("PUT /venues/{id}/settings - Failed to update settings: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/settings - Settings updated: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
