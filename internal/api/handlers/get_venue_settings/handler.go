package get_venue_settings

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

const msgInvalidVenueID = "некорректный ID площадки"

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

// Handle GET /api/v1/venues/{venueId}/settings
// Публичный endpoint - без авторизации. Если у площадки нет настроек, отдаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, venueIDStr, ok := handlers.PathID(r, "venueId")
	if !ok {
		h.logger.Warn("GET /venues/{id}/settings - Invalid venue ID: %q", venueIDStr)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.Get(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/settings - Failed to get settings: venue_id=%d, error=%v",
			venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/settings - Settings retrieved: venue_id=%d, default=%t",
		venueID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
