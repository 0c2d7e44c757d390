package get_free_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	getFreeWindows "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_free_windows"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast     = "дата уже прошла"
	msgNoSchedule     = "для площадки не настроено расписание работы"
)

type Handler struct {
	useCase GetFreeWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/free-windows
// Query params: date (required, YYYY-MM-DD, дата площадки)
// Публичный endpoint - X-User-ID учитывается только для логов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, venueIDStr, ok := handlers.PathID(r, "venueId")
	if !ok {
		h.logger.Warn("GET /venues/{id}/free-windows - Invalid venue ID: %q", venueIDStr)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(venueID, userID, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/free-windows - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeWindows.ErrNoSchedule):
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, getFreeWindows.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getFreeWindows.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/free-windows - Failed to get windows: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/free-windows - venue_id=%d, date=%s, windows=%d",
		venueID, dateStr, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
