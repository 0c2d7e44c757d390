package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные бронирования"
	msgEventNotFound      = "мероприятие не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		var perr *parseError
		if errors.As(err, &perr) {
			handlers.RespondValidationError(w, perr.field, msgInvalidTime)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var verr *createBooking.ValidationError
		switch {
		case errors.As(err, &verr) && errors.Is(err, createBooking.ErrOverlap):
			h.logger.Warn("POST /bookings - Overlap: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, verr.Field, verr.Message)

		case errors.As(err, &verr):
			h.logger.Warn("POST /bookings - Validation failed: venue_id=%d, field=%s, error=%v",
				req.VenueID, verr.Field, verr.Err)
			handlers.RespondValidationError(w, verr.Field, verr.Message)

		case errors.Is(err, createBooking.ErrEventNotFound):
			h.logger.Warn("POST /bookings - Event not found: event_id=%d", req.EventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: venue_id=%d, user_id=%d, error=%v",
				req.VenueID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, venue_id=%d, user_id=%d",
		result.ID, result.VenueID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
