package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// commentCancelledByUser комментарий ручной отмены без указанной причины
const commentCancelledByUser = "Бронирование отменено пользователем"

// Service сервис чтения и отмены бронирований
type Service struct {
	bookingRepo   BookingRepository
	paymentExpiry PaymentExpiry
	canceller     Canceller
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentExpiry PaymentExpiry,
	canceller Canceller,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		paymentExpiry: paymentExpiry,
		canceller:     canceller,
		timeProvider:  RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID. Доступно только создателю.
// Бронирование с истекшим сроком оплаты отменяется до ответа.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CreatedBy != userID {
		s.logger.Warn("GetByID: user=%d is not the creator of booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.expireIfStale(ctx, booking)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetVenueBookings получает бронирования площадки с фильтрацией
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: venue=%d, user=%d", req.VenueID, req.UserID)

	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter: %v", err)
		return nil, ErrInvalidStatus
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	bookings = s.expireAndFilter(ctx, bookings, filter.AllowsStatus)

	s.logger.Info("GetVenueBookings: found %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookings(bookings), nil
}

// GetUserBookings получает бронирования, созданные пользователем
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: user=%d", req.UserID)

	var statuses []domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status %q", *req.Status)
			return nil, ErrInvalidStatus
		}
		statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.GetByCreator(ctx, req.UserID, statuses)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	userFilter := domain.VenueBookingsFilter{Statuses: statuses, IncludeCancelled: true}
	bookings = s.expireAndFilter(ctx, bookings, userFilter.AllowsStatus)

	s.logger.Info("GetUserBookings: found %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookings(bookings), nil
}

// Cancel отменяет бронирование по запросу его создателя
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: booking=%d, user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.CreatedBy != req.UserID {
		s.logger.Warn("Cancel: user=%d is not the creator of booking=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	comment := req.CancellationReason
	if comment == "" {
		comment = commentCancelledByUser
	}

	err = s.canceller.CancelManual(ctx, booking, req.UserID, comment, s.timeProvider.Now())
	switch {
	case errors.Is(err, cancellation.ErrAlreadyTerminal), errors.Is(err, cancellation.ErrStatusChanged):
		s.logger.Warn("Cancel: booking=%d cannot be cancelled: %v", bookingID, err)
		return ErrCannotCancel
	case err != nil:
		s.logger.Error("Cancel: failed to cancel booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking=%d cancelled by user=%d", bookingID, req.UserID)
	return nil
}

// expireAndFilter применяет отмену по сроку оплаты и убирает бронирования,
// статус которых после отмены больше не проходит фильтр
func (s *Service) expireAndFilter(
	ctx context.Context,
	bookings []*domain.EventBooking,
	allows func(domain.BookingStatus) bool,
) []*domain.EventBooking {
	kept := bookings[:0]
	for _, booking := range bookings {
		s.expireIfStale(ctx, booking)
		if allows(booking.Status) {
			kept = append(kept, booking)
		}
	}
	return kept
}

// expireIfStale применяет отмену по сроку оплаты. Ошибка не мешает отдать бронирование
func (s *Service) expireIfStale(ctx context.Context, booking *domain.EventBooking) {
	cancelled, err := s.paymentExpiry.CancelIfExpired(ctx, booking)
	if err != nil {
		s.logger.Error("expireIfStale: booking id=%d: %v", booking.ID, err)
		return
	}
	if cancelled {
		s.logger.Info("expireIfStale: booking id=%d cancelled, payment window expired", booking.ID)
	}
}
