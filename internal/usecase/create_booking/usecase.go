package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/event"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

// UseCase use case для создания бронирования площадки
type UseCase struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	scheduleRepo ScheduleRepository
	conflicts    ConflictDetector
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	scheduleRepo ScheduleRepository,
	conflicts ConflictDetector,
	notifier Notifier,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		scheduleRepo: scheduleRepo,
		conflicts:    conflicts,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		opts:         opts,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы два параллельных запроса не заняли одно и то же время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, event=%d, venue=%d, start=%s, end=%s",
		req.CreatorID, req.EventID, req.VenueID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Время бронирования задается с точностью до минуты
	normalized := *req
	normalized.Start = req.Start.Truncate(time.Minute)
	normalized.End = req.End.Truncate(time.Minute)
	req = &normalized

	now := uc.timeProvider.Now()

	var result *domain.EventBooking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		event, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				uc.logger.Warn("CreateBooking: event id=%d not found", req.EventID)
				return ErrEventNotFound
			}
			uc.logger.Error("CreateBooking: failed to get event id=%d: %v", req.EventID, err)
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}

		schedule, err := uc.scheduleRepo.GetByVenueID(txCtx, req.VenueID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule for venue=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if err := validateWindow(req, now, event, schedule, uc.opts); err != nil {
			uc.logger.Warn("CreateBooking: booking rejected: %v", err)
			return err
		}

		overlap, err := uc.conflicts.HasConflict(txCtx, req.VenueID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if overlap {
			uc.logger.Warn("CreateBooking: venue=%d is busy in [%s, %s)",
				req.VenueID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
			return newValidationError(FieldStart, ErrOverlap, msgOverlap)
		}

		booking := &domain.EventBooking{
			EventID:   req.EventID,
			VenueID:   req.VenueID,
			StartAt:   req.Start,
			EndAt:     req.End,
			Status:    domain.StatusPending,
			CreatedBy: req.CreatorID,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	uc.notifier.NotifyStatus(ctx, result, domain.StatusPending, ptr.Ptr(req.CreatorID))

	return &Response{
		ID:        result.ID,
		EventID:   result.EventID,
		VenueID:   result.VenueID,
		StartAt:   result.StartAt,
		EndAt:     result.EndAt,
		Status:    string(result.Status),
		CreatedBy: result.CreatedBy,
		CreatedAt: result.CreatedAt,
	}, nil
}
