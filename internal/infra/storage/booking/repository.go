package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const table = "event_bookings"

var columns = []string{
	"id",
	"event_id",
	"venue_id",
	"start_at",
	"end_at",
	"status",
	"created_by",
	"moderation_comment",
	"moderation_source",
	"moderated_by",
	"moderated_at",
	"payment_due_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.EventBooking) (*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"event_id",
			"venue_id",
			"start_at",
			"end_at",
			"status",
			"created_by",
			"payment_due_at",
		).
		Values(
			booking.EventID,
			booking.VenueID,
			booking.StartAt,
			booking.EndAt,
			string(booking.Status),
			booking.CreatedBy,
			booking.PaymentDueAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByVenueWithFilter получает бронирования площадки с фильтрацией по периоду и статусам.
// Период фильтруется по пересечению: end_at > From и start_at < To.
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExistsOverlapping проверяет, есть ли на площадке бронирование в одном из статусов,
// пересекающееся с [start, end): existing.start_at < end AND existing.end_at > start
func (r *Repository) ExistsOverlapping(
	ctx context.Context,
	venueID int64,
	start, end time.Time,
	statuses []domain.BookingStatus,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := existsOverlappingQuery(venueID, start, end, statuses).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetByCreator получает бронирования, созданные пользователем, новые первыми.
// Пустой statuses означает все статусы.
func (r *Repository) GetByCreator(ctx context.Context, userID int64, statuses []domain.BookingStatus) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"created_by": userID})

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := selectBuilder.OrderBy("start_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCreator - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCreator - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBatchForReview получает до limit бронирований в статусе status.
// Первыми идут ни разу не проверенные, затем проверенные давнее всего,
// поэтому оставленные в статусе бронирования не занимают каждую выборку.
func (r *Repository) GetBatchForReview(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := batchForReviewQuery(status, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBatchForReview - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBatchForReview - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkChecked запоминает время проверки бронирований фоновой задачей
func (r *Repository) MarkChecked(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markCheckedQuery(ids, at).ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkChecked - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkChecked - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// GetExpiredAwaitingPayment получает до limit бронирований, ожидающих оплату,
// у которых срок оплаты наступил к моменту now
func (r *Repository) GetExpiredAwaitingPayment(ctx context.Context, now time.Time, limit int) ([]*domain.EventBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.StatusAwaitingPayment)}).
		Where(squirrel.NotEq{"payment_due_at": nil}).
		Where(squirrel.LtOrEq{"payment_due_at": now}).
		OrderBy("payment_due_at ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredAwaitingPayment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredAwaitingPayment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel отменяет бронирование.
// Обновление применяется, только если бронирование все еще в статусе ExpectedStatus,
// иначе возвращается ErrStatusChanged.
func (r *Repository) Cancel(ctx context.Context, c domain.Cancellation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("moderation_comment", c.Comment).
		Set("moderation_source", string(c.Source)).
		Set("moderated_by", c.ModeratedBy).
		Set("moderated_at", c.At).
		Set("updated_at", c.At).
		Where(squirrel.Eq{"id": c.BookingID}).
		Where(squirrel.Eq{"status": string(c.ExpectedStatus)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func batchForReviewQuery(status domain.BookingStatus, limit int) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("last_checked_at ASC NULLS FIRST", "created_at ASC", "id ASC").
		Limit(uint64(limit))
}

func markCheckedQuery(ids []int64, at time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("last_checked_at", at).
		Where(squirrel.Eq{"id": ids})
}

func existsOverlappingQuery(venueID int64, start, end time.Time, statuses []domain.BookingStatus) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.EventBooking, error) {
	var booking domain.EventBooking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.VenueID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.CreatedBy,
		&booking.ModerationComment,
		&booking.ModerationSource,
		&booking.ModeratedBy,
		&booking.ModeratedAt,
		&booking.PaymentDueAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.EventBooking, error) {
	bookings := make([]*domain.EventBooking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
