package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const table = "venue_settings"

// Repository репозиторий настроек автоотмены площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenueID получает настройки площадки.
// NULL в колонке порога трактуется как 0, то есть правило выключено.
func (r *Repository) GetByVenueID(ctx context.Context, venueID int64) (*domain.VenueSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"venue_id",
		"pending_review_minutes",
		"pending_before_start_minutes",
		"pending_warning_minutes",
	).
		From(table).
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.VenueSettings
	var review, beforeStart, warning sql.NullInt32

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.VenueID,
		&review,
		&beforeStart,
		&warning,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - scan settings: %v", ErrScanRow, err)
	}

	settings.PendingReviewMinutes = int(review.Int32)
	settings.PendingBeforeStartMinutes = int(beforeStart.Int32)
	settings.PendingWarningMinutes = int(warning.Int32)

	return &settings, nil
}

// Upsert создает или обновляет настройки площадки
func (r *Repository) Upsert(ctx context.Context, settings *domain.VenueSettings) error {
	if settings.PendingReviewMinutes < 0 || settings.PendingBeforeStartMinutes < 0 || settings.PendingWarningMinutes < 0 {
		return ErrInvalidThreshold
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"venue_id",
			"pending_review_minutes",
			"pending_before_start_minutes",
			"pending_warning_minutes",
		).
		Values(
			settings.VenueID,
			settings.PendingReviewMinutes,
			settings.PendingBeforeStartMinutes,
			settings.PendingWarningMinutes,
		).
		Suffix(`ON CONFLICT (venue_id) DO UPDATE SET
			pending_review_minutes = EXCLUDED.pending_review_minutes,
			pending_before_start_minutes = EXCLUDED.pending_before_start_minutes,
			pending_warning_minutes = EXCLUDED.pending_warning_minutes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
