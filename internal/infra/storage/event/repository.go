package event

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

// Repository репозиторий мероприятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мероприятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мероприятие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "starts_at", "ends_at").
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var event domain.Event
	var startsAt, endsAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.Title, &startsAt, &endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	if startsAt.Valid {
		event.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		event.EndsAt = &endsAt.Time
	}

	return &event, nil
}
