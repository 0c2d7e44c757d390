package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const table = "payments"

// Repository репозиторий платежей.
// Платеж привязан к владельцу парой (owner_type, owner_id).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpdateStatusByOwner переводит платежи владельца из статусов from в статус to.
// Возвращает количество обновленных платежей.
func (r *Repository) UpdateStatusByOwner(
	ctx context.Context,
	owner domain.PaymentOwner,
	from []domain.PaymentStatus,
	to domain.PaymentStatus,
	at time.Time,
) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateStatusByOwnerQuery(owner, from, to, at).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusByOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusByOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusByOwner - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func updateStatusByOwnerQuery(
	owner domain.PaymentOwner,
	from []domain.PaymentStatus,
	to domain.PaymentStatus,
	at time.Time,
) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", string(to)).
		Set("updated_at", at).
		Where(squirrel.Eq{"owner_type": string(owner.Kind)}).
		Where(squirrel.Eq{"owner_id": owner.ID}).
		Where(squirrel.Eq{"status": statusStrings(from)})
}

func statusStrings(statuses []domain.PaymentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
