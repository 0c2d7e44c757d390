package throttle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const table = "throttle_leases"

// Repository хранилище аренд ключей в PostgreSQL.
// Время истечения считается по часам БД, поэтому несколько хостов видят одинаковые аренды.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр хранилища аренд
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SetIfAbsent создает аренду ключа на ttl, если ключа нет или его аренда истекла.
// Действующая аренда не изменяется.
func (r *Repository) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := setIfAbsentQuery(key, ttl).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SetIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	var acquiredKey string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&acquiredKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: SetIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// DeleteExpired удаляет истекшие аренды. Возвращает количество удаленных ключей.
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Expr("expires_at <= NOW()")).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func setIfAbsentQuery(key string, ttl time.Duration) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("key", "expires_at").
		Values(key, squirrel.Expr("NOW() + (? * INTERVAL '1 millisecond')", ttl.Milliseconds())).
		Suffix("ON CONFLICT (key) DO UPDATE SET expires_at = EXCLUDED.expires_at " +
			"WHERE " + table + ".expires_at <= NOW() RETURNING key")
}
