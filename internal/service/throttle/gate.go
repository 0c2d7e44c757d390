package throttle

import (
	"context"
	"fmt"
	"time"
)

// Gate "не чаще одного раза за интервал": первый вызов TryAcquire для ключа
// захватывает его на ttl, остальные до истечения ttl получают false.
type Gate struct {
	store  Store
	prefix string
}

// NewGate создает gate поверх хранилища. prefix добавляется ко всем ключам
func NewGate(store Store, prefix string) *Gate {
	return &Gate{store: store, prefix: prefix}
}

// TryAcquire захватывает ключ на ttl. Не продлевает уже существующий ключ.
func (g *Gate) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if ttl <= 0 {
		return false, ErrInvalidTTL
	}

	acquired, err := g.store.SetIfAbsent(ctx, g.prefix+key, ttl)
	if err != nil {
		return false, fmt.Errorf("%w: TryAcquire key=%s: %v", ErrStore, key, err)
	}
	return acquired, nil
}
