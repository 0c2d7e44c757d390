package throttle

import (
	"context"
	"time"
)

// Store хранилище ключей с TTL, поддерживающее атомарную вставку
type Store interface {
	// SetIfAbsent создает ключ с временем жизни ttl, если его нет (или он истек).
	// Возвращает true, если ключ был создан этим вызовом.
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
