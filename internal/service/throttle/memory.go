package throttle

import (
	"context"
	"sync"
	"time"
)

// MemoryStore хранилище в памяти процесса.
// Подходит для одного экземпляра сервиса и для тестов.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock создает хранилище с заданными часами
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

func (s *MemoryStore) SetIfAbsent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.entries[key]; ok && now.Before(expiresAt) {
		return false, nil
	}

	s.entries[key] = now.Add(ttl)
	s.evictExpired(now)
	return true, nil
}

// evictExpired удаляет истекшие ключи, чтобы карта не росла бесконечно
func (s *MemoryStore) evictExpired(now time.Time) {
	for k, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, k)
		}
	}
}
