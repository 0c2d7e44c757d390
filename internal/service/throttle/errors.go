package throttle

import "errors"

var (
	// ErrInvalidTTL возвращается при неположительном TTL
	ErrInvalidTTL = errors.New("throttle: ttl must be positive")

	// ErrEmptyKey возвращается при пустом ключе
	ErrEmptyKey = errors.New("throttle: key is empty")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("throttle: store error")
)
