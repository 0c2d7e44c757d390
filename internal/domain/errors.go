package domain

import "errors"

var (
	// ErrInvalidUTCOffset возвращается при некорректной метке смещения часового пояса
	ErrInvalidUTCOffset = errors.New("domain: invalid utc offset")
)
