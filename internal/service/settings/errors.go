package settings

import "errors"

var (
	// ErrInvalidThreshold возвращается при отрицательном пороге
	ErrInvalidThreshold = errors.New("invalid threshold: must be >= 0")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
