package cancellation

import "errors"

var (
	// ErrAlreadyTerminal бронирование уже отменено
	ErrAlreadyTerminal = errors.New("cancellation: booking is already cancelled")

	// ErrStatusChanged статус бронирования изменился с момента чтения
	ErrStatusChanged = errors.New("cancellation: booking status changed concurrently")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("cancellation: internal error")
)
