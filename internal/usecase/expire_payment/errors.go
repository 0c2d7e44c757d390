package expire_payment

import "errors"

var (
	// ErrInternal возвращается при ошибке отмены бронирования
	ErrInternal = errors.New("expire_payment: internal error")
)
