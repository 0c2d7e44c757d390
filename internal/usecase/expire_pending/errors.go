package expire_pending

import "errors"

var (
	// ErrInternal возвращается при ошибках загрузки данных площадки
	ErrInternal = errors.New("expire_pending: internal error")
)
