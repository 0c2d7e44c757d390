package conflicts

import "errors"

var (
	// ErrInternal возвращается при ошибке обращения к хранилищу
	ErrInternal = errors.New("conflicts: internal error")
)
