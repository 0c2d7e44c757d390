package notifications

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации события.
	// Наружу из Gateway не пробрасывается, только логируется.
	ErrPublish = errors.New("notifications gateway: publish failed")
)
