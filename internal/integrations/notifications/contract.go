package notifications

import "context"

// Publisher транспорт доставки событий (RabbitMQ)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
