package sweeper

import "context"

// Job фоновая задача, которая сама решает, пора ли ей работать
type Job interface {
	RunIfDue(ctx context.Context) int
}

// LeaseCleaner удаляет истекшие throttle-ключи
type LeaseCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
