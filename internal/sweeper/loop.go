package sweeper

import (
	"context"
	"time"
)

// NamedJob задача с именем для логов
type NamedJob struct {
	Name string
	Job  Job
}

// Loop по тику запускает все задачи по очереди.
// Частоту реальной работы ограничивают сами задачи через throttle,
// поэтому цикл можно запускать на нескольких хостах.
type Loop struct {
	jobs          []NamedJob
	tick          time.Duration
	cleaner       LeaseCleaner
	cleanupPeriod time.Duration
	logger        Logger
}

// NewLoop создает цикл. cleaner может быть nil
func NewLoop(jobs []NamedJob, tick time.Duration, cleaner LeaseCleaner, cleanupPeriod time.Duration, logger Logger) *Loop {
	return &Loop{
		jobs:          jobs,
		tick:          tick,
		cleaner:       cleaner,
		cleanupPeriod: cleanupPeriod,
		logger:        logger,
	}
}

// Run работает до отмены ctx. Первый проход выполняется сразу
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	var cleanupC <-chan time.Time
	if l.cleaner != nil && l.cleanupPeriod > 0 {
		cleanup := time.NewTicker(l.cleanupPeriod)
		defer cleanup.Stop()
		cleanupC = cleanup.C
	}

	l.logger.Info("Loop: started, jobs=%d, tick=%s", len(l.jobs), l.tick)

	// kick immediately
	l.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Loop: stopped")
			return ctx.Err()
		case <-ticker.C:
			l.RunOnce(ctx)
		case <-cleanupC:
			l.cleanup(ctx)
		}
	}
}

// RunOnce запускает каждую задачу один раз. Возвращает суммарное количество отмен
func (l *Loop) RunOnce(ctx context.Context) int {
	total := 0
	for _, j := range l.jobs {
		if ctx.Err() != nil {
			break
		}
		cancelled := j.Job.RunIfDue(ctx)
		if cancelled > 0 {
			l.logger.Info("Loop: job=%s cancelled=%d", j.Name, cancelled)
		}
		total += cancelled
	}
	return total
}

func (l *Loop) cleanup(ctx context.Context) {
	deleted, err := l.cleaner.DeleteExpired(ctx)
	if err != nil {
		l.logger.Error("Loop: failed to delete expired leases: %v", err)
		return
	}
	if deleted > 0 {
		l.logger.Info("Loop: deleted %d expired leases", deleted)
	}
}
