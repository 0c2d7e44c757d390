package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у площадки нет расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrInvalidSchedule возвращается, если сохраненное расписание некорректно
	ErrInvalidSchedule = errors.New("schedule.repository: invalid schedule")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
