package get_free_windows

import "errors"

var (
	// ErrNoSchedule возвращается, когда у площадки нет расписания
	ErrNoSchedule = errors.New("get_free_windows: venue has no schedule")

	// ErrInvalidDate возвращается, когда дата уже прошла
	ErrInvalidDate = errors.New("get_free_windows: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_windows: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_windows: internal error")
)
