package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange начало бронирования не раньше окончания
	ErrInvalidRange = errors.New("create_booking: start must be before end")

	// ErrTooSoon до начала бронирования осталось меньше минимального запаса
	ErrTooSoon = errors.New("create_booking: start is too soon")

	// ErrTooShort длительность меньше минимальной
	ErrTooShort = errors.New("create_booking: duration is too short")

	// ErrSpansMidnight бронирование захватывает два календарных дня
	ErrSpansMidnight = errors.New("create_booking: booking spans midnight")

	// ErrOutsideEvent бронирование выходит за границы мероприятия
	ErrOutsideEvent = errors.New("create_booking: booking is outside of event bounds")

	// ErrNoSchedule у площадки нет расписания
	ErrNoSchedule = errors.New("create_booking: venue has no schedule")

	// ErrVenueClosed площадка закрыта в этот день
	ErrVenueClosed = errors.New("create_booking: venue is closed on this date")

	// ErrOutsideIntervals бронирование не помещается ни в один интервал работы
	ErrOutsideIntervals = errors.New("create_booking: booking does not fit working intervals")

	// ErrOverlap время уже занято другим бронированием
	ErrOverlap = errors.New("create_booking: booking overlaps another booking")

	// ErrEventNotFound возвращается, когда мероприятие не найдено
	ErrEventNotFound = errors.New("create_booking: event not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения для пользователя
const (
	msgInvalidRange     = "Время окончания должно быть позже времени начала"
	msgTooSoon          = "Бронирование нужно создавать не позднее чем за %d мин. до начала"
	msgTooShort         = "Минимальная длительность бронирования %d мин."
	msgSpansMidnight    = "Бронирование должно начинаться и заканчиваться в один день"
	msgOutsideEvent     = "Время бронирования должно быть в пределах времени мероприятия"
	msgNoSchedule       = "Для площадки не настроено расписание работы"
	msgVenueClosed      = "Площадка не работает в выбранный день"
	msgOutsideIntervals = "Выбранное время не попадает в часы работы площадки"
	msgOverlap          = "Выбранное время уже занято другим бронированием"
)

// Поля запроса, к которым относится ошибка
const (
	FieldStart   = "start"
	FieldEnd     = "end"
	FieldVenueID = "venueId"
)

// ValidationError ошибка проверки бронирования, привязанная к полю запроса.
// Message показывается пользователю, Err позволяет сравнивать через errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (field=%s)", e.Err, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, err error, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
