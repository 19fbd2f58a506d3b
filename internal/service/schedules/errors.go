package schedules

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedule exception not found")

	// ErrInvalidOwnerType возвращается при некорректном типе владельца расписания
	ErrInvalidOwnerType = errors.New("invalid schedule owner type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
