package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrCannotReschedule возвращается, когда бронь нельзя перенести (отменена, завершена или архивирована)
	ErrCannotReschedule = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной дате визита
	ErrInvalidDate = errors.New("reschedule_reservation: invalid reservation date")

	// ErrSalonClosed возвращается, когда салон или сотрудник закрыты в указанную дату
	ErrSalonClosed = errors.New("reschedule_reservation: closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал визита выходит за рамки рабочего окна
	ErrOutsideWorkingHours = errors.New("reschedule_reservation: outside working hours")

	// ErrTooLateToBook возвращается при попытке перенести бронь на время, которое уже прошло
	ErrTooLateToBook = errors.New("reschedule_reservation: too late to book this slot")

	// ErrCapacityConflict возвращается, когда все места салона в этом интервале заняты
	ErrCapacityConflict = errors.New("reschedule_reservation: salon capacity exceeded")

	// ErrDoubleBookingConflict возвращается, когда сотрудник уже занят в этом интервале
	ErrDoubleBookingConflict = errors.New("reschedule_reservation: staff already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
