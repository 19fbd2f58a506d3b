package create_reservation

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_reservation: salon not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_reservation: staff not found")

	// ErrMenuNotFound возвращается, когда услуга не найдена
	ErrMenuNotFound = errors.New("create_reservation: menu not found")

	// ErrInvalidDate возвращается при некорректной дате визита
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrSalonClosed возвращается, когда салон или сотрудник закрыты в указанную дату
	ErrSalonClosed = errors.New("create_reservation: closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал визита выходит за рамки рабочего окна
	ErrOutsideWorkingHours = errors.New("create_reservation: outside working hours")

	// ErrTooLateToBook возвращается при попытке забронировать время, которое уже прошло
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrCapacityConflict возвращается, когда все места салона в этом интервале заняты
	ErrCapacityConflict = errors.New("create_reservation: salon capacity exceeded")

	// ErrDoubleBookingConflict возвращается, когда сотрудник уже занят в этом интервале
	ErrDoubleBookingConflict = errors.New("create_reservation: staff already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
