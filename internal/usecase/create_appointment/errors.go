package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotTaken возвращается, когда запрошенное время уже занято в календаре
	ErrSlotTaken = errors.New("slot already taken")

	// ErrTooManyAppointments возвращается при превышении лимита будущих записей
	ErrTooManyAppointments = errors.New("too many active appointments")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
