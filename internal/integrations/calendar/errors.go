package calendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено в календаре
	ErrEventNotFound = errors.New("calendar client: event not found")

	// ErrSlotConflict возвращается, когда календарь отклонил вставку события
	// из-за пересечения с уже существующим (слот заняли между проверкой и записью)
	ErrSlotConflict = errors.New("calendar client: slot conflict")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календарного сервиса
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
