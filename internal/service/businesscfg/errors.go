package businesscfg

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес с таким slug не настроен
	ErrBusinessNotFound = errors.New("business not found")

	// ErrConfigMalformed возвращается, когда базовый файл конфигурации
	// не соответствует ожидаемой схеме
	ErrConfigMalformed = errors.New("business config malformed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
