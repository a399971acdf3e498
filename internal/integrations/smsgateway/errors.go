package smsgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе SMS-шлюза
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")

	// ErrDeliveryFailed возвращается, когда шлюз не принял сообщение
	ErrDeliveryFailed = errors.New("smsgateway client: delivery failed")
)
