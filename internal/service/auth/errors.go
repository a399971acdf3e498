package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhone возвращается при телефоне, не проходящем нормализацию
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrRateLimited возвращается при превышении лимита запросов кода
	ErrRateLimited = errors.New("too many code requests")

	// ErrResendCooldown возвращается при повторном запросе кода раньше,
	// чем истёк интервал между отправками
	ErrResendCooldown = errors.New("resend cooldown is active")

	// ErrVerificationNotFound возвращается, когда активный код для номера не найден
	ErrVerificationNotFound = errors.New("verification not found")

	// ErrCodeExpired возвращается, когда код подтверждения истёк
	ErrCodeExpired = errors.New("verification code expired")

	// ErrTooManyAttempts возвращается после исчерпания попыток ввода кода
	ErrTooManyAttempts = errors.New("too many failed attempts")

	// ErrWrongCode возвращается при неверном коде подтверждения
	ErrWrongCode = errors.New("wrong verification code")

	// ErrInvalidName возвращается при пустом имени в профиле
	ErrInvalidName = errors.New("invalid name")

	// ErrPhoneNotAllowed возвращается, когда телефон не входит в админский whitelist
	ErrPhoneNotAllowed = errors.New("phone is not allowed")

	// ErrUnauthenticated возвращается, когда ни сессия, ни доверенное
	// устройство не дают действующего входа
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// WrongCodeError неверный код с количеством оставшихся попыток
type WrongCodeError struct {
	AttemptsLeft int
}

func (e *WrongCodeError) Error() string {
	return fmt.Sprintf("wrong verification code, %d attempts left", e.AttemptsLeft)
}

// Is сопоставляет WrongCodeError с ErrWrongCode для errors.Is
func (e *WrongCodeError) Is(target error) bool {
	return target == ErrWrongCode
}
