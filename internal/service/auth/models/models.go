package models

import "github.com/m04kA/QS-AppointmentService/internal/domain"

// StartLoginRequest запрос на отправку кода подтверждения
type StartLoginRequest struct {
	Phone string `json:"phone"`
}

// VerifyLoginRequest запрос на проверку кода
// Name заполняется при первом входе нового пользователя
type VerifyLoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
}

// VerifyResult результат успешного входа клиента
// DeviceToken выдаётся один раз и больше не восстановим -
// в хранилище остаётся только его хэш.
// NeedsName - профиль без имени, фронт показывает форму имени
type VerifyResult struct {
	User         *domain.User
	SessionToken string
	DeviceToken  string
	NeedsName    bool
}

// AdminVerifyResult результат успешного входа администратора
type AdminVerifyResult struct {
	Phone        string
	Slugs        []string
	SessionToken string
}
