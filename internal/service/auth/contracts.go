package auth

import (
	"context"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/infra/session"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	CreateTrustedDevice(ctx context.Context, device *domain.TrustedDevice) (*domain.TrustedDevice, error)
	GetTrustedDeviceByHash(ctx context.Context, tokenHash string) (*domain.TrustedDevice, error)
	DeleteTrustedDevice(ctx context.Context, tokenHash string) error
}

// VerificationRepository интерфейс репозитория кодов подтверждения
type VerificationRepository interface {
	Create(ctx context.Context, v *domain.PhoneVerification) (*domain.PhoneVerification, error)
	GetLatestByPhone(ctx context.Context, phone string) (*domain.PhoneVerification, error)
	DecrementAttempts(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteByPhone(ctx context.Context, phone string) error
}

// SessionStore интерфейс хранилища сессий
type SessionStore interface {
	Create(ctx context.Context, sess *session.Session) (string, error)
	Get(ctx context.Context, token string) (*session.Session, error)
	Delete(ctx context.Context, token string) error
}

// RateLimiter интерфейс лимитера запросов кода
type RateLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// SMSClient интерфейс доставки кодов подтверждения
type SMSClient interface {
	SendCode(ctx context.Context, phone, code string) error
}

// TimeProvider источник текущего времени, подменяемый в тестах
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
