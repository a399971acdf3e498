package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/integrations/calendar"
)

// ConfigService интерфейс получения эффективной конфигурации бизнеса
type ConfigService interface {
	Resolve(ctx context.Context, slug string) (*domain.BusinessConfig, error)
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	IsFree(ctx context.Context, calendarID string, from, to time.Time) (bool, error)
	CreateEvent(ctx context.Context, calendarID string, event calendar.Event) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountUpcomingByPhone(ctx context.Context, phone string, now time.Time) (int, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
