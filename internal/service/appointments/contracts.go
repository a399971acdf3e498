package appointments

import (
	"context"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPhone(ctx context.Context, phone string) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// ConfigResolver интерфейс получения эффективной конфигурации бизнеса
type ConfigResolver interface {
	Resolve(ctx context.Context, slug string) (*domain.BusinessConfig, error)
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
