package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// ConfigService интерфейс получения эффективной конфигурации бизнеса
type ConfigService interface {
	Resolve(ctx context.Context, slug string) (*domain.BusinessConfig, error)
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	FreeBusy(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error)
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
