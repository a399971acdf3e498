package get_business_config

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

type ConfigService interface {
	Resolve(ctx context.Context, slug string) (*domain.BusinessConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
