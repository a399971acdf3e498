package update_business_config

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/service/businesscfg/models"
)

type ConfigService interface {
	Update(ctx context.Context, slug string, req *models.UpdateConfigRequest) (*domain.BusinessConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
