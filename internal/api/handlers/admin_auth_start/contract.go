package admin_auth_start

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

type AuthService interface {
	StartAdminLogin(ctx context.Context, req *models.StartLoginRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
