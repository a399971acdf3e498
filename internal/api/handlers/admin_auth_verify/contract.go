package admin_auth_verify

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

type AuthService interface {
	VerifyAdminLogin(ctx context.Context, req *models.VerifyLoginRequest) (*models.AdminVerifyResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
