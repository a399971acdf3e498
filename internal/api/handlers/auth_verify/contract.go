package auth_verify

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

type AuthService interface {
	VerifyLogin(ctx context.Context, req *models.VerifyLoginRequest) (*models.VerifyResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
