package update_profile

import (
	"context"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

type AuthService interface {
	UpdateProfile(ctx context.Context, userID int64, name string) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
