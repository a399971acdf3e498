package cancel_appointment

import "context"

type AppointmentsService interface {
	Cancel(ctx context.Context, phone string, appointmentID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
