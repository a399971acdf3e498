package create_appointment

import (
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/QS-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/QS-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Имя и телефон не принимаются из тела - берутся из профиля пользователя
type CreateAppointmentRequest struct {
	Slug            string `json:"slug"`
	Date            string `json:"date"` // "2025-10-15"
	Time            string `json:"time"` // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	ServiceName     string `json:"serviceName"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Start           string `json:"start"` // RFC3339 в зоне бизнеса
	DurationMinutes int    `json:"durationMinutes"`
	ServiceName     string `json:"serviceName"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(phone, name string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Slug:            r.Slug,
		Phone:           phone,
		Name:            name,
		Date:            date,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		ServiceName:     r.ServiceName,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) AppointmentResponse {
	return AppointmentResponse{
		ID:              resp.ID,
		Slug:            resp.BusinessSlug,
		Start:           resp.StartTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		ServiceName:     resp.ServiceName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
