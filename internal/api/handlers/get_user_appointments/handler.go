package get_user_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// AppointmentItem запись пользователя в HTTP ответе
type AppointmentItem struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceName     string `json:"serviceName"`
}

// AppointmentsResponse HTTP response model
type AppointmentsResponse struct {
	Appointments []AppointmentItem `json:"appointments"`
}

type Handler struct {
	appointments AppointmentsService
	logger       Logger
}

func NewHandler(appointments AppointmentsService, logger Logger) *Handler {
	return &Handler{
		appointments: appointments,
		logger:       logger,
	}
}

// Handle GET /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /appointments - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	list, err := h.appointments.List(r.Context(), user.Phone)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to list appointments: user_id=%d, error=%v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromAppointments(list))
}

func fromAppointments(list []*domain.Appointment) AppointmentsResponse {
	items := make([]AppointmentItem, 0, len(list))
	for _, a := range list {
		items = append(items, AppointmentItem{
			ID:              a.ID,
			Slug:            a.BusinessSlug,
			Start:           a.StartTime.Format(time.RFC3339),
			DurationMinutes: a.DurationMinutes,
			ServiceName:     a.ServiceName,
		})
	}
	return AppointmentsResponse{Appointments: items}
}
