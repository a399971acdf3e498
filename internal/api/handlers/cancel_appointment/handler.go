package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	appointmentsService "github.com/m04kA/QS-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный идентификатор записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "эта запись принадлежит другому пользователю"
)

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

// Handle POST /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /appointments/{appointmentId}/cancel - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{appointmentId}/cancel - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.appointments.Cancel(r.Context(), user.Phone, id); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{appointmentId}/cancel - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{appointmentId}/cancel - Access denied: id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /appointments/{appointmentId}/cancel - Failed to cancel: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{appointmentId}/cancel - Appointment cancelled: id=%d, user_id=%d", id, user.ID)
	handlers.RespondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
