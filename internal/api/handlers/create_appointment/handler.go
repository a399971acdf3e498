package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/QS-AppointmentService/internal/schedule"
	createAppointment "github.com/m04kA/QS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректные дата или время записи"
	msgBusinessNotFound    = "бизнес не найден"
	msgSlotTaken           = "это время уже занято"
	msgTooManyAppointments = "можно держать не больше 4 будущих записей"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /appointments - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	// Запись без имени в профиле запрещена
	if !user.HasName() {
		handlers.RespondProfileIncomplete(w)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.Phone, *user.Name)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejection *schedule.Rejection

		switch {
		case errors.As(err, &rejection):
			h.logger.Warn("POST /appointments - Slot rejected: slug=%s, reason=%s", req.Slug, rejection.Reason)
			handlers.RespondError(w, http.StatusConflict, rejection.Reason)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: slug=%s", req.Slug)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrTooManyAppointments):
			h.logger.Warn("POST /appointments - Appointment limit reached: user_id=%d", user.ID)
			handlers.RespondBadRequest(w, msgTooManyAppointments)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /appointments - Business not found: slug=%s", req.Slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, user_id=%d, slug=%s",
		result.ID, user.ID, req.Slug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
