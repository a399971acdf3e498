package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/QS-AppointmentService/internal/domain"
	getDaySlots "github.com/m04kA/QS-AppointmentService/internal/usecase/get_day_slots"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgBusinessNotFound = "бизнес не найден"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{slug}/day-slots?date=YYYY-MM-DD&duration=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /businesses/{slug}/day-slots - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	// Слоты показываются только пользователю с заполненным профилем
	if !user.HasName() {
		handlers.RespondProfileIncomplete(w)
		return
	}

	slug := mux.Vars(r)["slug"]

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /businesses/{slug}/day-slots - Invalid date: slug=%s, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		h.logger.Warn("GET /businesses/{slug}/day-slots - Invalid duration: slug=%s, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{
		Slug:            slug,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{slug}/day-slots - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{slug}/day-slots - Invalid input: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /businesses/{slug}/day-slots - Failed to get slots: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
