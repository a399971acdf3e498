package get_profile

import (
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ProfileResponse HTTP response model
type ProfileResponse struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /me - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	resp := ProfileResponse{Phone: user.Phone}
	if user.Name != nil {
		resp.Name = *user.Name
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
