package logout

import (
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
)

type Handler struct {
	auth   AuthService
	logger Logger
}

func NewHandler(auth AuthService, logger Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger,
	}
}

// Handle POST /api/v1/auth/logout
// Logout идемпотентен: без активной сессии просто чистит cookie
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionToken := handlers.CookieValue(r, handlers.SessionCookie)
	deviceToken := handlers.CookieValue(r, handlers.DeviceCookie)

	if err := h.auth.Logout(r.Context(), sessionToken, deviceToken); err != nil {
		h.logger.Error("POST /auth/logout - Failed to log out: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.ClearAuthCookies(w)

	h.logger.Info("POST /auth/logout - Session terminated")
	handlers.RespondJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
