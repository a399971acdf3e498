package update_profile

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	authService "github.com/m04kA/QS-AppointmentService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyName          = "имя не может быть пустым"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfileResponse HTTP response model
type UpdateProfileResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
}

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

// Handle POST /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /profile - User missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, strings.TrimSpace(req.Name))
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidName):
			h.logger.Warn("POST /profile - Empty name: user_id=%d", user.ID)
			handlers.RespondBadRequest(w, msgEmptyName)

		default:
			h.logger.Error("POST /profile - Failed to update profile: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /profile - Profile updated: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusOK, UpdateProfileResponse{OK: true, Name: *updated.Name})
}
