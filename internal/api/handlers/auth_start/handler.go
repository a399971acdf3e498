package auth_start

import (
	"errors"
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	authService "github.com/m04kA/QS-AppointmentService/internal/service/auth"
	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "некорректный номер телефона"
	msgRateLimited        = "слишком много запросов кода, попробуйте позже"
	msgResendCooldown     = "код уже отправлен, повторная отправка доступна через пару минут"
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

// Handle POST /api/v1/auth/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/start - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.auth.StartLogin(r.Context(), &models.StartLoginRequest{Phone: req.Phone})
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidPhone):
			h.logger.Warn("POST /auth/start - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, authService.ErrRateLimited):
			h.logger.Warn("POST /auth/start - Rate limited")
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)

		case errors.Is(err, authService.ErrResendCooldown):
			h.logger.Warn("POST /auth/start - Resend cooldown active")
			handlers.RespondError(w, http.StatusTooManyRequests, msgResendCooldown)

		default:
			h.logger.Error("POST /auth/start - Failed to issue code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/start - Verification code issued")
	handlers.RespondJSON(w, http.StatusOK, StartResponse{OK: true})
}
