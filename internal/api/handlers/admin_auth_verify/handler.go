package admin_auth_verify

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	authService "github.com/m04kA/QS-AppointmentService/internal/service/auth"
	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "некорректный номер телефона"
	msgNotAllowed         = "этот номер не подключен к управлению бизнесом"
	msgNoVerification     = "код не запрашивался или уже использован"
	msgCodeExpired        = "срок действия кода истёк, запросите новый"
	msgTooManyAttempts    = "попытки ввода кода исчерпаны, запросите новый"
	msgWrongCodeFmt       = "неверный код, осталось попыток: %d"
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

// Handle POST /api/v1/admin/auth/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/auth/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.auth.VerifyAdminLogin(r.Context(), &models.VerifyLoginRequest{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		var wrongCode *authService.WrongCodeError

		switch {
		case errors.Is(err, authService.ErrInvalidPhone):
			h.logger.Warn("POST /admin/auth/verify - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, authService.ErrPhoneNotAllowed):
			h.logger.Warn("POST /admin/auth/verify - Phone not whitelisted")
			handlers.RespondForbidden(w, msgNotAllowed)

		case errors.Is(err, authService.ErrVerificationNotFound):
			h.logger.Warn("POST /admin/auth/verify - No active verification")
			handlers.RespondBadRequest(w, msgNoVerification)

		case errors.Is(err, authService.ErrCodeExpired):
			h.logger.Warn("POST /admin/auth/verify - Code expired")
			handlers.RespondBadRequest(w, msgCodeExpired)

		case errors.Is(err, authService.ErrTooManyAttempts):
			h.logger.Warn("POST /admin/auth/verify - Attempts exhausted")
			handlers.RespondBadRequest(w, msgTooManyAttempts)

		case errors.As(err, &wrongCode):
			h.logger.Warn("POST /admin/auth/verify - Wrong code, %d attempts left", wrongCode.AttemptsLeft)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgWrongCodeFmt, wrongCode.AttemptsLeft))

		default:
			h.logger.Error("POST /admin/auth/verify - Failed to verify code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.SetSessionCookie(w, result.SessionToken)

	h.logger.Info("POST /admin/auth/verify - Admin logged in, %d businesses", len(result.Slugs))
	handlers.RespondJSON(w, http.StatusOK, VerifyResponse{OK: true, Slugs: result.Slugs})
}
