package update_business_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	getBusinessConfig "github.com/m04kA/QS-AppointmentService/internal/api/handlers/get_business_config"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgAccessDenied       = "нет доступа к этому бизнесу"
)

type Handler struct {
	configs ConfigService
	logger  Logger
}

func NewHandler(configs ConfigService, logger Logger) *Handler {
	return &Handler{
		configs: configs,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/businesses/{slug}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		h.logger.Error("PUT /admin/businesses/{slug}/config - Session missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	slug := mux.Vars(r)["slug"]
	if !sess.CanManage(slug) {
		h.logger.Warn("PUT /admin/businesses/{slug}/config - Access denied: slug=%s, phone=%s", slug, sess.Phone)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/businesses/{slug}/config - Invalid request body: slug=%s, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.configs.Update(r.Context(), slug, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, businesscfgService.ErrBusinessNotFound):
			h.logger.Warn("PUT /admin/businesses/{slug}/config - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, businesscfgService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/businesses/{slug}/config - Invalid input: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/businesses/{slug}/config - Failed to update config: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/businesses/{slug}/config - Config updated: slug=%s, phone=%s", slug, sess.Phone)
	handlers.RespondJSON(w, http.StatusOK, getBusinessConfig.FromConfig(cfg))
}
