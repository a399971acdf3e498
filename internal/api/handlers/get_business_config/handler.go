package get_business_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/QS-AppointmentService/internal/api/middleware"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
)

const (
	msgBusinessNotFound = "бизнес не найден"
	msgAccessDenied     = "нет доступа к этому бизнесу"
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

// Handle GET /api/v1/admin/businesses/{slug}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /admin/businesses/{slug}/config - Session missing from request context")
		handlers.RespondInternalError(w)
		return
	}

	slug := mux.Vars(r)["slug"]
	if !sess.CanManage(slug) {
		h.logger.Warn("GET /admin/businesses/{slug}/config - Access denied: slug=%s, phone=%s", slug, sess.Phone)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	cfg, err := h.configs.Resolve(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, businesscfgService.ErrBusinessNotFound):
			h.logger.Warn("GET /admin/businesses/{slug}/config - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /admin/businesses/{slug}/config - Failed to resolve config: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromConfig(cfg))
}
