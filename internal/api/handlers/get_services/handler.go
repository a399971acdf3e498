package get_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/QS-AppointmentService/internal/api/handlers"
	businesscfgService "github.com/m04kA/QS-AppointmentService/internal/service/businesscfg"
)

const msgBusinessNotFound = "бизнес не найден"

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

// Handle GET /api/v1/businesses/{slug}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	cfg, err := h.configs.Resolve(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, businesscfgService.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{slug}/services - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{slug}/services - Failed to resolve config: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromConfig(cfg))
}
