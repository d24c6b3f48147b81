package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumapos/lumapos/internal/platform/httpx"
)

// Handler exposes the connection panel. Routes are mounted behind the
// admin session middleware.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Put("/", h.save)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Load(r.Context())
	if err != nil {
		h.logger.Error("load settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var cfg DbConfig
	if err := httpx.DecodeJSON(r, &cfg); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	saved, err := h.service.Save(r.Context(), cfg)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}
