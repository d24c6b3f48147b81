package insights

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumapos/lumapos/internal/platform/httpx"
	"github.com/lumapos/lumapos/internal/reporting"
)

// AnalyzeForm scopes the narrative the same way report summaries are scoped.
type AnalyzeForm struct {
	Range string `json:"range"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// AnalyzeResponse wraps the markdown narrative.
type AnalyzeResponse struct {
	Report string `json:"report"`
}

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/analyze", h.analyze)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var form AnalyzeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	filter, err := reporting.ParseFilter(form.Range, form.From, form.To)
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid filter", err.Error())
		return
	}

	report, err := h.service.Analyze(r.Context(), filter)
	if err != nil {
		h.logger.Error("analyze sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, AnalyzeResponse{Report: report})
}
