package reporting

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lumapos/lumapos/internal/platform/httpx"
	"github.com/lumapos/lumapos/internal/reporting/export"
)

// Handler exposes report summaries and the CSV download.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/export", h.exportCSV)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query().Get("range"), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid filter", err.Error())
		return
	}
	summary, err := h.service.Summarize(r.Context(), filter)
	if err != nil {
		h.logger.Error("summarize sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query().Get("range"), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid filter", err.Error())
		return
	}
	records, err := h.service.FilterSales(r.Context(), filter)
	if err != nil {
		h.logger.Error("filter sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSalesCSV(&buf, records); err != nil {
		h.logger.Error("write sales csv", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	filename := fmt.Sprintf("sales_report_%s.csv", h.service.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("stream csv", slog.Any("error", err))
	}
}

// ParseFilter builds a report filter from query parameters. Dates use the
// 2006-01-02 layout; an explicit from/to pair overrides the quick range.
func ParseFilter(rangeParam, fromParam, toParam string) (Filter, error) {
	filter := Filter{Range: RangeDay}
	if rangeParam != "" {
		kind := RangeKind(rangeParam)
		if !kind.Valid() {
			return Filter{}, fmt.Errorf("unknown range %q", rangeParam)
		}
		filter.Range = kind
	}
	if fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid from date %q", fromParam)
		}
		filter.From = &from
	}
	if toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid to date %q", toParam)
		}
		filter.To = &to
	}
	return filter, nil
}
