package sales

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/platform/httpx"
)

// CheckoutForm is the checkout request payload.
type CheckoutForm struct {
	Items []CheckoutFormLine `json:"items" validate:"required,min=1,dive"`
	// Revenue is the operator-entered sale total, not derived from prices.
	Revenue float64 `json:"revenue" validate:"required,gt=0"`
	Note    string  `json:"note"`
}

// CheckoutFormLine is one product+quantity pair in the cart.
type CheckoutFormLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AmendForm carries the amendable fields. Absent fields are left unchanged.
type AmendForm struct {
	Timestamp *time.Time `json:"timestamp"`
	Revenue   *float64   `json:"revenue"`
	Note      *string    `json:"note"`
}

// Handler exposes the sale transaction engine over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers sale endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.checkout)
	r.Patch("/{id}", h.amend)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sales)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var form CheckoutForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Input", err.Error())
		return
	}

	lines := make([]CartLine, 0, len(form.Items))
	for _, item := range form.Items {
		lines = append(lines, CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	sale, err := h.service.Checkout(r.Context(), CheckoutInput{
		Lines:   lines,
		Revenue: form.Revenue,
		Note:    form.Note,
	})
	if err != nil {
		h.respondDomainError(w, "checkout", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) amend(w http.ResponseWriter, r *http.Request) {
	var form AmendForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	sale, err := h.service.Amend(r.Context(), chi.URLParam(r, "id"), AmendInput{
		Timestamp: form.Timestamp,
		Revenue:   form.Revenue,
		Note:      form.Note,
	})
	if err != nil {
		h.respondDomainError(w, "amend sale", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondDomainError(w, "delete sale", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	if isInsufficientStock(err) {
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
		return
	}
	httpx.RespondError(w, err)
}

func isInsufficientStock(err error) bool {
	return errors.Is(err, catalog.ErrInsufficientStock)
}
