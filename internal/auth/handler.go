package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumapos/lumapos/internal/platform/httpx"
	"github.com/lumapos/lumapos/internal/shared"
)

// Handler wires the admin login endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions, validate: validator.New()}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type loginForm struct {
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid payload", "password is required")
		return
	}

	if err := h.service.Authenticate(r.Context(), form.Password); err != nil {
		h.logger.Warn("admin login rejected", slog.String("remote", r.RemoteAddr))
		httpx.RespondError(w, err)
		return
	}

	sess, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		h.logger.Error("load session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	sess.SetUser(AdminUser)
	if err := h.sessions.Commit(r.Context(), w, sess); err != nil {
		h.logger.Error("commit session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		h.logger.Error("load session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.sessions.Destroy(sess)
	if err := h.sessions.Commit(r.Context(), w, sess); err != nil {
		h.logger.Error("commit session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequireAdmin rejects requests without an authenticated admin session.
func RequireAdmin(sessions *shared.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r.Context(), r)
			if err != nil || sess.User() != AdminUser {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
