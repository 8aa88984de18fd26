package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/clients"
	"busreserva/backend/services/web-client/internal/http/middleware"
	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/models"
)

// DefaultLandingPath is where a successful login lands.
const DefaultLandingPath = "/buses"

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// LoginHandlers serves the login and logout flow.
type LoginHandlers struct {
	auth   Authenticator
	views  *views.Renderer
	logger *zap.Logger
}

// NewLoginHandlers returns handler struct.
func NewLoginHandlers(auth Authenticator, renderer *views.Renderer, logger *zap.Logger) *LoginHandlers {
	return &LoginHandlers{auth: auth, views: renderer, logger: logger}
}

// Show handles GET /login.
func (h *LoginHandlers) Show(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, "", "")
}

// Submit handles POST /login.
func (h *LoginHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, "", "Formulario inválido")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.renderForm(w, http.StatusBadRequest, username, "Introduce usuario y contraseña")
		return
	}

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Error("login without session context")
		h.renderForm(w, http.StatusInternalServerError, username, "Error desconocido")
		return
	}

	token, err := h.auth.Login(r.Context(), models.Credentials{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, clients.ErrInvalidCredentials) {
			h.renderForm(w, http.StatusUnauthorized, username, clients.Describe(err, ""))
			return
		}
		h.logger.Warn("login request failed", zap.Error(err))
		h.renderForm(w, http.StatusBadGateway, username, clients.Describe(err, "Error desconocido"))
		return
	}

	if err := sess.Renew(r.Context(), token); err != nil {
		h.logger.Error("failed to store session token", zap.Error(err))
		h.renderForm(w, http.StatusInternalServerError, username, "Error desconocido")
		return
	}
	middleware.ReissueCookie(w, r, sess)

	h.logger.Info("user logged in", zap.String("session_id", sess.ID()))
	http.Redirect(w, r, DefaultLandingPath, http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *LoginHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		if err := sess.Logout(r.Context()); err != nil {
			h.logger.Error("failed to clear session", zap.Error(err))
			http.Error(w, "session storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *LoginHandlers) renderForm(w http.ResponseWriter, status int, username, message string) {
	render(w, h.views, h.logger, status, views.PageLogin, views.LoginPage{
		Layout:   views.Layout{Title: "Login"},
		Username: username,
		Error:    message,
	})
}
