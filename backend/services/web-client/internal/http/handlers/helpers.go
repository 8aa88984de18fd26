package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/clients"
	"busreserva/backend/services/web-client/internal/http/middleware"
	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/viewstate"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// tokenFrom returns the session token or "" so that clients fail fast with ErrTokenUnavailable.
func tokenFrom(r *http.Request) string {
	token, _ := middleware.TokenFromContext(r.Context())
	return token
}

func layoutFor(r *http.Request, title string) views.Layout {
	layout := views.Layout{Title: title}
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		if _, hasToken := sess.Token(); hasToken {
			layout.User = sess.Subject()
			if layout.User == "" {
				layout.User = "Sesión activa"
			}
			layout.Live = true
		}
	}
	return layout
}

func statusFor(phase viewstate.Phase, err error) int {
	switch phase {
	case viewstate.Success:
		return http.StatusOK
	case viewstate.NotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, clients.ErrTokenUnavailable) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

func render(w http.ResponseWriter, renderer *views.Renderer, logger *zap.Logger, status int, page string, data interface{}) {
	if err := renderer.Render(w, status, page, data); err != nil {
		logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func logFetch[T any](logger *zap.Logger, view string, f viewstate.Fetch[T]) {
	if f.Phase == viewstate.Failed {
		logger.Warn("view fetch failed", zap.String("view", view), zap.Error(f.Err))
	}
}
