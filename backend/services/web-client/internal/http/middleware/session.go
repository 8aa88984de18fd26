package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/session"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	cookieKey  contextKey = "session_cookie"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Sessions attaches the browser session to the request context, minting a new one
// (and its cookie) when the request carries none.
func Sessions(manager *session.Manager, opts CookieOptions, logger *zap.Logger) func(http.Handler) http.Handler {
	if opts.Name == "" {
		opts.Name = "sid"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				sess *session.Session
				err  error
			)
			cookie, cookieErr := r.Cookie(opts.Name)
			if cookieErr == nil {
				sess, err = manager.Open(r.Context(), cookie.Value)
				if err != nil {
					logger.Error("failed to load session", zap.Error(err))
					http.Error(w, "session storage unavailable", http.StatusServiceUnavailable)
					return
				}
			} else {
				sess = manager.New()
			}

			if cookieErr != nil || cookie.Value != sess.ID() {
				http.SetCookie(w, sessionCookie(opts, sess.ID()))
			}

			ctx := context.WithValue(WithSession(r.Context(), sess), cookieKey, opts)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReissueCookie points the session cookie at the current id of sess, replacing any
// cookie already queued on w. Handlers call it after the id changed.
func ReissueCookie(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	opts, ok := r.Context().Value(cookieKey).(CookieOptions)
	if !ok {
		opts = CookieOptions{Name: "sid"}
	}

	prefix := opts.Name + "="
	var kept []string
	for _, line := range w.Header().Values("Set-Cookie") {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
		}
	}
	w.Header().Del("Set-Cookie")
	for _, line := range kept {
		w.Header().Add("Set-Cookie", line)
	}
	http.SetCookie(w, sessionCookie(opts, sess.ID()))
}

func sessionCookie(opts CookieOptions, id string) *http.Cookie {
	return &http.Cookie{
		Name:     opts.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// WithSession returns ctx carrying sess.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext retrieves the browser session from request context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}

// TokenFromContext returns the session token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.Token()
}
