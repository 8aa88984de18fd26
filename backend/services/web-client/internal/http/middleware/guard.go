package middleware

import (
	"net/http"

	"busreserva/backend/services/web-client/internal/guard"
)

// RequireSession renders the wrapped view only for sessions holding a token.
// Others are redirected with 303 so the protected URL does not stay in history.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := TokenFromContext(r.Context())
		decision := guard.Evaluate(token, ok)
		if !decision.Allow {
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
