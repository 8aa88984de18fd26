package httpserver

import (
	"net/http"

	"busreserva/backend/services/web-client/internal/http/handlers"
	"busreserva/backend/services/web-client/internal/http/middleware"
	"busreserva/backend/services/web-client/internal/http/views"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	LoginHandlers       *handlers.LoginHandlers
	BusesHandlers       *handlers.BusesHandlers
	TripsHandlers       *handlers.TripsHandlers
	ReservationHandlers *handlers.ReservationHandlers
	SessionEvents       http.HandlerFunc
	HealthHandler       http.HandlerFunc
}

// NewRouter wires browser routes. sessions attaches the browser session; protected
// routes additionally pass through the route guard.
func NewRouter(deps RouterDeps, sessions func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))
	mux.Handle("/static/", method(http.MethodGet, views.Static()))

	withSession := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, sessions)
	}
	protected := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, sessions, middleware.RequireSession)
	}

	mux.Handle("/login", methods(map[string]http.Handler{
		http.MethodGet:  withSession(deps.LoginHandlers.Show),
		http.MethodPost: withSession(deps.LoginHandlers.Submit),
	}))
	mux.Handle("/logout", method(http.MethodPost, withSession(deps.LoginHandlers.Logout)))

	mux.Handle("/{$}", method(http.MethodGet, protected(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.DefaultLandingPath, http.StatusSeeOther)
	})))
	mux.Handle("/buses", method(http.MethodGet, protected(deps.BusesHandlers.List)))
	mux.Handle("/bus/{id}", method(http.MethodGet, protected(deps.BusesHandlers.Detail)))
	mux.Handle("/viajes", method(http.MethodGet, protected(deps.TripsHandlers.List)))
	mux.Handle("/viaje/{idViaje}", method(http.MethodGet, protected(deps.TripsHandlers.Detail)))
	mux.Handle("/reservar", method(http.MethodPost, protected(deps.ReservationHandlers.Reserve)))

	if deps.SessionEvents != nil {
		mux.Handle("/ws/session", method(http.MethodGet, withSession(deps.SessionEvents)))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return methods(map[string]http.Handler{expected: handler})
}

func methods(byMethod map[string]http.Handler) http.Handler {
	allowed := make([]string, 0, len(byMethod))
	for m := range byMethod {
		allowed = append(allowed, m)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := byMethod[r.Method]
		if !ok {
			for _, m := range allowed {
				w.Header().Add("Allow", m)
			}
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
