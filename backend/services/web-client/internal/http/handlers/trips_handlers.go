package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/models"
	"busreserva/backend/services/web-client/internal/pagination"
	"busreserva/backend/services/web-client/internal/viewstate"
)

// TripsAPI is the subset of the reservation API used by the trip views.
type TripsAPI interface {
	ListTrips(ctx context.Context, token string, page, size int) (*models.TripPage, error)
	GetTrip(ctx context.Context, token, id string) (*models.Trip, error)
}

// TripsHandlers serves the trip list and detail views.
type TripsHandlers struct {
	api         TripsAPI
	runner      *viewstate.Runner
	views       *views.Renderer
	logger      *zap.Logger
	defaultSeat int
}

// NewTripsHandlers returns handler.
func NewTripsHandlers(api TripsAPI, runner *viewstate.Runner, renderer *views.Renderer, defaultSeat int, logger *zap.Logger) *TripsHandlers {
	if defaultSeat <= 0 {
		defaultSeat = 1
	}
	return &TripsHandlers{api: api, runner: runner, views: renderer, defaultSeat: defaultSeat, logger: logger}
}

// List handles GET /viajes.
func (h *TripsHandlers) List(w http.ResponseWriter, r *http.Request) {
	req := pagination.ParseRequest(r.URL.Query())
	token := tokenFrom(r)

	fetch := viewstate.Run(r.Context(), h.runner, "Error al obtener los viajes", func(ctx context.Context) (*models.TripPage, error) {
		return h.api.ListTrips(ctx, token, req.Page, req.Size)
	})
	if fetch.Abandoned(r.Context()) {
		h.logger.Debug("trip list abandoned by client")
		return
	}
	logFetch(h.logger, "trip_list", fetch)

	page := views.TripListPage{Layout: layoutFor(r, "Lista de Viajes"), Fetch: fetch, DefaultSeat: h.defaultSeat}
	if fetch.Phase == viewstate.Success {
		page.Controls = pagination.NewControls(fetch.Data.Meta(), req.Size)
	}
	render(w, h.views, h.logger, statusFor(fetch.Phase, fetch.Err), views.PageTripList, page)
}

// Detail handles GET /viaje/{idViaje}.
func (h *TripsHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("idViaje")
	token := tokenFrom(r)

	fetch := viewstate.Run(r.Context(), h.runner, "Error al obtener los detalles del viaje", func(ctx context.Context) (*models.Trip, error) {
		return h.api.GetTrip(ctx, token, id)
	})
	if fetch.Abandoned(r.Context()) {
		h.logger.Debug("trip detail abandoned by client", zap.String("trip_id", id))
		return
	}
	logFetch(h.logger, "trip_detail", fetch)

	render(w, h.views, h.logger, statusFor(fetch.Phase, fetch.Err), views.PageTripDetail, views.TripDetailPage{
		Layout: layoutFor(r, "Detalles del Viaje"),
		Fetch:  fetch,
	})
}
