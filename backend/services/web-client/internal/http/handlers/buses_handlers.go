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

// BusesAPI is the subset of the reservation API used by the bus views.
type BusesAPI interface {
	ListBuses(ctx context.Context, token string, page, size int) (*models.BusPage, error)
	GetBus(ctx context.Context, token, id string) (*models.Bus, error)
}

// BusesHandlers serves the bus list and detail views.
type BusesHandlers struct {
	api    BusesAPI
	runner *viewstate.Runner
	views  *views.Renderer
	logger *zap.Logger
}

// NewBusesHandlers returns handler.
func NewBusesHandlers(api BusesAPI, runner *viewstate.Runner, renderer *views.Renderer, logger *zap.Logger) *BusesHandlers {
	return &BusesHandlers{api: api, runner: runner, views: renderer, logger: logger}
}

// List handles GET /buses.
func (h *BusesHandlers) List(w http.ResponseWriter, r *http.Request) {
	req := pagination.ParseRequest(r.URL.Query())
	token := tokenFrom(r)

	fetch := viewstate.Run(r.Context(), h.runner, "Error al obtener los buses", func(ctx context.Context) (*models.BusPage, error) {
		return h.api.ListBuses(ctx, token, req.Page, req.Size)
	})
	if fetch.Abandoned(r.Context()) {
		h.logger.Debug("bus list abandoned by client")
		return
	}
	logFetch(h.logger, "bus_list", fetch)

	page := views.BusListPage{Layout: layoutFor(r, "Lista de Buses"), Fetch: fetch}
	if fetch.Phase == viewstate.Success {
		page.Controls = pagination.NewControls(fetch.Data.Meta(), req.Size)
	}
	render(w, h.views, h.logger, statusFor(fetch.Phase, fetch.Err), views.PageBusList, page)
}

// Detail handles GET /bus/{id}.
func (h *BusesHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	token := tokenFrom(r)

	fetch := viewstate.Run(r.Context(), h.runner, "Error al obtener los detalles del bus", func(ctx context.Context) (*models.Bus, error) {
		return h.api.GetBus(ctx, token, id)
	})
	if fetch.Abandoned(r.Context()) {
		h.logger.Debug("bus detail abandoned by client", zap.String("bus_id", id))
		return
	}
	logFetch(h.logger, "bus_detail", fetch)

	render(w, h.views, h.logger, statusFor(fetch.Phase, fetch.Err), views.PageBusDetail, views.BusDetailPage{
		Layout: layoutFor(r, "Detalles del Bus"),
		Fetch:  fetch,
	})
}
