package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/clients"
	"busreserva/backend/services/web-client/internal/http/middleware"
	"busreserva/backend/services/web-client/internal/models"
	"busreserva/backend/services/web-client/internal/pagination"
	"busreserva/backend/services/web-client/internal/session"
	"busreserva/backend/services/web-client/internal/viewstate"
)

// tokenGate mirrors the real clients: no token, no request.
type tokenGate struct {
	*fakeAPI
}

func (g tokenGate) ListTrips(ctx context.Context, token string, page, size int) (*models.TripPage, error) {
	if token == "" {
		return nil, clients.ErrTokenUnavailable
	}
	return g.fakeAPI.ListTrips(ctx, token, page, size)
}

func (g tokenGate) GetTrip(ctx context.Context, token, id string) (*models.Trip, error) {
	if token == "" {
		return nil, clients.ErrTokenUnavailable
	}
	return g.fakeAPI.GetTrip(ctx, token, id)
}

func (g tokenGate) ListBuses(ctx context.Context, token string, page, size int) (*models.BusPage, error) {
	if token == "" {
		return nil, clients.ErrTokenUnavailable
	}
	return g.fakeAPI.ListBuses(ctx, token, page, size)
}

func (g tokenGate) GetBus(ctx context.Context, token, id string) (*models.Bus, error) {
	if token == "" {
		return nil, clients.ErrTokenUnavailable
	}
	return g.fakeAPI.GetBus(ctx, token, id)
}

func (g tokenGate) Reserve(ctx context.Context, token string, req models.ReservationRequest) error {
	if token == "" {
		return clients.ErrTokenUnavailable
	}
	return g.fakeAPI.Reserve(ctx, token, req)
}

func sampleTripPage(current, total int) *models.TripPage {
	return &models.TripPage{
		Items: []models.Trip{{
			ID:                   7,
			Origin:               models.Place{ID: 1, Name: "Lima", Department: "Lima"},
			Destination:          models.Place{ID: 2, Name: "Cusco", Department: "Cusco"},
			DepartureTime:        "2024-01-05T10:00:00Z",
			EstimatedArrivalTime: "not-a-date",
			Bus:                  models.BusRef{ID: 3, Plate: "ABC-123", Number: 12},
			Price:                55.5,
			AvailableSeats:       30,
		}},
		CurrentPage: current,
		TotalPages:  total,
		TotalItems:  int64(total * 10),
	}
}

func withSession(r *http.Request, sess *session.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func TestViewsWithoutTokenFailFast(t *testing.T) {
	api := &fakeAPI{}
	gate := tokenGate{api}
	renderer := newRenderer(t)
	runner := viewstate.NewRunner(time.Second)
	trips := NewTripsHandlers(gate, runner, renderer, 1, zap.NewNop())
	buses := NewBusesHandlers(gate, runner, renderer, zap.NewNop())
	reservations := NewReservationHandlers(gate, runner, renderer, zap.NewNop())

	cases := []struct {
		name    string
		handler http.HandlerFunc
		req     *http.Request
	}{
		{"trip list", trips.List, httptest.NewRequest(http.MethodGet, "/viajes", nil)},
		{"trip detail", trips.Detail, httptest.NewRequest(http.MethodGet, "/viaje/7", nil)},
		{"bus list", buses.List, httptest.NewRequest(http.MethodGet, "/buses", nil)},
		{"bus detail", buses.Detail, httptest.NewRequest(http.MethodGet, "/bus/3", nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, withSession(tc.req, newSession(t, "")))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Token no disponible")
		})
	}

	form := url.Values{"idViaje": {"7"}, "numeroAsiento": {"20"}}
	req := httptest.NewRequest(http.MethodPost, "/reservar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	reservations.Reserve(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token no disponible")

	assert.Equal(t, 0, api.totalCalls())
}

func TestTripListRendersRowsAndBoundaries(t *testing.T) {
	api := &fakeAPI{tripPage: sampleTripPage(0, 3)}
	h := NewTripsHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), 20, zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/viajes", nil), newSession(t, "abc123")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lima")
	assert.Contains(t, body, "Cusco")
	assert.Contains(t, body, "05/01/2024 10:00:00")
	assert.Contains(t, body, "Fecha inválida")
	assert.Contains(t, body, `href="/viaje/7"`)
	assert.Contains(t, body, `name="numeroAsiento" min="1" value="20"`)
	assert.Contains(t, body, "Página 1 de 3")
	assert.Contains(t, body, `<button class="pagination-btn" disabled>Anterior</button>`)
	assert.Contains(t, body, `href="?page=1&size=10"`)
	assert.Equal(t, []string{"abc123"}, api.tokens)

	api.tripPage = sampleTripPage(2, 3)
	rec = httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/viajes?page=2", nil), newSession(t, "abc123")))
	body = rec.Body.String()
	assert.Contains(t, body, `<button class="pagination-btn" disabled>Siguiente</button>`)
	assert.Contains(t, body, `href="?page=1&size=10"`)
}

func TestTripListPageSizeChangeResetsPage(t *testing.T) {
	api := &fakeAPI{tripPage: sampleTripPage(0, 2)}
	h := NewTripsHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), 1, zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/viajes?page=3&size=20&prev_size=10", nil), newSession(t, "abc123")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []pagination.Request{{Page: 0, Size: 20}}, api.listCalls)
	assert.Contains(t, rec.Body.String(), `<option value="20" selected>`)
}

func TestTripListSurfacesUpstreamErrors(t *testing.T) {
	api := &fakeAPI{err: &clients.StatusError{Status: http.StatusInternalServerError}}
	h := NewTripsHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), 1, zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/viajes", nil), newSession(t, "abc123")))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error en la respuesta de la API: 500")

	api.err = &clients.TransportError{Op: "GET /viajes", Err: errors.New("connection refused")}
	rec = httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/viajes", nil), newSession(t, "abc123")))
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestTripDetailStates(t *testing.T) {
	trip := sampleTripPage(0, 1).Items[0]
	api := &fakeAPI{trip: &trip}
	h := NewTripsHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), 1, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/viaje/7", nil)
	req.SetPathValue("idViaje", "7")
	rec := httptest.NewRecorder()
	h.Detail(rec, withSession(req, newSession(t, "abc123")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Detalles del Viaje")
	assert.Contains(t, body, "05/01/2024 10:00:00")
	assert.Contains(t, body, "Fecha inválida")
	assert.Contains(t, body, "ABC-123")
	assert.Contains(t, body, "55.50")
	assert.Contains(t, body, `href="/viajes"`)
	assert.Equal(t, []string{"7"}, api.detailCalls)

	api.err = &clients.StatusError{Status: http.StatusNotFound}
	rec = httptest.NewRecorder()
	h.Detail(rec, withSession(req, newSession(t, "abc123")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No se encontraron detalles del Viaje.")
}

func TestBusViews(t *testing.T) {
	api := &fakeAPI{
		busPage: &models.BusPage{Items: []models.Bus{{ID: 3, Plate: "ABC-123", Number: 12}}, CurrentPage: 0, TotalPages: 1, TotalItems: 1},
		bus:     &models.Bus{ID: 3, Plate: "ABC-123", Number: 12},
	}
	h := NewBusesHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, withSession(httptest.NewRequest(http.MethodGet, "/buses?size=30", nil), newSession(t, "abc123")))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/bus/3"`)
	assert.Contains(t, rec.Body.String(), "Página 1 de 1")
	assert.Equal(t, []pagination.Request{{Page: 0, Size: 30}}, api.listCalls)

	req := httptest.NewRequest(http.MethodGet, "/bus/3", nil)
	req.SetPathValue("id", "3")
	rec = httptest.NewRecorder()
	h.Detail(rec, withSession(req, newSession(t, "abc123")))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Detalles del Bus")
	assert.Contains(t, rec.Body.String(), `href="/buses"`)
}

func postReservation(t *testing.T, h *ReservationHandlers, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/reservar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Reserve(rec, withSession(req, newSession(t, "abc123")))
	return rec
}

func TestReservation(t *testing.T) {
	api := &fakeAPI{}
	h := NewReservationHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), zap.NewNop())

	rec := postReservation(t, h, url.Values{"idViaje": {"7"}, "numeroAsiento": {"20"}, "page": {"2"}, "size": {"20"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "¡Reserva realizada con éxito!")
	assert.Contains(t, rec.Body.String(), `href="/viajes?page=2&amp;size=20"`)
	assert.Equal(t, []models.ReservationRequest{{TripID: 7, SeatNumber: 20}}, api.reserved)
	assert.Empty(t, api.listCalls, "reservation does not refetch the collection")

	api.err = &clients.StatusError{Status: http.StatusConflict, Body: "No seats"}
	rec = postReservation(t, h, url.Values{"idViaje": {"7"}, "numeroAsiento": {"20"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error al reservar viaje: No seats")

	api.err = &clients.TransportError{Op: "POST /reservar", Err: errors.New("dial tcp: refused")}
	rec = postReservation(t, h, url.Values{"idViaje": {"7"}, "numeroAsiento": {"20"}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error al conectar con el servidor.")
	assert.Empty(t, api.listCalls)
}

func TestReservationRejectsInvalidInput(t *testing.T) {
	api := &fakeAPI{}
	h := NewReservationHandlers(api, viewstate.NewRunner(time.Second), newRenderer(t), zap.NewNop())

	for _, form := range []url.Values{
		{"idViaje": {"x"}, "numeroAsiento": {"20"}},
		{"idViaje": {"7"}, "numeroAsiento": {"0"}},
		{"idViaje": {"7"}},
	} {
		rec := postReservation(t, h, form)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Datos de reserva inválidos")
	}
	assert.Equal(t, 0, api.totalCalls())
}
