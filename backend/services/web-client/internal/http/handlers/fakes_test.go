package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/format"
	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/models"
	"busreserva/backend/services/web-client/internal/pagination"
	"busreserva/backend/services/web-client/internal/session"
)

type fakeAuth struct {
	token string
	err   error
	calls []models.Credentials
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) (string, error) {
	f.calls = append(f.calls, creds)
	return f.token, f.err
}

// fakeAPI records every call and answers from canned values.
type fakeAPI struct {
	mu sync.Mutex

	tripPage *models.TripPage
	trip     *models.Trip
	busPage  *models.BusPage
	bus      *models.Bus
	err      error
	reserved []models.ReservationRequest

	listCalls    []pagination.Request
	detailCalls  []string
	reserveCalls int
	tokens       []string
}

func (f *fakeAPI) record(token string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}

func (f *fakeAPI) ListTrips(_ context.Context, token string, page, size int) (*models.TripPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, pagination.Request{Page: page, Size: size})
	if err := f.record(token); err != nil {
		return nil, err
	}
	return f.tripPage, nil
}

func (f *fakeAPI) GetTrip(_ context.Context, token, id string) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)
	if err := f.record(token); err != nil {
		return nil, err
	}
	return f.trip, nil
}

func (f *fakeAPI) ListBuses(_ context.Context, token string, page, size int) (*models.BusPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, pagination.Request{Page: page, Size: size})
	if err := f.record(token); err != nil {
		return nil, err
	}
	return f.busPage, nil
}

func (f *fakeAPI) GetBus(_ context.Context, token, id string) (*models.Bus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)
	if err := f.record(token); err != nil {
		return nil, err
	}
	return f.bus, nil
}

func (f *fakeAPI) Reserve(_ context.Context, token string, req models.ReservationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	if err := f.record(token); err != nil {
		return err
	}
	f.reserved = append(f.reserved, req)
	return nil
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls) + len(f.detailCalls) + f.reserveCalls
}

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	dates, err := format.NewDateFormatter("UTC")
	require.NoError(t, err)
	renderer, err := views.New(dates)
	require.NoError(t, err)
	return renderer
}

func newSession(t *testing.T, token string) *session.Session {
	t.Helper()
	sess := session.NewManager(session.NewMemoryStore(), zap.NewNop()).New()
	if token != "" {
		require.NoError(t, sess.SetToken(context.Background(), token))
	}
	return sess
}
