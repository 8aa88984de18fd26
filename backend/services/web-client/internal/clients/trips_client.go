package clients

import (
	"context"
	"fmt"
	"net/url"

	"busreserva/backend/services/web-client/internal/models"
)

// TripsClient fetches trips.
type TripsClient struct {
	base *BaseClient
}

// NewTripsClient returns client.
func NewTripsClient(baseURL string, httpClient HTTPDoer) *TripsClient {
	return &TripsClient{base: NewBaseClient(baseURL, httpClient)}
}

// ListTrips fetches one page of trips.
func (c *TripsClient) ListTrips(ctx context.Context, token string, page, size int) (*models.TripPage, error) {
	var out models.TripPage
	if err := c.base.getJSON(ctx, fmt.Sprintf("/viajes?page=%d&size=%d", page, size), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrip fetches a single trip.
func (c *TripsClient) GetTrip(ctx context.Context, token, id string) (*models.Trip, error) {
	var out models.Trip
	if err := c.base.getJSON(ctx, "/viaje/"+url.PathEscape(id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
