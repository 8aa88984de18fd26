package clients

import (
	"context"
	"fmt"
	"net/url"

	"busreserva/backend/services/web-client/internal/models"
)

// BusesClient fetches buses.
type BusesClient struct {
	base *BaseClient
}

// NewBusesClient returns client.
func NewBusesClient(baseURL string, httpClient HTTPDoer) *BusesClient {
	return &BusesClient{base: NewBaseClient(baseURL, httpClient)}
}

// ListBuses fetches one page of buses.
func (c *BusesClient) ListBuses(ctx context.Context, token string, page, size int) (*models.BusPage, error) {
	var out models.BusPage
	if err := c.base.getJSON(ctx, fmt.Sprintf("/buses?page=%d&size=%d", page, size), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBus fetches a single bus.
func (c *BusesClient) GetBus(ctx context.Context, token, id string) (*models.Bus, error) {
	var out models.Bus
	if err := c.base.getJSON(ctx, "/bus/"+url.PathEscape(id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
