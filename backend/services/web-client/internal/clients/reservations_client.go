package clients

import (
	"context"
	"net/http"

	"busreserva/backend/services/web-client/internal/models"
)

// ReservationsClient books seats.
type ReservationsClient struct {
	base *BaseClient
}

// NewReservationsClient returns client.
func NewReservationsClient(baseURL string, httpClient HTTPDoer) *ReservationsClient {
	return &ReservationsClient{base: NewBaseClient(baseURL, httpClient)}
}

// Reserve books a seat on a trip. A rejection comes back as *StatusError carrying the API text.
func (c *ReservationsClient) Reserve(ctx context.Context, token string, req models.ReservationRequest) error {
	_, err := c.base.authorized(ctx, http.MethodPost, "/reservar", token, req)
	return err
}
