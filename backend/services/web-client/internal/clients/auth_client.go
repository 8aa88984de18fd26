package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"busreserva/backend/services/web-client/internal/models"
)

// AuthClient talks to the authentication endpoint.
type AuthClient struct {
	base *BaseClient
}

// NewAuthClient returns client.
func NewAuthClient(baseURL string, httpClient HTTPDoer) *AuthClient {
	return &AuthClient{base: NewBaseClient(baseURL, httpClient)}
}

// Login exchanges credentials for a token. The API answers with the token as plain text.
func (c *AuthClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}
	status, respBody, err := c.base.Do(ctx, http.MethodPost, "/auth/login", body, nil)
	if err != nil {
		return "", &TransportError{Op: "POST /auth/login", Err: err}
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", ErrInvalidCredentials
	}
	token := strings.TrimSpace(string(respBody))
	if token == "" {
		return "", ErrEmptyBody
	}
	return token, nil
}
