package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTokenUnavailable is returned before any request is issued when the session holds no token.
	ErrTokenUnavailable = errors.New("clients: token unavailable")
	// ErrEmptyBody is returned when a 2xx response carries no entity.
	ErrEmptyBody = errors.New("clients: empty response body")
	// ErrInvalidCredentials is returned by Login for any non-2xx answer.
	ErrInvalidCredentials = errors.New("clients: invalid credentials")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clients: api responded %d", e.Status)
}

// TransportError wraps failures below HTTP (dial, TLS, timeouts, cancellation).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("clients: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the requested entity does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrEmptyBody) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound
}

// Describe turns an error into the inline message shown to the user.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrTokenUnavailable) {
		return "Token no disponible"
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return "Credenciales incorrectas"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Error en la respuesta de la API: %d", statusErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Tiempo de espera agotado"
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		if msg := strings.TrimSpace(transportErr.Err.Error()); msg != "" {
			return msg
		}
	}
	return fallback
}
