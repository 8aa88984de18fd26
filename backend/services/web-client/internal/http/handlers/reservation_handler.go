package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"busreserva/backend/services/web-client/internal/clients"
	"busreserva/backend/services/web-client/internal/http/views"
	"busreserva/backend/services/web-client/internal/models"
	"busreserva/backend/services/web-client/internal/pagination"
	"busreserva/backend/services/web-client/internal/viewstate"
)

const (
	reservationOK        = "¡Reserva realizada con éxito!"
	reservationRejected  = "Error al reservar viaje: "
	reservationTransport = "Error al conectar con el servidor."
	reservationInvalid   = "Datos de reserva inválidos"
)

// Reserver books seats.
type Reserver interface {
	Reserve(ctx context.Context, token string, req models.ReservationRequest) error
}

// ReservationHandlers serves the reservation action.
type ReservationHandlers struct {
	api    Reserver
	runner *viewstate.Runner
	views  *views.Renderer
	logger *zap.Logger
}

// NewReservationHandlers returns handler.
func NewReservationHandlers(api Reserver, runner *viewstate.Runner, renderer *views.Renderer, logger *zap.Logger) *ReservationHandlers {
	return &ReservationHandlers{api: api, runner: runner, views: renderer, logger: logger}
}

// Reserve handles POST /reservar. The outcome page links back to the list; the list
// itself is not refetched as part of the reservation.
func (h *ReservationHandlers) Reserve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderResult(w, r, http.StatusBadRequest, false, reservationInvalid, pagination.Request{Size: pagination.DefaultSize})
		return
	}
	back := pagination.ParseRequest(r.PostForm)

	tripID, errTrip := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("idViaje")), 10, 64)
	seat, errSeat := strconv.Atoi(strings.TrimSpace(r.PostFormValue("numeroAsiento")))
	if errTrip != nil || errSeat != nil || tripID <= 0 || seat <= 0 {
		h.renderResult(w, r, http.StatusBadRequest, false, reservationInvalid, back)
		return
	}

	token := tokenFrom(r)
	req := models.ReservationRequest{TripID: tripID, SeatNumber: seat}
	fetch := viewstate.Run(r.Context(), h.runner, reservationTransport, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.api.Reserve(ctx, token, req)
	})
	if fetch.Abandoned(r.Context()) {
		h.logger.Debug("reservation abandoned by client", zap.Int64("trip_id", tripID))
		return
	}

	if fetch.Phase == viewstate.Success {
		h.logger.Info("seat reserved", zap.Int64("trip_id", tripID), zap.Int("seat", seat))
		h.renderResult(w, r, http.StatusOK, true, reservationOK, back)
		return
	}

	h.logger.Warn("reservation failed", zap.Int64("trip_id", tripID), zap.Int("seat", seat), zap.Error(fetch.Err))
	status, message := reservationFailure(fetch.Err)
	h.renderResult(w, r, status, false, message, back)
}

func reservationFailure(err error) (int, string) {
	var statusErr *clients.StatusError
	switch {
	case errors.Is(err, clients.ErrTokenUnavailable):
		return http.StatusUnauthorized, clients.Describe(err, "")
	case errors.As(err, &statusErr):
		return http.StatusUnprocessableEntity, reservationRejected + strings.TrimSpace(statusErr.Body)
	default:
		return http.StatusBadGateway, reservationTransport
	}
}

func (h *ReservationHandlers) renderResult(w http.ResponseWriter, r *http.Request, status int, ok bool, message string, back pagination.Request) {
	render(w, h.views, h.logger, status, views.PageReservation, views.ReservationPage{
		Layout:  layoutFor(r, "Reserva"),
		OK:      ok,
		Message: message,
		BackURL: "/viajes?" + back.Query(),
	})
}
