package models

// Place mirrors the origin/destination object of the reservation API.
type Place struct {
	ID         int64  `json:"id"`
	Name       string `json:"nombre"`
	Department string `json:"departamento"`
}

// Trip mirrors a single "viaje" returned by the API.
// Dates are kept as the raw strings the API sends; formatting happens at render time.
type Trip struct {
	ID                   int64   `json:"idViaje"`
	Origin               Place   `json:"origen"`
	Destination          Place   `json:"destino"`
	DepartureTime        string  `json:"fechaSalida"`
	EstimatedArrivalTime string  `json:"fechaLlegadaEstimada"`
	Bus                  BusRef  `json:"bus"`
	Price                float64 `json:"precio"`
	AvailableSeats       int     `json:"asientosDisponibles"`
}

// TripPage is one page of trips.
type TripPage struct {
	Items       []Trip `json:"viajes"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int64  `json:"totalItems"`
}

// Meta returns the pagination part of the page.
func (p TripPage) Meta() PageMeta {
	return PageMeta{CurrentPage: p.CurrentPage, TotalPages: p.TotalPages, TotalItems: p.TotalItems}
}
