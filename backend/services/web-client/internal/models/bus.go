package models

// BusRef is the bus embedded in a trip.
type BusRef struct {
	ID     int64  `json:"id"`
	Plate  string `json:"placa"`
	Number int    `json:"numero"`
}

// Bus is the standalone bus resource.
type Bus BusRef

// BusPage is one page of buses.
type BusPage struct {
	Items       []Bus `json:"buses"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// Meta returns the pagination part of the page.
func (p BusPage) Meta() PageMeta {
	return PageMeta{CurrentPage: p.CurrentPage, TotalPages: p.TotalPages, TotalItems: p.TotalItems}
}
