package models

// PageMeta is the pagination metadata shared by every paged collection.
type PageMeta struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

// ReservationRequest is the body of POST /reservar.
type ReservationRequest struct {
	TripID     int64 `json:"idViaje"`
	SeatNumber int   `json:"numeroAsiento"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
