// Package views renders the HTML pages of the web client.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"busreserva/backend/services/web-client/internal/format"
	"busreserva/backend/services/web-client/internal/models"
	"busreserva/backend/services/web-client/internal/pagination"
	"busreserva/backend/services/web-client/internal/viewstate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageLogin       = "login"
	PageBusList     = "bus_list"
	PageBusDetail   = "bus_detail"
	PageTripList    = "trip_list"
	PageTripDetail  = "trip_detail"
	PageReservation = "reservation"
)

var pages = []string{PageLogin, PageBusList, PageBusDetail, PageTripList, PageTripDetail, PageReservation}

// Layout is the data shared by every page.
type Layout struct {
	Title string
	User  string
	// Live pages subscribe to session events so a logout elsewhere sends them to the login view.
	Live bool
}

// LoginPage is the login form.
type LoginPage struct {
	Layout
	Username string
	Error    string
}

// BusListPage lists one page of buses.
type BusListPage struct {
	Layout
	Fetch    viewstate.Fetch[*models.BusPage]
	Controls pagination.Controls
}

// BusDetailPage shows one bus.
type BusDetailPage struct {
	Layout
	Fetch viewstate.Fetch[*models.Bus]
}

// TripListPage lists one page of trips.
type TripListPage struct {
	Layout
	Fetch       viewstate.Fetch[*models.TripPage]
	Controls    pagination.Controls
	DefaultSeat int
}

// TripDetailPage shows one trip.
type TripDetailPage struct {
	Layout
	Fetch viewstate.Fetch[*models.Trip]
}

// ReservationPage reports the outcome of a reservation.
type ReservationPage struct {
	Layout
	OK      bool
	Message string
	BackURL string
}

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the shared layout.
func New(dates *format.DateFormatter) (*Renderer, error) {
	funcs := template.FuncMap{
		"date":       dates.Date,
		"price":      format.Price,
		"isSuccess":  func(p viewstate.Phase) bool { return p == viewstate.Success },
		"isNotFound": func(p viewstate.Phase) bool { return p == viewstate.NotFound },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/pager.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page with status. The page is executed into a buffer first so a
// template failure never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("views: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("views: execute %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
