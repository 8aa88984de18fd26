// Package pagination turns query parameters into page requests and builds navigation controls.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"busreserva/backend/services/web-client/internal/models"
)

// DefaultSize is used when no or an unsupported size is requested.
const DefaultSize = 10

// Sizes are the selectable page sizes.
var Sizes = []int{10, 20, 30}

// Request identifies the page to fetch.
type Request struct {
	Page int
	Size int
}

// ParseRequest reads page, size and prev_size from a query. When prev_size is present and
// differs from size the page-size selector changed, which resets the page to the first one.
func ParseRequest(q url.Values) Request {
	req := Request{
		Page: atoiOr(q.Get("page"), 0),
		Size: normalizeSize(atoiOr(q.Get("size"), DefaultSize)),
	}
	if req.Page < 0 {
		req.Page = 0
	}
	if prev := q.Get("prev_size"); prev != "" && normalizeSize(atoiOr(prev, DefaultSize)) != req.Size {
		req = req.WithSize(req.Size)
	}
	return req
}

// WithSize returns the request for the first page at the new size.
func (r Request) WithSize(size int) Request {
	return Request{Page: 0, Size: normalizeSize(size)}
}

// Query encodes the request as list-view query parameters.
func (r Request) Query() string {
	return fmt.Sprintf("page=%d&size=%d", r.Page, r.Size)
}

// Controls drives the pagination bar of a list view.
type Controls struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int64
	Size         int
	PrevDisabled bool
	NextDisabled bool
	PrevPage     int
	NextPage     int
	Sizes        []int
}

// NewControls derives the controls from the metadata of a fetched page.
// Buttons are disabled at the edges so no link ever points outside [0, TotalPages),
// including when a page past the end was requested by hand.
func NewControls(meta models.PageMeta, size int) Controls {
	c := Controls{
		CurrentPage: meta.CurrentPage,
		TotalPages:  meta.TotalPages,
		TotalItems:  meta.TotalItems,
		Size:        size,
		Sizes:       Sizes,
	}
	c.PrevDisabled = c.CurrentPage <= 0 || c.TotalPages <= 0
	c.NextDisabled = c.CurrentPage >= c.TotalPages-1
	if !c.PrevDisabled {
		c.PrevPage = min(c.CurrentPage-1, c.TotalPages-1)
	}
	if !c.NextDisabled {
		c.NextPage = c.CurrentPage + 1
	}
	return c
}

// Label renders "Página x de y".
func (c Controls) Label() string {
	return fmt.Sprintf("Página %d de %d", c.CurrentPage+1, c.TotalPages)
}

func normalizeSize(size int) int {
	for _, s := range Sizes {
		if s == size {
			return size
		}
	}
	return DefaultSize
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
