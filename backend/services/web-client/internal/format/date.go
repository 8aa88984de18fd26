// Package format renders API values for display.
package format

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDate is rendered in place of dates that cannot be parsed.
const InvalidDate = "Fecha inválida"

// DisplayLayout is dd/MM/yyyy HH:mm:ss.
const DisplayLayout = "02/01/2006 15:04:05"

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Date-times without an offset are read in the display location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateFormatter renders timestamps in a fixed location.
type DateFormatter struct {
	loc *time.Location
}

// NewDateFormatter returns a formatter for the named IANA zone. Empty or "Local" uses the host zone.
func NewDateFormatter(zone string) (*DateFormatter, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" || zone == "Local" {
		return &DateFormatter{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("format: load location %q: %w", zone, err)
	}
	return &DateFormatter{loc: loc}, nil
}

// Parse reads an API date string.
func (f *DateFormatter) Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(f.loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, f.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders raw as dd/MM/yyyy HH:mm:ss, or InvalidDate.
func (f *DateFormatter) Date(raw string) string {
	t, ok := f.Parse(raw)
	if !ok {
		return InvalidDate
	}
	return t.Format(DisplayLayout)
}

// Price renders an amount with two decimals.
func Price(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
