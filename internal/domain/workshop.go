package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Workshop represents a service point with a same-day daily operating window
type Workshop struct {
	ID          int64
	Name        string
	Latitude    float64
	Longitude   float64
	OpeningTime types.TimeString
	ClosingTime types.TimeString
}

// Location returns the workshop's coordinates
func (w *Workshop) Location() Coordinates {
	return Coordinates{Latitude: w.Latitude, Longitude: w.Longitude}
}

// HasValidHours returns true if the workshop opens before it closes on the same day
func (w *Workshop) HasValidHours() bool {
	return !w.OpeningTime.IsZero() && !w.ClosingTime.IsZero() && w.OpeningTime.IsBefore(w.ClosingTime)
}

// IsOpenAt returns true if the time of day of t falls within [opening, closing)
func (w *Workshop) IsOpenAt(t time.Time) bool {
	tod := types.NewTimeString(t)
	return !tod.IsBefore(w.OpeningTime) && tod.IsBefore(w.ClosingTime)
}

// IsClosedForDay returns true if t is already past the closing time of its day
func (w *Workshop) IsClosedForDay(t time.Time) bool {
	return t.After(w.ClosingTime.On(t))
}
