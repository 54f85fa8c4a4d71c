package domain

import "time"

// Interval is a half-open time window [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has a positive length
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two intervals share any instant.
// Intervals that only touch at an endpoint (10:00-11:00 and 11:00-12:00) do not overlap.
// The predicate is symmetric: a.Overlaps(b) == b.Overlaps(a).
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}
