package domain

import "time"

// TimeSlot is a candidate appointment window derived from workshop hours
type TimeSlot struct {
	Start    time.Time
	Duration time.Duration
	Booked   bool
}

// End returns the end of the slot
func (s TimeSlot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Interval returns the slot's time window
func (s TimeSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End()}
}

// Recommendation is a workshop ranked for a car, with its free slots over the lookahead horizon
type Recommendation struct {
	WorkshopID     int64
	WorkshopName   string
	Distance       float64 // meters; meaningless when DistanceError is set
	DistanceError  error
	AvailableSlots []time.Time
}

// HasDistance returns true if the distance was computed successfully
func (r *Recommendation) HasDistance() bool {
	return r.DistanceError == nil
}
