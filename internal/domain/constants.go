package domain

import "time"

// Recommendation defaults
const (
	DefaultLookaheadDays = 5
	DefaultSlotDuration  = time.Hour
)

// Distance calculation modes
const (
	DistanceModeAuto     = ""
	DistanceModeLocal    = "local"
	DistanceModeExternal = "external"
	// DistanceModeGoogle alias of DistanceModeExternal
	DistanceModeGoogle = "google"
)

// Time format constants
const (
	DateTimeFormat = "2006-01-02 15:04:05" // YYYY-MM-DD HH:MM:SS
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
)
