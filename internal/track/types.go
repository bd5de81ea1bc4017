package track

import (
	"time"

	"github.com/golang/geo/s2"
)

// RawPoint is a single recorded sample as read from a track file.
type RawPoint struct {
	Position  s2.LatLng
	Elevation *float64   // metres, nil when not recorded
	Time      *time.Time // nil when not recorded
}

// EnrichedPoint is a RawPoint annotated with values derived from its
// neighbour in the track.
type EnrichedPoint struct {
	Position  s2.LatLng
	Elevation *float64
	Time      *time.Time

	// Distance travelled along the track up to this point (m).
	Distance float64

	// Speed over the segment to the next point (m/s). Nil for the last point,
	// when either timestamp is missing, or when the segment duration is not positive.
	Speed *float64

	// TimeToNext is the time delta to the next point. Nil for the last point or
	// when either timestamp is missing.
	TimeToNext *time.Duration
}
