// Package track turns raw track samples into a sequence annotated with
// cumulative distance, segment speed and segment duration.
package track

import (
	"github.com/planbiir/gpxstat/internal/monitoring"
)

// Derive annotates points in a single forward pass. The result has the same
// length and order as the input; empty input yields an empty result.
func Derive(points []RawPoint) []EnrichedPoint {
	out := make([]EnrichedPoint, len(points))

	var (
		dist       float64
		degenerate int
	)
	for i, p := range points {
		out[i] = EnrichedPoint{
			Position:  p.Position,
			Elevation: p.Elevation,
			Time:      p.Time,
			Distance:  dist,
		}
		if i == len(points)-1 {
			break
		}

		next := points[i+1]
		segDist := Distance(p.Position, next.Position)

		if p.Time != nil && next.Time != nil {
			dt := next.Time.Sub(*p.Time)
			out[i].TimeToNext = &dt

			// A zero or negative delta has no meaningful speed; leaving it
			// unset keeps the segment out of the median.
			if secs := dt.Seconds(); secs > 0 {
				speed := segDist / secs
				out[i].Speed = &speed
			} else {
				degenerate++
			}
		}

		dist += segDist
	}

	if degenerate > 0 {
		monitoring.Logf("⚠️  %d of %d segments have a non-positive time delta, speed left unset",
			degenerate, len(points)-1)
	}

	return out
}
