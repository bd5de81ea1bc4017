// Package stats computes summary statistics over a derived track. Every
// statistic succeeds or fails on its own; one failure never hides another
// statistic's result.
package stats

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/planbiir/gpxstat/internal/track"
)

// Result holds the outcome of one statistic. Computed is false when the
// statistic was not requested; otherwise exactly one of Value and Err is
// meaningful.
type Result[T any] struct {
	Value    T
	Err      error
	Computed bool
}

func result[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err, Computed: true}
}

// OK reports whether the statistic was computed and succeeded.
func (r Result[T]) OK() bool {
	return r.Computed && r.Err == nil
}

// Stats is the set of statistics for one track.
type Stats struct {
	TotalDistance Result[float64]       // m
	TotalTime     Result[time.Duration] // last timestamp minus first
	MeanSpeed     Result[float64]       // m/s
	MedianSpeed   Result[float64]       // m/s, time-weighted
	MaxElevation  Result[float64]       // m
	MinElevation  Result[float64]       // m
}

// Compute evaluates the statistics in want over points. Statistics not in
// want are left with Computed == false; the ones that are computed are
// identical to what Compute(points, All) would return for them.
//
// points must not be modified while Compute runs.
func Compute(points []track.EnrichedPoint, want Set) Stats {
	var (
		s     Stats
		dist  Result[float64]
		total Result[time.Duration]
		g     errgroup.Group
	)

	// Mean speed is derived from distance and time, so those run whenever
	// any of the three is wanted.
	if want.Has(TotalDistance) || want.Has(MeanSpeed) {
		g.Go(func() error {
			dist = result[float64](TotalDistanceOf(points))
			return nil
		})
	}
	if want.Has(TotalTime) || want.Has(MeanSpeed) {
		g.Go(func() error {
			total = result[time.Duration](TotalTimeOf(points))
			return nil
		})
	}
	if want.Has(MedianSpeed) {
		g.Go(func() error {
			s.MedianSpeed = result[float64](MedianSpeedOf(points))
			return nil
		})
	}
	if want.Has(MaxElevation) {
		g.Go(func() error {
			s.MaxElevation = result[float64](MaxElevationOf(points))
			return nil
		})
	}
	if want.Has(MinElevation) {
		g.Go(func() error {
			s.MinElevation = result[float64](MinElevationOf(points))
			return nil
		})
	}
	// Statistic errors live in the results; the group never fails.
	_ = g.Wait()

	if want.Has(TotalDistance) {
		s.TotalDistance = dist
	}
	if want.Has(TotalTime) {
		s.TotalTime = total
	}
	if want.Has(MeanSpeed) {
		s.MeanSpeed = meanSpeedOf(dist, total)
	}

	return s
}

// TotalDistanceOf returns the cumulative distance of the last point.
func TotalDistanceOf(points []track.EnrichedPoint) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("total distance: %w", ErrEmptyInput)
	}
	return points[len(points)-1].Distance, nil
}

// TotalTimeOf returns the time between the first and last point.
func TotalTimeOf(points []track.EnrichedPoint) (time.Duration, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("total time: %w", ErrEmptyInput)
	}
	first, last := points[0], points[len(points)-1]
	if first.Time == nil {
		return 0, fmt.Errorf("total time: first point: %w", ErrMissingTimestamp)
	}
	if last.Time == nil {
		return 0, fmt.Errorf("total time: last point: %w", ErrMissingTimestamp)
	}
	return last.Time.Sub(*first.Time), nil
}

// MeanSpeedFrom divides a distance in metres by an elapsed time. Only an
// elapsed time of exactly zero is rejected: a negative one (last timestamp
// before the first) yields a negative speed, unlike track.Derive, which
// leaves non-positive segments without a speed.
func MeanSpeedFrom(dist float64, elapsed time.Duration) (float64, error) {
	if elapsed == 0 {
		return 0, fmt.Errorf("mean speed: %w", ErrDegenerateDuration)
	}
	return dist / elapsed.Seconds(), nil
}

func meanSpeedOf(dist Result[float64], total Result[time.Duration]) Result[float64] {
	if dist.Err != nil {
		return result(0.0, fmt.Errorf("mean speed: %w", dist.Err))
	}
	if total.Err != nil {
		return result(0.0, fmt.Errorf("mean speed: %w", total.Err))
	}
	return result[float64](MeanSpeedFrom(dist.Value, total.Value))
}

// MedianSpeedOf returns the time-weighted median of the segment speeds.
// Segments without a speed (missing timestamps or non-positive duration) are
// skipped.
func MedianSpeedOf(points []track.EnrichedPoint) (float64, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("median speed: %w", ErrEmptyInput)
	}

	samples := make([]Sample, 0, len(points)-1)
	timed := 0
	for _, p := range points {
		if p.TimeToNext == nil {
			continue
		}
		timed++
		if p.Speed == nil {
			continue
		}
		samples = append(samples, Sample{Value: *p.Speed, Weight: p.TimeToNext.Seconds()})
	}

	switch {
	case timed == 0:
		return 0, fmt.Errorf("median speed: %w", ErrMissingTimestamp)
	case len(samples) == 0:
		// Every timed segment had a zero or negative duration.
		return 0, fmt.Errorf("median speed: %w", ErrEmptyInput)
	}

	median, err := WeightedMedian(samples)
	if err != nil {
		return 0, fmt.Errorf("median speed: %w", err)
	}
	return median, nil
}

// MaxElevationOf returns the highest recorded elevation, skipping points
// without one.
func MaxElevationOf(points []track.EnrichedPoint) (float64, error) {
	elev, err := elevations(points)
	if err != nil {
		return 0, fmt.Errorf("max elevation: %w", err)
	}
	return floats.Max(elev), nil
}

// MinElevationOf returns the lowest recorded elevation, skipping points
// without one.
func MinElevationOf(points []track.EnrichedPoint) (float64, error) {
	elev, err := elevations(points)
	if err != nil {
		return 0, fmt.Errorf("min elevation: %w", err)
	}
	return floats.Min(elev), nil
}

func elevations(points []track.EnrichedPoint) ([]float64, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	elev := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Elevation != nil {
			elev = append(elev, *p.Elevation)
		}
	}
	if len(elev) == 0 {
		return nil, ErrMissingElevation
	}
	return elev, nil
}
