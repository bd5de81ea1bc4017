package stats

import "errors"

var (
	// ErrEmptyInput is returned when a track has no usable points for a statistic.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingTimestamp is returned when a required point lacks a timestamp.
	ErrMissingTimestamp = errors.New("missing timestamp")

	// ErrMissingElevation is returned when no point in the track has an elevation.
	ErrMissingElevation = errors.New("no point has an elevation")

	// ErrDegenerateDuration is returned when an elapsed time needed as a divisor is zero.
	ErrDegenerateDuration = errors.New("zero elapsed time")

	// ErrInvalidNumeric is returned when weighted median input contains NaN.
	ErrInvalidNumeric = errors.New("NaN in input")
)
