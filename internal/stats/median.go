package stats

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Sample is an observed value together with the weight it carries, e.g. a
// speed and the number of seconds it was held.
type Sample struct {
	Value  float64
	Weight float64
}

// WeightedMedian returns the weighted median of samples.
//
// Samples are ordered by value and the left median is the first one at which
// the running weight reaches half the total. For an even number of samples the
// right median is found the same way scanning from the top, and the result is
// the mean of the two, which reduces to the ordinary median when all weights
// are equal. If every weight is zero the smallest value is returned.
func WeightedMedian(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptyInput
	}

	values := make([]float64, len(samples))
	weights := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
		weights[i] = s.Weight
	}
	if floats.HasNaN(values) || floats.HasNaN(weights) {
		return 0, ErrInvalidNumeric
	}

	// Summed in input order, like the running sums below, so that a sample
	// sitting exactly on the half-way mark is found by both scans.
	var total float64
	for _, w := range weights {
		total += w
	}
	half := total / 2

	sorted := slices.Clone(samples)
	slices.SortFunc(sorted, func(a, b Sample) int {
		return cmp.Compare(a.Value, b.Value)
	})

	left := leftMedian(sorted, half)
	if len(sorted)%2 == 1 {
		return left.Value, nil
	}
	right := rightMedian(sorted, half)
	return (left.Value + right.Value) / 2, nil
}

// leftMedian expects a non-empty slice sorted by value.
func leftMedian(sorted []Sample, half float64) Sample {
	var sum float64
	for _, s := range sorted {
		sum += s.Weight
		if sum >= half {
			return s
		}
	}
	// Rounding can leave the running sum a hair under half.
	return sorted[len(sorted)-1]
}

// rightMedian expects a non-empty slice sorted by value.
func rightMedian(sorted []Sample, half float64) Sample {
	var sum float64
	for i := len(sorted) - 1; i >= 0; i-- {
		sum += sorted[i].Weight
		if sum >= half {
			return sorted[i]
		}
	}
	return sorted[0]
}
