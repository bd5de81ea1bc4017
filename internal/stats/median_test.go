package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    float64
	}{
		{
			name:    "uniform weights match plain median",
			samples: []Sample{{1, 0.25}, {2, 0.25}, {3, 0.25}, {4, 0.25}},
			want:    2.5,
		},
		{
			name:    "skewed weights",
			samples: []Sample{{1, 0.15}, {2, 0.1}, {3, 0.2}, {4, 0.3}, {5, 0.25}},
			want:    4.0,
		},
		{
			name:    "small weight on the half-way mark",
			samples: []Sample{{1, 0.49}, {2, 0.01}, {3, 0.25}, {4, 0.25}},
			want:    2.5,
		},
		{
			name:    "unsorted input",
			samples: []Sample{{4, 0.25}, {1, 0.25}, {3, 0.25}, {2, 0.25}},
			want:    2.5,
		},
		{
			name:    "odd count uniform weights",
			samples: []Sample{{7, 1}, {3, 1}, {5, 1}},
			want:    5,
		},
		{
			name:    "long hold dominates",
			samples: []Sample{{1, 1}, {2, 1}, {10, 60}},
			want:    10,
		},
		{
			name:    "all weights zero picks smallest value",
			samples: []Sample{{3, 0}, {1, 0}, {2, 0}},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedMedian(tt.samples)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeightedMedianSingleSample(t *testing.T) {
	for _, s := range []Sample{{0, 0}, {3.5, 1}, {-2, 100}, {1e9, 1e-9}} {
		got, err := WeightedMedian([]Sample{s})
		require.NoError(t, err)
		assert.Equal(t, s.Value, got)
	}
}

func TestWeightedMedianErrors(t *testing.T) {
	_, err := WeightedMedian(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = WeightedMedian([]Sample{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = WeightedMedian([]Sample{{1, 1}, {math.NaN(), 1}})
	assert.ErrorIs(t, err, ErrInvalidNumeric)

	_, err = WeightedMedian([]Sample{{1, math.NaN()}, {2, 1}})
	assert.ErrorIs(t, err, ErrInvalidNumeric)
}

func TestWeightedMedianLeavesInputOrder(t *testing.T) {
	samples := []Sample{{3, 1}, {1, 1}, {2, 1}}
	_, err := WeightedMedian(samples)
	require.NoError(t, err)
	assert.Equal(t, []Sample{{3, 1}, {1, 1}, {2, 1}}, samples)
}
