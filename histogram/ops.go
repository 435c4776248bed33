package histogram

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroSum is returned when normalizing a histogram whose bins sum to zero.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrZeroSum)`.
var ErrZeroSum = errors.New("cannot normalize histogram with sum zero")

// ErrLengthMismatch is returned when a binary operation is applied to
// histograms of different lengths.
var ErrLengthMismatch = errors.New("histograms must have the same length")

// Normalize divides every bin by the bin sum so the result sums to 1.0.
func Normalize(h Histogram) ([]float64, error) {
	sum := h.Sum()
	if sum == 0 {
		return nil, ErrZeroSum
	}
	norm := make([]float64, len(h))
	for i, v := range h {
		norm[i] = float64(v) / float64(sum)
	}
	return norm, nil
}

// Intersection computes the sum of element-wise minimums of two normalized
// histograms. For two histograms that each sum to 1.0 the result lies in
// [0,1]: 1.0 iff they are identical, 0.0 iff their supports are disjoint.
func Intersection(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		sum += math.Min(a[i], b[i])
	}
	return sum, nil
}

// Dot computes the sum of element-wise products of two normalized histograms.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}
