package similarity

import (
	"fmt"

	"github.com/hupe1980/clustergo/cluster"
)

// ErrDimensionMismatch indicates that two average images cannot be compared
// pixel by pixel because their dimensions differ.
type ErrDimensionMismatch struct {
	AHeight, AWidth int
	BHeight, BWidth int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("average image dimensions do not match: %dx%d vs %dx%d",
		e.AWidth, e.AHeight, e.BWidth, e.BHeight)
}

// InverseSquareDiff scores two clusters as 1/(ssd+1), where ssd is the sum of
// squared per-pixel differences of their average images. Identical averages
// score 1.0; the score falls towards 0 as the averages diverge.
type InverseSquareDiff struct{}

// Score implements Strategy.
func (InverseSquareDiff) Score(a, b *cluster.Cluster) (float64, error) {
	ssd, err := sumSquaredDiff(a.AverageImage(), b.AverageImage())
	if err != nil {
		return 0, err
	}
	return 1.0 / (ssd + 1.0), nil
}

func sumSquaredDiff(a, b [][]int) (float64, error) {
	if len(a) != len(b) || len(a) == 0 || len(a[0]) != len(b[0]) {
		return 0, &ErrDimensionMismatch{
			AHeight: len(a), AWidth: width(a),
			BHeight: len(b), BWidth: width(b),
		}
	}
	sum := 0.0
	for y := range a {
		for x := range a[y] {
			d := float64(a[y][x] - b[y][x])
			sum += d * d
		}
	}
	return sum, nil
}

func width(pixels [][]int) int {
	if len(pixels) == 0 {
		return 0
	}
	return len(pixels[0])
}
