package similarity

import (
	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/histogram"
)

const (
	// QuarterCells partitions the average image into 4 spatial cells.
	QuarterCells = 4

	// NinthCells partitions the average image into 9 spatial cells.
	NinthCells = 9
)

// Partitioned scores two clusters by the mean intersection of normalized
// sub-histograms over a spatial partition of their average images. The cell
// sub-histograms come from the clusters' partition cache, which a merge
// invalidates, so every comparison sees the current average image.
type Partitioned struct {
	cells int
}

// NewPartitioned creates a partitioned strategy over the given cell count.
func NewPartitioned(cells int) Partitioned {
	return Partitioned{cells: cells}
}

// Cells returns the partition cell count.
func (p Partitioned) Cells() int { return p.cells }

// Score implements Strategy.
func (p Partitioned) Score(a, b *cluster.Cluster) (float64, error) {
	subsA, err := a.SubHistograms(p.cells)
	if err != nil {
		return 0, err
	}
	subsB, err := b.SubHistograms(p.cells)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := range subsA {
		normA, err := histogram.Normalize(subsA[i])
		if err != nil {
			return 0, err
		}
		normB, err := histogram.Normalize(subsB[i])
		if err != nil {
			return 0, err
		}
		cell, err := histogram.Intersection(normA, normB)
		if err != nil {
			return 0, err
		}
		sum += cell
	}
	return sum / float64(len(subsA)), nil
}

// Prepare implements Preparer: it warms the cluster's partition cache so a
// parallel scan only reads.
func (p Partitioned) Prepare(c *cluster.Cluster) error {
	_, err := c.SubHistograms(p.cells)
	return err
}
