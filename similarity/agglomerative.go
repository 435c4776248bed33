package similarity

import (
	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/histogram"
)

// Agglomerative scores two clusters by the intersection of their whole-image
// normalized histograms. This is the baseline strategy.
type Agglomerative struct{}

// Score implements Strategy.
func (Agglomerative) Score(a, b *cluster.Cluster) (float64, error) {
	return histogram.Intersection(a.NormalizedHistogram(), b.NormalizedHistogram())
}
