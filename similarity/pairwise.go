package similarity

import (
	"math"

	"github.com/hupe1980/clustergo/histogram"
	"github.com/hupe1980/clustergo/pgm"
)

// Pair records, for one image, the most similar other image in a set and the
// histogram-intersection score between them.
type Pair struct {
	Image   string
	Closest string
	Score   float64
}

// ClosestPairs finds, for every image, its nearest neighbor in the set by
// normalized-histogram intersection. Pairs are returned in input order.
// Images with no strictly positive best match (possible only in degenerate
// sets) are skipped.
func ClosestPairs(images []*pgm.Image) []Pair {
	pairs := make([]Pair, 0, len(images))
	for _, img := range images {
		best := math.SmallestNonzeroFloat64
		var closest *pgm.Image
		for _, other := range images {
			if other == img {
				continue
			}
			// Lengths always match: both histograms are NumBins wide.
			score, _ := histogram.Intersection(img.NormalizedHistogram(), other.NormalizedHistogram())
			if score > best {
				best = score
				closest = other
			}
		}
		if closest != nil {
			pairs = append(pairs, Pair{Image: img.Name(), Closest: closest.Name(), Score: best})
		}
	}
	return pairs
}
