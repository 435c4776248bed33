package quality

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/clustergo/cluster"
)

// ErrNoClusters is returned when purity is requested for an empty partition.
var ErrNoClusters = errors.New("no clusters to analyze")

// Purity computes the clustering quality in [0,1]: the sum over clusters of
// the member count of each cluster's single most frequent class, divided by
// the total image count. The result is invariant to cluster order and to
// image order within clusters.
//
// Membership is tracked as roaring bitmaps over image ordinals, one bitmap
// per observed class per cluster; the dominant class is the largest
// cardinality.
func Purity(clusters []*cluster.Cluster) (float64, error) {
	if len(clusters) == 0 {
		return 0, ErrNoClusters
	}

	dominant := uint64(0)
	total := uint64(0)
	ordinal := uint32(0)

	for _, c := range clusters {
		classBitmaps := make(map[int]*roaring.Bitmap)
		for _, img := range c.Images() {
			label, err := img.ClassLabel()
			if err != nil {
				return 0, err
			}
			bm, ok := classBitmaps[label]
			if !ok {
				bm = roaring.New()
				classBitmaps[label] = bm
			}
			bm.Add(ordinal)
			ordinal++
		}

		best := uint64(0)
		for _, bm := range classBitmaps {
			if card := bm.GetCardinality(); card > best {
				best = card
			}
		}
		dominant += best
		total += uint64(c.Size())
	}

	return float64(dominant) / float64(total), nil
}
