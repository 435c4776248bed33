package cluster

import (
	"errors"
	"sort"
	"strings"

	"github.com/hupe1980/clustergo/histogram"
	"github.com/hupe1980/clustergo/pgm"
)

// ErrConsumed is returned when a cluster that has been absorbed by a merge is
// used again.
var ErrConsumed = errors.New("cluster has been consumed by a merge")

// Cluster aggregates a growing set of images. The cumulative histogram is the
// bin-wise sum of all member histograms; the average image is the per-pixel
// integer mean across members, maintained incrementally rather than by
// rescanning members.
type Cluster struct {
	images   []*pgm.Image
	avg      [][]int
	hist     histogram.Histogram
	normHist []float64

	// Lazily cached sub-histograms of the average image, keyed by the
	// partition count they were computed at. Invalidated whenever the
	// average image changes.
	subHists []histogram.Histogram
	subCount int
}

// New creates a cluster holding exactly one image. The average image starts
// as a copy of the image's pixels; the pixel grid is never aliased so merges
// cannot write through to the source image.
func New(img *pgm.Image) *Cluster {
	pixels := img.Pixels()
	avg := make([][]int, len(pixels))
	for y, row := range pixels {
		avg[y] = make([]int, len(row))
		copy(avg[y], row)
	}

	hist := make(histogram.Histogram, len(img.Histogram()))
	copy(hist, img.Histogram())

	return &Cluster{
		images:   []*pgm.Image{img},
		avg:      avg,
		hist:     hist,
		normHist: img.NormalizedHistogram(),
	}
}

// AddImage appends one image and folds its histogram into the cumulative
// histogram. The average image and normalized histogram are not touched;
// Merge performs the full recompute after transferring all members.
func (c *Cluster) AddImage(img *pgm.Image) {
	c.images = append(c.images, img)
	for i, v := range img.Histogram() {
		c.hist[i] += v
	}
}

// Merge absorbs other into c: all images transfer, the cumulative histogram
// becomes the sum of both, the average image becomes the weighted per-pixel
// mean with integer truncation, and the normalized histogram is refreshed.
// other is left consumed and must be dropped from the active set by the
// caller.
func (c *Cluster) Merge(other *Cluster) error {
	if other.images == nil {
		return ErrConsumed
	}

	selfN := len(c.images)
	otherN := len(other.images)
	total := selfN + otherN

	for _, img := range other.images {
		c.AddImage(img)
	}

	for y := range c.avg {
		for x := range c.avg[y] {
			c.avg[y][x] = (c.avg[y][x]*selfN + other.avg[y][x]*otherN) / total
		}
	}

	norm, err := histogram.Normalize(c.hist)
	if err != nil {
		return err
	}
	c.normHist = norm

	// The average image changed, so any cached partition is stale.
	c.subHists = nil

	other.images = nil
	other.avg = nil
	return nil
}

// SubHistograms returns histograms of the average image partitioned into n
// cells. The result is cached and recomputed only when absent, computed at a
// different partition count, or invalidated by a merge.
func (c *Cluster) SubHistograms(n int) ([]histogram.Histogram, error) {
	if c.subHists == nil || c.subCount != n {
		subs, err := histogram.SubHistograms(c.avg, n)
		if err != nil {
			return nil, err
		}
		c.subHists = subs
		c.subCount = n
	}
	return c.subHists, nil
}

// Images returns the member images. Callers must treat the slice as read-only.
func (c *Cluster) Images() []*pgm.Image { return c.images }

// Size returns the number of member images.
func (c *Cluster) Size() int { return len(c.images) }

// AverageImage returns the per-pixel mean image. Read-only for callers.
func (c *Cluster) AverageImage() [][]int { return c.avg }

// Histogram returns the cumulative (unnormalized) histogram.
func (c *Cluster) Histogram() histogram.Histogram { return c.hist }

// NormalizedHistogram returns the normalized cumulative histogram.
func (c *Cluster) NormalizedHistogram() []float64 { return c.normHist }

// MemberNames returns the member image names sorted lexicographically.
func (c *Cluster) MemberNames() []string {
	names := make([]string, len(c.images))
	for i, img := range c.images {
		names[i] = img.Name()
	}
	sort.Strings(names)
	return names
}

// String renders the cluster as its sorted member names joined by spaces.
func (c *Cluster) String() string {
	return strings.Join(c.MemberNames(), " ")
}
