package clustergo

import (
	"context"
	"strings"
	"time"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/corpus"
	"github.com/hupe1980/clustergo/engine"
	"github.com/hupe1980/clustergo/pgm"
	"github.com/hupe1980/clustergo/quality"
	"github.com/hupe1980/clustergo/similarity"
)

// LoadImages reads an image list from the store and parses every image it
// names, in list order. At least two images are required.
func LoadImages(ctx context.Context, store blobstore.BlobStore, listName string) ([]*pgm.Image, error) {
	images, err := corpus.NewLoader(store).Load(ctx, listName)
	if err != nil {
		return nil, translateError(err)
	}
	return images, nil
}

// Clusterer runs greedy agglomerative clustering over a fixed image corpus.
// Create one with the fluent builder (see Cluster), then call Run. A
// Clusterer is single-use: after Run returns, build a new one for another
// corpus or strategy.
type Clusterer struct {
	engine  *engine.Engine
	kind    similarity.Kind
	logger  *Logger
	metrics MetricsCollector
}

// Run performs merge rounds until the target cluster count is reached or no
// mergeable pair remains, and returns the resulting grouping. The context is
// checked between rounds; cancellation aborts with the context's error.
func (c *Clusterer) Run(ctx context.Context) (*Result, error) {
	log := c.logger.WithStrategy(c.kind.String())

	start := time.Now()
	err := c.engine.Run(ctx)
	elapsed := time.Since(start)

	clusters := c.engine.Clusters()
	c.metrics.RecordRun(c.engine.Rounds(), len(clusters), elapsed, err)
	log.LogRun(ctx, c.engine.Rounds(), len(clusters), elapsed, err)
	if err != nil {
		return nil, translateError(err)
	}

	return &Result{
		clusters: clusters,
		rounds:   c.engine.Rounds(),
		kind:     c.kind,
		elapsed:  elapsed,
	}, nil
}

// Result is the outcome of a clustering run.
type Result struct {
	clusters []*cluster.Cluster
	rounds   int
	kind     similarity.Kind
	elapsed  time.Duration
}

// Clusters returns the final cluster set.
func (r *Result) Clusters() []*cluster.Cluster { return r.clusters }

// Groups returns the member image names of each cluster, sorted within each
// cluster. Cluster order follows the final active set.
func (r *Result) Groups() [][]string {
	groups := make([][]string, len(r.clusters))
	for i, c := range r.clusters {
		groups[i] = c.MemberNames()
	}
	return groups
}

// Rounds returns the number of merges performed.
func (r *Result) Rounds() int { return r.rounds }

// Strategy returns the similarity strategy that produced this result.
func (r *Result) Strategy() similarity.Kind { return r.kind }

// Elapsed returns the wall-clock duration of the run.
func (r *Result) Elapsed() time.Duration { return r.elapsed }

// Purity computes the clustering purity against the class labels encoded in
// the image file names: the fraction of images that belong to their
// cluster's dominant class.
func (r *Result) Purity() (float64, error) {
	p, err := quality.Purity(r.clusters)
	if err != nil {
		return 0, translateError(err)
	}
	return p, nil
}

// String renders one line per cluster, each listing its sorted member names.
func (r *Result) String() string {
	var sb strings.Builder
	for i, c := range r.clusters {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// engineCollector adapts a MetricsCollector to the engine's per-round hook.
type engineCollector struct {
	metrics MetricsCollector
}

func (ec engineCollector) RecordRound(pairsScanned int, duration time.Duration, err error) {
	ec.metrics.RecordRound(pairsScanned, duration, err)
}

// ClosestPairs reports, for every image, its most similar other image under
// whole-histogram intersection. Images with no strictly positive match are
// omitted.
func ClosestPairs(images []*pgm.Image) []similarity.Pair {
	return similarity.ClosestPairs(images)
}
