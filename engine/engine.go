package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/pgm"
	"github.com/hupe1980/clustergo/similarity"
)

// ErrInvalidTarget indicates a target cluster count outside [1, image count].
type ErrInvalidTarget struct {
	Target int
	Images int
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("target cluster count must be between 1 and %d: got %d", e.Images, e.Target)
}

// Engine owns the active cluster set and performs merge rounds until the
// target count is reached. It is single-owner: no external caller may
// observe or mutate the active set mid-round.
type Engine struct {
	clusters []*cluster.Cluster
	target   int
	strategy similarity.Strategy

	parallelism int
	logger      *slog.Logger
	collector   Collector

	rounds int
}

// New creates an engine over the given images, each starting as its own
// singleton cluster in input order.
func New(images []*pgm.Image, target int, strategy similarity.Strategy, optFns ...Option) (*Engine, error) {
	if target < 1 || target > len(images) {
		return nil, &ErrInvalidTarget{Target: target, Images: len(images)}
	}

	opts := options{
		parallelism: 1,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		collector:   noopCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	clusters := make([]*cluster.Cluster, len(images))
	for i, img := range images {
		clusters[i] = cluster.New(img)
	}

	return &Engine{
		clusters:    clusters,
		target:      target,
		strategy:    strategy,
		parallelism: opts.parallelism,
		logger:      opts.logger,
		collector:   opts.collector,
	}, nil
}

// Run performs merge rounds until the active set reaches the target size or
// no mergeable pair remains. Each round shrinks the set by exactly one.
func (e *Engine) Run(ctx context.Context) error {
	for len(e.clusters) > e.target {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		i, j, ok, err := e.bestPair(ctx)
		e.collector.RecordRound(e.pairCount(), time.Since(start), err)
		if err != nil {
			return err
		}
		if !ok {
			e.logger.Debug("no mergeable pair remains", "clusters", len(e.clusters))
			break
		}

		if err := e.clusters[i].Merge(e.clusters[j]); err != nil {
			return err
		}
		e.clusters = append(e.clusters[:j], e.clusters[j+1:]...)
		e.rounds++

		e.logger.Debug("merged clusters",
			"round", e.rounds,
			"into", i,
			"absorbed", j,
			"remaining", len(e.clusters),
		)
	}
	return nil
}

// Clusters returns the active cluster set. Valid only between runs; callers
// must treat it as read-only.
func (e *Engine) Clusters() []*cluster.Cluster { return e.clusters }

// Rounds returns the number of merges performed so far.
func (e *Engine) Rounds() int { return e.rounds }

func (e *Engine) pairCount() int {
	n := len(e.clusters)
	return n * (n - 1) / 2
}

// bestPair finds the most similar unordered pair (i, j), i < j, scanning in
// a fixed row-major order. Ties break to the first pair encountered: only a
// strictly greater score displaces the current best.
func (e *Engine) bestPair(ctx context.Context) (int, int, bool, error) {
	n := len(e.clusters)
	if n < 2 {
		return 0, 0, false, nil
	}

	if e.parallelism > 1 {
		return e.bestPairParallel(ctx)
	}

	bestI, bestJ := -1, -1
	best := math.SmallestNonzeroFloat64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score, err := e.strategy.Score(e.clusters[i], e.clusters[j])
			if err != nil {
				return 0, 0, false, err
			}
			if score > best {
				best = score
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ, bestI >= 0, nil
}

// bestPairParallel scores scan rows concurrently, then selects the winner in
// the same deterministic order as the sequential scan. Strategies that cache
// derived cluster state are prepared up front so scoring is read-only.
func (e *Engine) bestPairParallel(ctx context.Context) (int, int, bool, error) {
	n := len(e.clusters)

	if p, ok := e.strategy.(similarity.Preparer); ok {
		for _, c := range e.clusters {
			if err := p.Prepare(c); err != nil {
				return 0, 0, false, err
			}
		}
	}

	scores := make([]float64, n*n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := 0; i < n-1; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				score, err := e.strategy.Score(e.clusters[i], e.clusters[j])
				if err != nil {
					return err
				}
				scores[i*n+j] = score
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, false, err
	}

	bestI, bestJ := -1, -1
	best := math.SmallestNonzeroFloat64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if s := scores[i*n+j]; s > best {
				best = s
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ, bestI >= 0, nil
}
