package engine

import (
	"io"
	"log/slog"
	"time"
)

// Collector receives per-round measurements. Implementations must be safe
// for reuse across rounds.
type Collector interface {
	// RecordRound is called after every merge round with the number of pair
	// scores evaluated, the round duration, and the error if the round failed.
	RecordRound(pairsScanned int, duration time.Duration, err error)
}

type noopCollector struct{}

func (noopCollector) RecordRound(int, time.Duration, error) {}

type options struct {
	parallelism int
	logger      *slog.Logger
	collector   Collector
}

// Option configures an Engine.
type Option func(*options)

// WithParallelism enables parallel scoring of scan rows with up to n
// goroutines. n <= 1 keeps the scan fully sequential. The merge decision is
// unaffected: scores are materialized first and the maximum is selected by a
// deterministic sequential pass.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger sets the structured logger. If nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = logger
	}
}

// WithCollector sets the metrics collector. If nil, metrics are disabled.
func WithCollector(c Collector) Option {
	return func(o *options) {
		if c == nil {
			c = noopCollector{}
		}
		o.collector = c
	}
}
