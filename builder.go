// This file implements the fluent builder API for creating Clusterer instances.
// The builder is immutable - each method returns a new builder with the updated
// configuration.
package clustergo

import (
	"github.com/hupe1980/clustergo/engine"
	"github.com/hupe1980/clustergo/pgm"
	"github.com/hupe1980/clustergo/similarity"
)

// Cluster creates a new builder targeting the given final cluster count.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	c, err := clustergo.Cluster(4).
//	    PerceptronEnsemble(training).
//	    Parallelism(4).
//	    Build(images)
func Cluster(target int) Builder {
	return Builder{
		target:      target,
		kind:        similarity.KindAgglomerative,
		parallelism: 1,
	}
}

// Builder is an immutable fluent builder for creating Clusterer instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	target      int
	kind        similarity.Kind
	training    []*pgm.Image
	parallelism int
	logger      *Logger
	metrics     MetricsCollector
}

// Agglomerative selects whole-histogram intersection similarity.
// This is the default.
func (b Builder) Agglomerative() Builder {
	b.kind = similarity.KindAgglomerative
	return b
}

// Quarter selects spatial similarity over a 2x2 grid of sub-histograms.
func (b Builder) Quarter() Builder {
	b.kind = similarity.KindQuarter
	return b
}

// Ninth selects spatial similarity over a 3x3 grid of sub-histograms.
func (b Builder) Ninth() Builder {
	b.kind = similarity.KindNinth
	return b
}

// InverseSquareDiff selects inverse squared pixel difference of the
// clusters' average images.
func (b Builder) InverseSquareDiff() Builder {
	b.kind = similarity.KindInverseSquareDiff
	return b
}

// PerceptronEnsemble selects the perceptron score-gap ensemble, trained on
// the given labeled images. One classifier is trained per class observed in
// the training set.
func (b Builder) PerceptronEnsemble(training []*pgm.Image) Builder {
	b.kind = similarity.KindPerceptronEnsemble
	b.training = training
	return b
}

// Strategy selects the similarity strategy by kind. Training images are
// required only for KindPerceptronEnsemble and ignored otherwise.
func (b Builder) Strategy(k similarity.Kind, training []*pgm.Image) Builder {
	b.kind = k
	b.training = training
	return b
}

// Parallelism sets the number of goroutines used to score cluster pairs in
// each round. Values <= 1 keep the scan sequential. The merge sequence is
// identical at any parallelism.
func (b Builder) Parallelism(n int) Builder {
	b.parallelism = n
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Build creates the Clusterer over the given images, each starting as its
// own singleton cluster in input order.
func (b Builder) Build(images []*pgm.Image) (*Clusterer, error) {
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	strategy, err := similarity.Provider(b.kind, b.training)
	if err != nil {
		return nil, translateError(err)
	}

	eng, err := engine.New(images, b.target, strategy,
		engine.WithParallelism(b.parallelism),
		engine.WithLogger(logger.Logger),
		engine.WithCollector(engineCollector{metrics: metrics}),
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &Clusterer{
		engine:  eng,
		kind:    b.kind,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// MustBuild creates the Clusterer, panicking on error.
func (b Builder) MustBuild(images []*pgm.Image) *Clusterer {
	c, err := b.Build(images)
	if err != nil {
		panic(err)
	}
	return c
}
