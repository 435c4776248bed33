package similarity

import (
	"fmt"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/pgm"
)

// Strategy scores the similarity of two clusters. Higher is more similar.
// Implementations must not mutate the clusters inside Score; strategies that
// need derived per-cluster state implement Preparer and compute it there.
type Strategy interface {
	Score(a, b *cluster.Cluster) (float64, error)
}

// Preparer is an optional interface for strategies that materialize derived
// cluster state before a read-only pair scan. The engine calls Prepare for
// every active cluster ahead of a parallel round so Score stays free of
// cache writes.
type Preparer interface {
	Prepare(c *cluster.Cluster) error
}

// Kind identifies a similarity strategy.
type Kind int

const (
	KindAgglomerative Kind = iota
	KindQuarter
	KindNinth
	KindInverseSquareDiff
	KindPerceptronEnsemble
)

func (k Kind) String() string {
	switch k {
	case KindAgglomerative:
		return "agglomerative"
	case KindQuarter:
		return "quarter"
	case KindNinth:
		return "ninth"
	case KindInverseSquareDiff:
		return "invsquarediff"
	case KindPerceptronEnsemble:
		return "perceptron"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind resolves a strategy name as used on the command line.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "agglomerative":
		return KindAgglomerative, nil
	case "quarter":
		return KindQuarter, nil
	case "ninth":
		return KindNinth, nil
	case "invsquarediff":
		return KindInverseSquareDiff, nil
	case "perceptron":
		return KindPerceptronEnsemble, nil
	default:
		return 0, fmt.Errorf("unsupported similarity strategy: %q", s)
	}
}

// Provider returns the strategy for the given kind. The training images are
// consulted only by the perceptron ensemble, which trains one classifier per
// class it observes in them; other kinds ignore the argument.
func Provider(k Kind, training []*pgm.Image) (Strategy, error) {
	switch k {
	case KindAgglomerative:
		return Agglomerative{}, nil
	case KindQuarter:
		return NewPartitioned(QuarterCells), nil
	case KindNinth:
		return NewPartitioned(NinthCells), nil
	case KindInverseSquareDiff:
		return InverseSquareDiff{}, nil
	case KindPerceptronEnsemble:
		return NewPerceptronEnsemble(training)
	default:
		return nil, fmt.Errorf("unsupported similarity strategy: %v", k)
	}
}
