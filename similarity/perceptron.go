package similarity

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/perceptron"
	"github.com/hupe1980/clustergo/pgm"
)

// ErrZeroScoreDiff is returned when two clusters score identically under one
// of the ensemble's perceptrons, which makes the inverse-square similarity
// undefined. This is a known failure mode of the formulation; it is surfaced
// as a numeric error rather than coerced to 0 or infinity.
var ErrZeroScoreDiff = errors.New("perceptron score differential is zero")

// ErrNoTrainingImages is returned when the perceptron ensemble is requested
// without training images.
var ErrNoTrainingImages = errors.New("perceptron ensemble requires training images")

// PerceptronEnsemble scores two clusters as the sum over trained classifiers
// of the inverse squared gap between the clusters' linear scores: pairs that
// every classifier struggles to tell apart score high.
//
// One perceptron is trained per distinct class label observed in the
// training images, in first-seen order (one-vs-rest).
type PerceptronEnsemble struct {
	perceptrons []*perceptron.Perceptron
}

// NewPerceptronEnsemble trains the per-class perceptrons from the given
// training images.
func NewPerceptronEnsemble(training []*pgm.Image) (*PerceptronEnsemble, error) {
	if len(training) == 0 {
		return nil, ErrNoTrainingImages
	}

	var classes []int
	seen := make(map[int]bool)
	for _, img := range training {
		label, err := img.ClassLabel()
		if err != nil {
			return nil, err
		}
		if !seen[label] {
			seen[label] = true
			classes = append(classes, label)
		}
	}

	ensemble := &PerceptronEnsemble{}
	for _, class := range classes {
		p, err := perceptron.New(training, class)
		if err != nil {
			return nil, err
		}
		ensemble.perceptrons = append(ensemble.perceptrons, p)
	}
	return ensemble, nil
}

// Classes returns the trained class labels in first-seen order.
func (e *PerceptronEnsemble) Classes() []int {
	classes := make([]int, len(e.perceptrons))
	for i, p := range e.perceptrons {
		classes[i] = p.TargetClass()
	}
	return classes
}

// Score implements Strategy.
func (e *PerceptronEnsemble) Score(a, b *cluster.Cluster) (float64, error) {
	normA := a.NormalizedHistogram()
	normB := b.NormalizedHistogram()

	sum := 0.0
	for _, p := range e.perceptrons {
		diff := p.Score(normA) - p.Score(normB)
		if diff == 0 {
			return 0, fmt.Errorf("%w: class %d", ErrZeroScoreDiff, p.TargetClass())
		}
		sum += 1.0 / (diff * diff)
	}
	return sum, nil
}
