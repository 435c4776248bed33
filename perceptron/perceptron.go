package perceptron

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/histogram"
	"github.com/hupe1980/clustergo/pgm"
)

// NumEpochs is the fixed number of training passes over the sample set.
const NumEpochs = 100

// ErrTargetClassMissing is returned when no training sample carries the
// target class label.
var ErrTargetClassMissing = errors.New("target class label not found in training samples")

// Perceptron is a binary linear classifier for one target class. It is
// trained exactly once at construction and immutable afterwards.
type Perceptron struct {
	targetClass int
	weights     []float64
	bias        float64
}

// New trains a perceptron that separates targetClass from the rest of the
// samples. Samples are visited in their given order for exactly NumEpochs
// passes; the update fires on every sample regardless of sign correctness.
func New(samples []*pgm.Image, targetClass int) (*Perceptron, error) {
	labels := make([]int, len(samples))
	found := false
	for i, s := range samples {
		label, err := s.ClassLabel()
		if err != nil {
			return nil, err
		}
		labels[i] = label
		if label == targetClass {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: class %d", ErrTargetClassMissing, targetClass)
	}

	p := &Perceptron{
		targetClass: targetClass,
		weights:     make([]float64, histogram.NumBins),
	}
	p.train(samples, labels)
	return p, nil
}

func (p *Perceptron) train(samples []*pgm.Image, labels []int) {
	for epoch := 0; epoch < NumEpochs; epoch++ {
		for i, sample := range samples {
			norm := sample.NormalizedHistogram()

			d := -1.0
			if labels[i] == p.targetClass {
				d = 1.0
			}
			err := d - p.Score(norm)

			for j := range p.weights {
				p.weights[j] += err * norm[j]
			}
			p.bias += err
		}
	}
}

// Score returns the linear score dot(weights, normHist) + bias.
func (p *Perceptron) Score(normHist []float64) float64 {
	sum := p.bias
	for i, w := range p.weights {
		sum += w * normHist[i]
	}
	return sum
}

// TargetClass returns the class label this perceptron separates.
func (p *Perceptron) TargetClass() int { return p.targetClass }
