// Package perceptron implements a linear scoring model over normalized
// intensity histograms, trained with a delta-rule update. Unlike a classical
// thresholded step-perceptron, the weight update uses the continuous error
// against the raw linear score and fires on every sample.
package perceptron
