package clustergo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/corpus"
	"github.com/hupe1980/clustergo/engine"
	"github.com/hupe1980/clustergo/histogram"
	"github.com/hupe1980/clustergo/perceptron"
	"github.com/hupe1980/clustergo/pgm"
	"github.com/hupe1980/clustergo/similarity"
)

// Error kinds. Every error surfaced by this package satisfies errors.Is for
// exactly one of these, so callers can decide per category whether to abort
// or report. There are no retryable errors: this is a deterministic batch
// computation.
var (
	// ErrParse marks a malformed image or list file.
	ErrParse = errors.New("parse failure")

	// ErrArgument marks invalid caller input, detected before any
	// clustering work begins.
	ErrArgument = errors.New("invalid argument")

	// ErrNumeric marks an undefined numeric operation, such as normalizing
	// an all-zero histogram or a zero perceptron score differential.
	ErrNumeric = errors.New("numeric failure")

	// ErrModel marks a classifier that cannot be constructed from the
	// supplied training data.
	ErrModel = errors.New("model failure")
)

// translateError maps subpackage errors onto the public error kinds. The
// original error stays reachable via errors.Unwrap / errors.Is.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pe *pgm.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	var it *engine.ErrInvalidTarget
	if errors.As(err, &it) ||
		errors.Is(err, pgm.ErrInvalidClassLabel) ||
		errors.Is(err, corpus.ErrTooFewImages) ||
		errors.Is(err, similarity.ErrNoTrainingImages) {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	}

	if errors.Is(err, histogram.ErrZeroSum) ||
		errors.Is(err, histogram.ErrLengthMismatch) ||
		errors.Is(err, similarity.ErrZeroScoreDiff) {
		return fmt.Errorf("%w: %w", ErrNumeric, err)
	}
	var dm *similarity.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return fmt.Errorf("%w: %w", ErrNumeric, err)
	}

	if errors.Is(err, perceptron.ErrTargetClassMissing) {
		return fmt.Errorf("%w: %w", ErrModel, err)
	}

	return err
}
