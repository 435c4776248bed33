package pgm

import (
	"errors"
	"fmt"
)

// ErrInvalidClassLabel is returned when an image name does not carry a decimal
// digit at the class label position.
var ErrInvalidClassLabel = errors.New("invalid class label")

// ParseError describes a malformed PGM file. It always names the file and
// what was expected versus found.
type ParseError struct {
	File   string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pgm: %q: %s", e.File, e.Detail)
}

func parseErrorf(file, format string, args ...any) *ParseError {
	return &ParseError{File: file, Detail: fmt.Sprintf(format, args...)}
}
