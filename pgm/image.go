package pgm

import (
	"fmt"

	"github.com/hupe1980/clustergo/histogram"
)

// classLabelIndex is the fixed character position in an image name that
// carries the ground-truth class digit.
const classLabelIndex = 5

// Image is a decoded grayscale image. It is immutable after construction;
// the histogram views are memoized on first access.
type Image struct {
	name   string
	pixels [][]int

	hist     histogram.Histogram
	normHist []float64
}

// NewImage constructs an image from an in-memory pixel grid, applying the
// same contract as the decoder. The grid is not copied; callers hand over
// ownership.
func NewImage(name string, pixels [][]int) (*Image, error) {
	if len(pixels) != RequiredHeight {
		return nil, parseErrorf(name, "dimensions must be %dx%d: found height %d",
			RequiredWidth, RequiredHeight, len(pixels))
	}
	for _, row := range pixels {
		if len(row) != RequiredWidth {
			return nil, parseErrorf(name, "dimensions must be %dx%d: found width %d",
				RequiredWidth, RequiredHeight, len(row))
		}
		for _, v := range row {
			if v < 0 || v > MaxPixelValue {
				return nil, parseErrorf(name, "pixel out of range [0,%d]: found %d", MaxPixelValue, v)
			}
		}
	}
	return &Image{name: name, pixels: pixels}, nil
}

// Name returns the file identifier the image was decoded from.
func (img *Image) Name() string { return img.name }

// Width returns the image width in pixels.
func (img *Image) Width() int { return len(img.pixels[0]) }

// Height returns the image height in pixels.
func (img *Image) Height() int { return len(img.pixels) }

// Pixels returns the pixel grid. Callers must treat it as read-only.
func (img *Image) Pixels() [][]int { return img.pixels }

// Histogram returns the 64-bin intensity histogram of the image.
func (img *Image) Histogram() histogram.Histogram {
	if img.hist == nil {
		img.hist = histogram.FromPixels(img.pixels)
	}
	return img.hist
}

// NormalizedHistogram returns the normalized histogram of the image.
// An image always has a nonzero pixel count, so normalization cannot fail.
func (img *Image) NormalizedHistogram() []float64 {
	if img.normHist == nil {
		norm, err := histogram.Normalize(img.Histogram())
		if err != nil {
			// Unreachable for a decoded image: the histogram sums to
			// width*height > 0.
			panic(err)
		}
		img.normHist = norm
	}
	return img.normHist
}

// ClassLabel derives the ground-truth class from the image name: the
// character at the fixed label position must be a decimal digit.
func (img *Image) ClassLabel() (int, error) {
	if len(img.name) <= classLabelIndex {
		return 0, fmt.Errorf("%w: name %q is too short", ErrInvalidClassLabel, img.name)
	}
	c := img.name[classLabelIndex]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%w: name %q has no digit at position %d", ErrInvalidClassLabel, img.name, classLabelIndex)
	}
	return int(c - '0'), nil
}

func (img *Image) String() string { return img.name }
