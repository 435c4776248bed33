package histogram

import (
	"fmt"
	"math"
)

const (
	// NumBins is the number of bins in every histogram.
	NumBins = 64

	// BinWidth is the number of consecutive intensity levels covered by one bin.
	BinWidth = 4
)

// Histogram holds per-bin counts of pixel intensities. The invariant is that
// the bins sum to the pixel count of the region the histogram was built from.
type Histogram []int

// FromPixels builds a histogram from a 2D grid of intensities in [0,255].
func FromPixels(pixels [][]int) Histogram {
	h := make(Histogram, NumBins)
	for _, row := range pixels {
		for _, v := range row {
			h[v/BinWidth]++
		}
	}
	return h
}

// Sum returns the total count across all bins.
func (h Histogram) Sum() int {
	sum := 0
	for _, v := range h {
		sum += v
	}
	return sum
}

// SubHistograms partitions the grid into n cells and builds one histogram per
// cell. The decomposition uses a square grid of side ceil(sqrt(n)); cell i
// covers row i/side, column i%side, with cell height and width truncated to
// floor(gridHeight/side) and floor(gridWidth/side).
func SubHistograms(pixels [][]int, n int) ([]Histogram, error) {
	if n < 1 {
		return nil, fmt.Errorf("histogram: number of sub-histograms must be positive, got %d", n)
	}
	if len(pixels) == 0 || len(pixels[0]) == 0 {
		return nil, fmt.Errorf("histogram: cannot partition an empty pixel grid")
	}

	side := int(math.Ceil(math.Sqrt(float64(n))))
	cellH := len(pixels) / side
	cellW := len(pixels[0]) / side

	subs := make([]Histogram, n)
	for i := 0; i < n; i++ {
		row := i / side
		col := i % side
		subs[i] = FromPixels(subRegion(pixels, row*cellH, col*cellW, cellH, cellW))
	}
	return subs, nil
}

// subRegion copies a contiguous rectangular sub-grid starting at (startY, startX).
func subRegion(pixels [][]int, startY, startX, height, width int) [][]int {
	region := make([][]int, height)
	for y := 0; y < height; y++ {
		region[y] = pixels[startY+y][startX : startX+width]
	}
	return region
}
