package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantGrid(h, w, value int) [][]int {
	grid := make([][]int, h)
	for y := range grid {
		grid[y] = make([]int, w)
		for x := range grid[y] {
			grid[y][x] = value
		}
	}
	return grid
}

func TestFromPixels(t *testing.T) {
	tests := []struct {
		name    string
		pixels  [][]int
		wantBin int
		wantCnt int
	}{
		{"ConstantZero", constantGrid(4, 4, 0), 0, 16},
		{"ConstantMid", constantGrid(2, 3, 128), 32, 6},
		{"ConstantMax", constantGrid(1, 1, 255), 63, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := FromPixels(tt.pixels)
			require.Len(t, h, NumBins)
			assert.Equal(t, tt.wantCnt, h[tt.wantBin])
			assert.Equal(t, tt.wantCnt, h.Sum())
		})
	}
}

func TestFromPixelsBinBoundaries(t *testing.T) {
	// 0..3 share bin 0, 4 starts bin 1.
	h := FromPixels([][]int{{0, 1, 2, 3, 4}})
	assert.Equal(t, 4, h[0])
	assert.Equal(t, 1, h[1])
}

func TestNormalize(t *testing.T) {
	h := FromPixels(constantGrid(8, 8, 100))
	norm, err := Normalize(h)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range norm {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 1.0, norm[100/BinWidth], 1e-9)
}

func TestNormalizeZeroSum(t *testing.T) {
	_, err := Normalize(make(Histogram, NumBins))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroSum)
	assert.EqualError(t, err, "cannot normalize histogram with sum zero")
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Identical", []float64{0.5, 0.5}, []float64{0.5, 0.5}, 1.0},
		{"Disjoint", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"Partial", []float64{0.7, 0.3}, []float64{0.4, 0.6}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intersection(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)

			// Symmetry.
			rev, err := Intersection(tt.b, tt.a)
			require.NoError(t, err)
			assert.InDelta(t, got, rev, 1e-9)

			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestIntersectionLengthMismatch(t *testing.T) {
	_, err := Intersection([]float64{1}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDot(t *testing.T) {
	got, err := Dot([]float64{0.25, 0.75}, []float64{0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	_, err = Dot([]float64{1}, []float64{})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSubHistograms(t *testing.T) {
	// 4x4 grid with four distinct quadrant values.
	grid := [][]int{
		{0, 0, 100, 100},
		{0, 0, 100, 100},
		{200, 200, 255, 255},
		{200, 200, 255, 255},
	}

	subs, err := SubHistograms(grid, 4)
	require.NoError(t, err)
	require.Len(t, subs, 4)

	assert.Equal(t, 4, subs[0][0])
	assert.Equal(t, 4, subs[1][100/BinWidth])
	assert.Equal(t, 4, subs[2][200/BinWidth])
	assert.Equal(t, 4, subs[3][255/BinWidth])
	for _, s := range subs {
		assert.Equal(t, 4, s.Sum())
	}
}

func TestSubHistogramsNonSquareCount(t *testing.T) {
	// n=3 still uses a 2x2 grid; only the first three cells are returned.
	grid := constantGrid(4, 4, 40)
	subs, err := SubHistograms(grid, 3)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	for _, s := range subs {
		assert.Equal(t, 4, s.Sum())
	}
}

func TestSubHistogramsInvalid(t *testing.T) {
	_, err := SubHistograms(constantGrid(2, 2, 0), 0)
	assert.Error(t, err)

	_, err = SubHistograms(nil, 4)
	assert.Error(t, err)
}
