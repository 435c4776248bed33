package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/histogram"
	"github.com/hupe1980/clustergo/pgm"
)

func constantImage(t *testing.T, name string, value int) *pgm.Image {
	t.Helper()
	pixels := make([][]int, pgm.RequiredHeight)
	for y := range pixels {
		pixels[y] = make([]int, pgm.RequiredWidth)
		for x := range pixels[y] {
			pixels[y][x] = value
		}
	}
	img, err := pgm.NewImage(name, pixels)
	require.NoError(t, err)
	return img
}

func TestNewSingleton(t *testing.T) {
	img := constantImage(t, "class1_a.pgm", 100)
	c := New(img)

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, img.Histogram(), c.Histogram())
	assert.Equal(t, 100, c.AverageImage()[0][0])

	// The average image is an owned copy, not an alias of the source pixels.
	c.AverageImage()[0][0] = 0
	assert.Equal(t, 100, img.Pixels()[0][0])
}

func TestMergeConstantImages(t *testing.T) {
	// Two identical constant-128 images: the merged cumulative histogram has
	// 2x the pixel count at bin 128/4=32 and zero elsewhere.
	a := New(constantImage(t, "class1_a.pgm", 128))
	b := New(constantImage(t, "class1_b.pgm", 128))

	require.NoError(t, a.Merge(b))

	assert.Equal(t, 2, a.Size())
	pixelCount := pgm.RequiredWidth * pgm.RequiredHeight
	for bin, count := range a.Histogram() {
		if bin == 32 {
			assert.Equal(t, 2*pixelCount, count)
		} else {
			assert.Zero(t, count)
		}
	}
	assert.Equal(t, 128, a.AverageImage()[17][42])
	assert.InDelta(t, 1.0, a.NormalizedHistogram()[32], 1e-9)
}

func TestMergeHistogramAdditivity(t *testing.T) {
	a := New(constantImage(t, "img_a1", 10))
	a.AddImage(constantImage(t, "img_a2", 20))
	b := New(constantImage(t, "img_b1", 200))

	wantHist := make(histogram.Histogram, histogram.NumBins)
	for i := range wantHist {
		wantHist[i] = a.Histogram()[i] + b.Histogram()[i]
	}
	wantSize := a.Size() + b.Size()

	require.NoError(t, a.Merge(b))

	assert.Equal(t, wantSize, a.Size())
	assert.Equal(t, wantHist, a.Histogram())
}

func TestMergeAverageTruncation(t *testing.T) {
	// (100*1 + 33*1) / 2 = 66 with integer truncation.
	a := New(constantImage(t, "img_a", 100))
	b := New(constantImage(t, "img_b", 33))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, 66, a.AverageImage()[5][5])
}

func TestMergeWeightedAverage(t *testing.T) {
	// Cluster of 3 at avg 90 merged with cluster of 1 at avg 10:
	// (90*3 + 10*1) / 4 = 70.
	a := New(constantImage(t, "img_a1", 90))
	require.NoError(t, a.Merge(New(constantImage(t, "img_a2", 90))))
	require.NoError(t, a.Merge(New(constantImage(t, "img_a3", 90))))
	b := New(constantImage(t, "img_b1", 10))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, 70, a.AverageImage()[0][0])
}

func TestMergeConsumesOther(t *testing.T) {
	a := New(constantImage(t, "img_a", 1))
	b := New(constantImage(t, "img_b", 2))

	require.NoError(t, a.Merge(b))
	assert.ErrorIs(t, a.Merge(b), ErrConsumed)
}

func TestSubHistogramsCache(t *testing.T) {
	c := New(constantImage(t, "img_a", 80))

	subs, err := c.SubHistograms(4)
	require.NoError(t, err)
	require.Len(t, subs, 4)
	quarter := (pgm.RequiredWidth / 2) * (pgm.RequiredHeight / 2)
	assert.Equal(t, quarter, subs[0][80/histogram.BinWidth])

	// Same partition count hits the cache.
	again, err := c.SubHistograms(4)
	require.NoError(t, err)
	assert.Same(t, &subs[0][0], &again[0][0])

	// A different partition count recomputes.
	nine, err := c.SubHistograms(9)
	require.NoError(t, err)
	assert.Len(t, nine, 9)
}

func TestSubHistogramsInvalidatedByMerge(t *testing.T) {
	a := New(constantImage(t, "img_a", 40))
	_, err := a.SubHistograms(4)
	require.NoError(t, err)

	require.NoError(t, a.Merge(New(constantImage(t, "img_b", 120))))

	subs, err := a.SubHistograms(4)
	require.NoError(t, err)
	// Average is now 80; the cached partition at 40 would be stale.
	quarter := (pgm.RequiredWidth / 2) * (pgm.RequiredHeight / 2)
	assert.Equal(t, quarter, subs[0][80/histogram.BinWidth])
	assert.Zero(t, subs[0][40/histogram.BinWidth])
}

func TestStringSortsNames(t *testing.T) {
	c := New(constantImage(t, "img_b.pgm", 1))
	c.AddImage(constantImage(t, "img_a.pgm", 1))

	assert.Equal(t, "img_a.pgm img_b.pgm", c.String())
	assert.Equal(t, []string{"img_a.pgm", "img_b.pgm"}, c.MemberNames())
}
