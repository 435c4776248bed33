package clustergo_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/pgm"
)

// pgmData renders a plain-text PGM with every pixel set to value.
func pgmData(value int) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "P2\n%d %d\n%d\n", pgm.RequiredWidth, pgm.RequiredHeight, pgm.MaxPixelValue)
	for i := 0; i < pgm.RequiredWidth*pgm.RequiredHeight; i++ {
		fmt.Fprintf(&sb, "%d\n", value)
	}
	return []byte(sb.String())
}

func TestRun_Purity(t *testing.T) {
	images := twoFamilies(t)

	c, err := clustergo.Cluster(2).Build(images)
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	purity, err := result.Purity()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, purity, 1e-12)
}

func TestRun_HaltsWithoutMergeablePair(t *testing.T) {
	// Constant images with disjoint gray values never intersect, so no
	// merge is possible and the run stops above the target.
	images := []*pgm.Image{
		bandImage(t, "train1_a.pgm", 0, pgm.RequiredHeight, 0),
		bandImage(t, "train2_a.pgm", 200, pgm.RequiredHeight, 200),
	}

	c, err := clustergo.Cluster(1).Build(images)
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Rounds())
	assert.Len(t, result.Clusters(), 2)
}

func TestRun_Metrics(t *testing.T) {
	images := twoFamilies(t)

	var metrics clustergo.BasicMetricsCollector
	c, err := clustergo.Cluster(2).Metrics(&metrics).Build(images)
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.RoundCount)
	assert.Equal(t, int64(0), stats.RoundErrors)
	// 4 clusters then 3: C(4,2) + C(3,2) pairs scanned.
	assert.Equal(t, int64(9), stats.PairsScanned)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(0), stats.RunErrors)
}

func TestRun_ContextCancelled(t *testing.T) {
	images := twoFamilies(t)

	c, err := clustergo.Cluster(2).Build(images)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_String(t *testing.T) {
	images := twoFamilies(t)

	c, err := clustergo.Cluster(2).Build(images)
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(result.String(), "\n")
	require.Len(t, lines, 2)
	assert.ElementsMatch(t, []string{
		"train1_a.pgm train1_b.pgm",
		"train2_a.pgm train2_b.pgm",
	}, lines)
}

func TestLoadImages(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("list.txt", []byte("a.pgm\nb.pgm\n"))
	store.Put("a.pgm", pgmData(10))
	store.Put("b.pgm", pgmData(250))

	images, err := clustergo.LoadImages(context.Background(), store, "list.txt")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "a.pgm", images[0].Name())
	assert.Equal(t, "b.pgm", images[1].Name())
}

func TestLoadImages_ParseError(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("list.txt", []byte("a.pgm\nbad.pgm\n"))
	store.Put("a.pgm", pgmData(10))
	store.Put("bad.pgm", []byte("P5\n1 1\n255\n0\n"))

	_, err := clustergo.LoadImages(context.Background(), store, "list.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, clustergo.ErrParse)

	var pe *pgm.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.pgm", pe.File)
}

func TestClosestPairs(t *testing.T) {
	images := twoFamilies(t)

	pairs := clustergo.ClosestPairs(images)
	require.Len(t, pairs, len(images))
	for _, p := range pairs {
		// Closest neighbors stay within the visual family.
		assert.Equal(t, p.Image[:6], p.Closest[:6])
		assert.Greater(t, p.Score, 0.0)
	}
}
