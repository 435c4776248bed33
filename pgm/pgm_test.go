package pgm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/histogram"
)

// renderPGM builds a valid P2 body with every pixel set to value.
func renderPGM(value int) string {
	var sb strings.Builder
	sb.WriteString("P2\n# test image\n128 128\n255\n")
	for i := 0; i < RequiredWidth*RequiredHeight; i++ {
		fmt.Fprintf(&sb, "%d ", value)
		if i%32 == 31 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	img, err := Parse("class1_a.pgm", strings.NewReader(renderPGM(128)))
	require.NoError(t, err)

	assert.Equal(t, "class1_a.pgm", img.Name())
	assert.Equal(t, RequiredWidth, img.Width())
	assert.Equal(t, RequiredHeight, img.Height())
	assert.Equal(t, 128, img.Pixels()[64][64])

	h := img.Histogram()
	assert.Equal(t, RequiredWidth*RequiredHeight, h[128/histogram.BinWidth])
	assert.Equal(t, RequiredWidth*RequiredHeight, h.Sum())

	norm := img.NormalizedHistogram()
	assert.InDelta(t, 1.0, norm[32], 1e-9)
}

func TestParseErrors(t *testing.T) {
	valid := renderPGM(0)

	tests := []struct {
		name   string
		input  string
		detail string
	}{
		{"Empty", "", "empty"},
		{"WrongMagic", strings.Replace(valid, "P2", "P5", 1), "magic number"},
		{"WrongDimensions", strings.Replace(valid, "128 128", "64 64", 1), "dimensions"},
		{"WrongMaxval", strings.Replace(valid, "\n255\n", "\n127\n", 1), "maximum pixel value"},
		{"NonNumericHeader", strings.Replace(valid, "128 128", "abc 128", 1), "width"},
		{"MissingTokens", "P2\n128 128\n", "maxval"},
		{"PixelOutOfRange", strings.Replace(valid, "0 0 0", "0 300 0", 1), "out of range"},
		{"NonIntegerPixel", strings.Replace(valid, "0 0 0", "0 x 0", 1), "pixel data"},
		{"TooFewPixels", "P2\n128 128\n255\n0 0 0\n", "pixel data"},
		{"TooManyPixels", valid + " 7", "too many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.pgm", strings.NewReader(tt.input))
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "bad.pgm", pe.File)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestParseSkipsComments(t *testing.T) {
	body := strings.Replace(renderPGM(10), "# test image\n", "# one\n# two\n", 1)
	_, err := Parse("ok.pgm", strings.NewReader(body))
	assert.NoError(t, err)
}

func TestClassLabel(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    int
		wantErr bool
	}{
		{"Digit", "class7_x.pgm", 7, false},
		{"Zero", "train0.pgm", 0, false},
		{"NonDigit", "classX.pgm", 0, true},
		{"TooShort", "a.pgm", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Parse(tt.file, strings.NewReader(renderPGM(1)))
			require.NoError(t, err)

			label, err := img.ClassLabel()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClassLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestNewImageValidation(t *testing.T) {
	pixels := make([][]int, RequiredHeight)
	for y := range pixels {
		pixels[y] = make([]int, RequiredWidth)
	}
	_, err := NewImage("class0_ok", pixels)
	require.NoError(t, err)

	_, err = NewImage("short", pixels[:10])
	assert.Error(t, err)

	pixels[3][7] = 999
	_, err = NewImage("range", pixels)
	assert.Error(t, err)
}
