package pgm

import (
	"io"
	"strconv"
	"strings"
)

const (
	magicNumber = "P2"

	// RequiredWidth and RequiredHeight are the only accepted image dimensions.
	RequiredWidth  = 128
	RequiredHeight = 128

	// MaxPixelValue is the only accepted maxval and the upper pixel bound.
	MaxPixelValue = 255
)

// Parse decodes a plain-text PGM image from r. The name is recorded on the
// image and used in error messages.
func Parse(name string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErrorf(name, "read failed: %v", err)
	}
	if len(data) == 0 {
		return nil, parseErrorf(name, "file cannot be empty")
	}

	tokens := tokenize(string(data))
	tr := &tokenReader{file: name, tokens: tokens}

	if err := parseHeader(tr); err != nil {
		return nil, err
	}

	pixels := make([][]int, RequiredHeight)
	for y := range pixels {
		pixels[y] = make([]int, RequiredWidth)
		for x := range pixels[y] {
			v, err := tr.nextInt("pixel data missing or non-integer")
			if err != nil {
				return nil, err
			}
			if v < 0 || v > MaxPixelValue {
				return nil, parseErrorf(name, "pixel out of range [0,%d]: found %d", MaxPixelValue, v)
			}
			pixels[y][x] = v
		}
	}
	if tr.hasNext() {
		return nil, parseErrorf(name, "too many pixel values: expected %d", RequiredWidth*RequiredHeight)
	}

	return &Image{name: name, pixels: pixels}, nil
}

func parseHeader(tr *tokenReader) error {
	magic, err := tr.next("missing magic number")
	if err != nil {
		return err
	}
	if magic != magicNumber {
		return parseErrorf(tr.file, "magic number must be %q: found %q", magicNumber, magic)
	}

	width, err := tr.nextInt("missing or non-numeric width")
	if err != nil {
		return err
	}
	height, err := tr.nextInt("missing or non-numeric height")
	if err != nil {
		return err
	}
	if width != RequiredWidth || height != RequiredHeight {
		return parseErrorf(tr.file, "dimensions must be %dx%d: found %dx%d",
			RequiredWidth, RequiredHeight, width, height)
	}

	maxval, err := tr.nextInt("missing or non-numeric maxval")
	if err != nil {
		return err
	}
	if maxval != MaxPixelValue {
		return parseErrorf(tr.file, "maximum pixel value must be %d: found %d", MaxPixelValue, maxval)
	}
	return nil
}

// tokenize splits the raw file into whitespace-separated tokens, dropping
// comment lines ('#' to end of line).
func tokenize(data string) []string {
	var tokens []string
	for _, line := range strings.Split(data, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens
}

type tokenReader struct {
	file   string
	tokens []string
	pos    int
}

func (tr *tokenReader) hasNext() bool { return tr.pos < len(tr.tokens) }

func (tr *tokenReader) next(missing string) (string, error) {
	if !tr.hasNext() {
		return "", parseErrorf(tr.file, "%s", missing)
	}
	tok := tr.tokens[tr.pos]
	tr.pos++
	return tok, nil
}

func (tr *tokenReader) nextInt(missing string) (int, error) {
	tok, err := tr.next(missing)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, parseErrorf(tr.file, "%s: found %q", missing, tok)
	}
	return v, nil
}
