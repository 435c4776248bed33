// Package pgm decodes plain-text PGM (P2) grayscale images and exposes them
// as immutable pixel grids with cached intensity histograms.
//
// The decoder enforces the corpus contract: every image must be 128x128 with
// a maximum pixel value of 255. Any deviation is a *ParseError naming the
// offending file and the expected versus found value.
package pgm
