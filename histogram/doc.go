// Package histogram provides fixed-bin intensity histograms over grayscale
// pixel grids, together with the normalization, intersection and dot-product
// operations the clustering strategies are built on.
//
// The bin layout is global: 64 bins of 4 consecutive intensity levels each,
// covering the full 0-255 range.
package histogram
