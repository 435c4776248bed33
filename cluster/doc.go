// Package cluster implements the cluster aggregate: a non-empty, growing set
// of images together with the derived state the similarity strategies read —
// a cumulative histogram, an incrementally maintained average image, the
// normalized histogram, and a lazily cached spatial partition of the average
// image.
//
// Clusters are not safe for concurrent mutation. The engine owns the active
// set and is the only writer; strategies only read.
package cluster
