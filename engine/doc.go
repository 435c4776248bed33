// Package engine drives the greedy hierarchical merge: starting from one
// singleton cluster per image, each round scans all unordered cluster pairs
// in a fixed order, merges the most similar pair, and repeats until the
// target cluster count is reached.
//
// The scan is O(n^2) similarity evaluations per round and O(n - target)
// rounds in total, which is acceptable for the intended workloads of tens to
// low hundreds of images. Rows of the scan can optionally be scored in
// parallel; the winning pair is always chosen by a deterministic sequential
// pass, so the first-encountered tie-break is preserved.
package engine
