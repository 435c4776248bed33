// Package similarity provides the interchangeable strategies that score how
// alike two clusters are. Every strategy exposes the single capability
// Score(a, b); higher means more similar. Strategies are selected by Kind
// through Provider, mirroring a distance-metric registry.
package similarity
