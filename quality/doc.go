// Package quality scores a finished partition against ground-truth class
// labels. Purity is the fraction of images that sit in a cluster whose
// dominant class matches theirs: 1.0 means every cluster is class-pure.
package quality
