// Package clustergo groups fixed-size grayscale images into a target number
// of clusters by greedy agglomerative merging: every image starts as its own
// cluster, and the most similar pair (under a pluggable similarity strategy)
// is merged until the target count is reached.
//
// Basic usage:
//
//	images, err := corpus.NewLoader(blobstore.NewLocalStore(".")).Load(ctx, "test_files.txt")
//	if err != nil { ... }
//
//	c, err := clustergo.Cluster(4).Agglomerative().Build(images)
//	if err != nil { ... }
//
//	result, err := c.Run(ctx)
//	if err != nil { ... }
//	fmt.Println(result)
//
// Strategies: whole-histogram intersection (Agglomerative), spatial
// 4-cell/9-cell intersection (Quarter/Ninth), inverse squared pixel
// difference of average images (InverseSquareDiff), and an ensemble of
// per-class perceptron score gaps (PerceptronEnsemble, which needs labeled
// training images).
package clustergo
