// Command clustergo clusters a list of PGM images into k groups.
//
// Usage:
//
//	clustergo [flags] <train list>.txt <test list>.txt <k>
//
// The train list supplies labeled images for the perceptron ensemble; the
// test list supplies the images to cluster. Both lists name one PGM file per
// line, resolved relative to -root. The result is printed one cluster per
// line, member names sorted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/pgm"
	"github.com/hupe1980/clustergo/similarity"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	strategy := flag.String("strategy", "perceptron", "similarity strategy (agglomerative, quarter, ninth, invsquarediff, perceptron)")
	parallelism := flag.Int("parallelism", 1, "goroutines used to score cluster pairs per round")
	showPurity := flag.Bool("purity", false, "print clustering purity derived from class labels")
	snapshotPath := flag.String("snapshot", "", "write the run result to this snapshot file")
	compression := flag.String("compression", "zstd", "snapshot compression (none, zstd, lz4)")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	root := flag.String("root", ".", "directory the image list entries are resolved against")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <train list>.txt <test list>.txt <k>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		return fmt.Errorf("expected three arguments: <train list> <test list> <k>")
	}
	trainList, testList := flag.Arg(0), flag.Arg(1)
	for _, name := range []string{trainList, testList} {
		if !strings.HasSuffix(name, ".txt") {
			return fmt.Errorf("image list must be a .txt file: %q", name)
		}
	}
	k, err := strconv.Atoi(flag.Arg(2))
	if err != nil {
		return fmt.Errorf("cluster count must be an integer: %q", flag.Arg(2))
	}

	kind, err := similarity.ParseKind(*strategy)
	if err != nil {
		return err
	}
	comp, err := clustergo.ParseCompression(*compression)
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	logger := clustergo.NewTextLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := blobstore.NewLocalStore(*root)
	metrics := &clustergo.BasicMetricsCollector{}

	training, err := loadList(ctx, store, trainList, logger, metrics)
	if err != nil {
		return err
	}
	images, err := loadList(ctx, store, testList, logger, metrics)
	if err != nil {
		return err
	}

	c, err := clustergo.Cluster(k).
		Strategy(kind, training).
		Parallelism(*parallelism).
		Logger(logger).
		Metrics(metrics).
		Build(images)
	if err != nil {
		return err
	}

	result, err := c.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(result)

	if *showPurity {
		purity, err := result.Purity()
		if err != nil {
			return err
		}
		fmt.Printf("purity: %.4f\n", purity)
	}

	if *snapshotPath != "" {
		snap := clustergo.NewSnapshot(result)
		err := clustergo.SaveSnapshotFile(*snapshotPath, snap, nil, comp)
		logger.LogSnapshot(ctx, *snapshotPath, err)
		if err != nil {
			return err
		}
	}

	return nil
}

func loadList(ctx context.Context, store blobstore.BlobStore, listName string, logger *clustergo.Logger, metrics clustergo.MetricsCollector) ([]*pgm.Image, error) {
	start := time.Now()
	images, err := clustergo.LoadImages(ctx, store, listName)
	metrics.RecordLoad(len(images), time.Since(start), err)
	logger.LogLoad(ctx, listName, len(images), err)
	return images, err
}
