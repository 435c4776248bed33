package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/pgm"
)

// MinImages is the minimum number of images a usable list must resolve.
const MinImages = 2

// ErrTooFewImages is returned when a list resolves fewer than MinImages
// images.
var ErrTooFewImages = errors.New("too few images")

// Loader resolves list files against a blob store.
type Loader struct {
	store blobstore.BlobStore
}

// NewLoader creates a Loader reading blobs from store.
func NewLoader(store blobstore.BlobStore) *Loader {
	return &Loader{store: store}
}

// Load reads the list blob at listName and decodes every named image.
// Images keep their list order. Fewer than MinImages resolved images is an
// error; any unreadable or malformed image aborts the load.
func (l *Loader) Load(ctx context.Context, listName string) ([]*pgm.Image, error) {
	list, err := l.store.Open(ctx, listName)
	if err != nil {
		return nil, fmt.Errorf("corpus: open list %q: %w", listName, err)
	}
	defer list.Close()

	var images []*pgm.Image
	scanner := bufio.NewScanner(list)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		img, err := l.loadImage(ctx, name)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read list %q: %w", listName, err)
	}

	if len(images) < MinImages {
		return nil, fmt.Errorf("%w: at least %d images expected in %q, got %d",
			ErrTooFewImages, MinImages, listName, len(images))
	}
	return images, nil
}

func (l *Loader) loadImage(ctx context.Context, name string) (*pgm.Image, error) {
	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("corpus: open image %q: %w", name, err)
	}
	defer blob.Close()

	return pgm.Parse(name, blob)
}
