package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/time/rate"

	"github.com/hupe1980/clustergo/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
	limiter    *rate.Limiter
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix prepends rootPrefix to all keys (e.g. "corpus/").
func WithPrefix(rootPrefix string) Option {
	return func(s *Store) {
		s.prefix = rootPrefix
	}
}

// WithFetchLimit caps blob fetches at n per second with the given burst.
// n <= 0 disables limiting.
func WithFetchLimit(n float64, burst int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(n), burst)
		}
	}
}

// NewStore creates a new S3 blob store over an existing client.
func NewStore(client *s3.Client, bucket string, optFns ...Option) *Store {
	s := &Store{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewStoreFromConfig creates a Store using the default AWS configuration
// chain (environment, shared config, instance role).
func NewStoreFromConfig(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(s3.NewFromConfig(cfg), bucket, optFns...), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open downloads the blob into memory and returns a reader over it. Corpus
// images are small, so buffering whole objects keeps the parse path simple.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	buf := manager.NewWriteAtBuffer(nil)
	n, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Blob{Reader: bytes.NewReader(buf.Bytes()), size: n}, nil
}

type s3Blob struct {
	*bytes.Reader
	size int64
}

func (b *s3Blob) Size() int64 { return b.size }

func (b *s3Blob) Close() error { return nil }

var _ io.ReadCloser = (*s3Blob)(nil)
