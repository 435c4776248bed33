package clustergo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/clustergo/codec"
)

const (
	// snapshotMagic identifies clustergo snapshot files (ASCII: "CGS1").
	snapshotMagic = uint32(0x43475331)
	// snapshotVersion is the current snapshot format version.
	snapshotVersion = uint32(1)
)

var (
	// ErrInvalidSnapshot is returned when a snapshot file is malformed.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnknownCodec is returned when a snapshot was written with a codec
	// this build does not know.
	ErrUnknownCodec = errors.New("unknown snapshot codec")
)

// Compression selects the snapshot payload compression.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses the payload with zstd.
	CompressionZstd
	// CompressionLZ4 compresses the payload with lz4.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression resolves a compression name as used on the command line.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unsupported compression: %q", s)
	}
}

// Snapshot is the serializable outcome of a clustering run.
type Snapshot struct {
	Strategy  string     `json:"strategy"`
	Rounds    int        `json:"rounds"`
	Purity    float64    `json:"purity,omitempty"`
	Clusters  [][]string `json:"clusters"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewSnapshot captures a run result. Purity is recorded when the member
// image names carry valid class labels, and left zero otherwise.
func NewSnapshot(r *Result) *Snapshot {
	s := &Snapshot{
		Strategy:  r.Strategy().String(),
		Rounds:    r.Rounds(),
		Clusters:  r.Groups(),
		CreatedAt: time.Now().UTC(),
	}
	if p, err := r.Purity(); err == nil {
		s.Purity = p
	}
	return s
}

type snapshotOptions struct {
	zstdLevel zstd.EncoderLevel
}

// SnapshotOption configures WriteSnapshot.
type SnapshotOption func(*snapshotOptions)

// WithZstdLevel sets the zstd compression level (1-22, higher compresses
// more). Ignored for other compressions.
func WithZstdLevel(level int) SnapshotOption {
	return func(o *snapshotOptions) {
		o.zstdLevel = zstd.EncoderLevelFromZstd(level)
	}
}

// snapshotHeader is the fixed-size part of the file header. The codec name
// follows as a length-prefixed string, then the payload.
type snapshotHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	CodecLen    uint8
	Padding     [2]byte
	PayloadLen  uint64
}

// WriteSnapshot writes the snapshot to w. The header records the codec name
// and compression so ReadSnapshot needs no out-of-band information. If c is
// nil, codec.Default is used.
func WriteSnapshot(w io.Writer, s *Snapshot, c codec.Codec, compression Compression, optFns ...SnapshotOption) error {
	if c == nil {
		c = codec.Default
	}
	if len(c.Name()) > 255 {
		return fmt.Errorf("codec name too long: %q", c.Name())
	}

	opts := snapshotOptions{zstdLevel: zstd.SpeedDefault}
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := c.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	payload, err = compress(payload, compression, opts.zstdLevel)
	if err != nil {
		return err
	}

	header := snapshotHeader{
		Magic:       snapshotMagic,
		Version:     snapshotVersion,
		Compression: uint8(compression),
		CodecLen:    uint8(len(c.Name())),
		PayloadLen:  uint64(len(payload)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := io.WriteString(w, c.Name()); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write snapshot payload: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrInvalidSnapshot, header.Magic)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, header.Version)
	}

	name := make([]byte, header.CodecLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	payload, err := decompress(payload, Compression(header.Compression))
	if err != nil {
		return nil, err
	}

	var s Snapshot
	if err := c.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// SaveSnapshotFile writes the snapshot to a file, creating or truncating it.
func SaveSnapshotFile(filename string, s *Snapshot, c codec.Codec, compression Compression, optFns ...SnapshotOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := WriteSnapshot(f, s, c, compression, optFns...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadSnapshotFile reads a snapshot from a file.
func LoadSnapshotFile(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

func compress(payload []byte, compression Compression, zstdLevel zstd.EncoderLevel) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %v", compression)
	}
}

func decompress(payload []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression failed: %w", err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compression %v", ErrInvalidSnapshot, compression)
	}
}
