package container

import (
	"time"

	"github.com/funkite/octaindex3d/compress"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/internal/options"
)

// DefaultBlockSize is the uncompressed entries-payload threshold at which a
// writer emits a block.
const DefaultBlockSize = 64 * 1024

// Option configures a writer.
type Option = options.Option[*writerConfig]

type writerConfig struct {
	blockSize     int
	compression   format.CompressionType
	codec         compress.Codec
	flushInterval time.Duration
}

func newWriterConfig() *writerConfig {
	return &writerConfig{
		blockSize:   DefaultBlockSize,
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
	}
}

// WithBlockSize sets the uncompressed payload threshold that closes a block.
func WithBlockSize(size int) Option {
	return options.New(func(cfg *writerConfig) error {
		if size <= 0 {
			return &errs.RangeError{Field: "block size", Value: int64(size), Min: 1, Max: 1 << 30}
		}
		cfg.blockSize = size

		return nil
	})
}

// WithCompression selects the per-block codec by wire tag.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *writerConfig) error {
		codec, err := compress.GetCodec(c)
		if err != nil {
			return err
		}
		cfg.compression = c
		cfg.codec = codec

		return nil
	})
}

// WithZstdLevel selects Zstandard compression at a specific level (1-22).
func WithZstdLevel(level int) Option {
	return options.NoError(func(cfg *writerConfig) {
		cfg.compression = format.CompressionZstd
		cfg.codec = compress.NewZstdCompressorLevel(level)
	})
}

// WithFlushInterval makes a streaming writer emit a block whenever the given
// duration has elapsed since the previous flush, in addition to the size
// threshold. Checked on Append; a quiet stream still requires an explicit
// Flush.
func WithFlushInterval(d time.Duration) Option {
	return options.NoError(func(cfg *writerConfig) {
		cfg.flushInterval = d
	})
}
