package compress

// ZstdCompressor backs the CompressionZstd wire tag.
//
// Zstd trades compression speed for ratio, making it the codec of choice for
// archival containers and bandwidth-limited transfer; LZ4 is the faster
// choice for hot write paths.
//
// Two implementations exist behind build tags: the default pure-Go
// klauspost/compress encoder, and a cgo binding (gozstd) selected with the
// "gozstd" tag for hosts where libzstd outperforms the Go port.
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec at the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: 3}
}

// NewZstdCompressorLevel creates a Zstd codec at a specific level (1-22).
// Levels outside the range are clamped.
func NewZstdCompressorLevel(level int) ZstdCompressor {
	if level < 1 {
		level = 1
	}
	if level > 22 {
		level = 22
	}

	return ZstdCompressor{level: level}
}

// Level returns the configured compression level.
func (c ZstdCompressor) Level() int {
	if c.level == 0 {
		return 3
	}

	return c.level
}
