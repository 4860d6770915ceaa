package compress

import (
	"fmt"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

// Compressor compresses block payloads.
//
// Memory management:
//   - Returned slice is owned by the caller; the identity codec returns the
//     input slice itself rather than a copy
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the inverse of Compressor.
//
// The input must have been produced by the same codec; corrupted or
// mismatched data returns an error wrapping errs.ErrDecompressionFailed.
// Implementations must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec retrieves the built-in Codec for a wire-format compression tag.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: tag %d", errs.ErrUnknownCodec, uint8(compressionType))
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionZstd: NewZstdCompressor(),
}
