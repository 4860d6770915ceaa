package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/internal/pool"
)

// lz4WriterPool pools lz4.Writer instances; the writer keeps internal
// compression state that benefits from reuse.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(io.Discard)
	},
}

// LZ4Compressor backs the CompressionLZ4 wire tag using the LZ4 frame
// format. Frames are self-describing, so decompression needs no external
// length hint beyond the block header's sanity check.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 frame compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data into a single LZ4 frame.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	out.Grow(lz4.CompressBlockBound(len(data)))

	lw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(lw)

	lw.Reset(&out)
	if _, err := lw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailed, err)
	}
	if err := lw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressionFailed, err)
	}

	return out.Bytes(), nil
}

// Decompress decompresses a single LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lr := lz4.NewReader(bytes.NewReader(data))

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	if _, err := io.Copy(buf, lr); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressionFailed, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
