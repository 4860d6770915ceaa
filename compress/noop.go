package compress

// NoOpCompressor is the identity codec backing the CompressionNone wire tag.
//
// It returns its input unchanged and uncopied, so uncompressed blocks cost
// nothing beyond the CRC pass. Callers must not modify the input data after
// handing it over if they plan to use the returned slice.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data directly without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
