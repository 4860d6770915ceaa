package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

// testPayload builds a compressible byte pattern resembling an entries
// payload: repeated keys with small deltas.
func testPayload(n int) []byte {
	data := make([]byte, 0, n)
	for i := 0; len(data) < n; i++ {
		data = append(data, byte(i>>8), byte(i), 0, 0, byte(i%7), 'p', 'a', 'y')
	}

	return data[:n]
}

func TestCodecRoundTrip(t *testing.T) {
	payloads := [][]byte{
		testPayload(64),
		testPayload(4096),
		testPayload(256 * 1024),
		{0x42},
	}

	for _, compression := range []format.CompressionType{format.CompressionNone, format.CompressionLZ4, format.CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			codec, err := GetCodec(compression)
			require.NoError(t, err)

			for _, payload := range payloads {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(payload, restored))
			}
		})
	}
}

func TestCompressibleDataShrinks(t *testing.T) {
	payload := testPayload(64 * 1024)

	for _, compression := range []format.CompressionType{format.CompressionLZ4, format.CompressionZstd} {
		codec, err := GetCodec(compression)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "%s should compress a repetitive payload", compression)
	}
}

func TestGetCodecUnknownTag(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7E))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestNoOpAliasesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	in := []byte{1, 2, 3}

	out, err := codec.Compress(in)
	require.NoError(t, err)
	require.Equal(t, &in[0], &out[0], "no-op codec must not copy")
}

func TestZstdLevels(t *testing.T) {
	payload := testPayload(128 * 1024)

	fast := NewZstdCompressorLevel(1)
	best := NewZstdCompressorLevel(19)
	require.Equal(t, 1, fast.Level())
	require.Equal(t, 19, best.Level())

	fastOut, err := fast.Compress(payload)
	require.NoError(t, err)
	bestOut, err := best.Compress(payload)
	require.NoError(t, err)

	// Any level must round-trip through any decompressor instance.
	for _, compressed := range [][]byte{fastOut, bestOut} {
		restored, err := NewZstdCompressor().Decompress(compressed)
		require.NoError(t, err)
		require.True(t, bytes.Equal(payload, restored))
	}
}

func TestZstdLevelClamping(t *testing.T) {
	require.Equal(t, 1, NewZstdCompressorLevel(0).Level())
	require.Equal(t, 22, NewZstdCompressorLevel(99).Level())
}

func TestZstdRejectsGarbage(t *testing.T) {
	codec := NewZstdCompressor()

	_, err := codec.Decompress([]byte("definitely not a zstd frame"))
	require.ErrorIs(t, err, errs.ErrDecompressionFailed)
}

func TestLZ4RejectsGarbage(t *testing.T) {
	codec := NewLZ4Compressor()

	_, err := codec.Decompress([]byte("definitely not an lz4 frame"))
	require.ErrorIs(t, err, errs.ErrDecompressionFailed)
}
