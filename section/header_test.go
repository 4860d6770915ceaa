package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader()
	h.Flags = format.FlagStreaming
	h.StreamID = 0x0102030405060708

	b := h.Bytes()
	require.Len(t, b, HeaderSize)
	require.Equal(t, []byte("OCT3"), b[0:4])
	require.Equal(t, []byte{0x00, 0x01}, b[4:6], "version is big-endian")
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, b[8:16])
	require.Equal(t, make([]byte, 16), b[16:32], "reserved bytes are zero")

	var parsed Header
	require.NoError(t, parsed.Parse(b))
	require.Equal(t, *h, parsed)
	require.True(t, parsed.IsStreaming())
	require.False(t, parsed.HasTOC())
}

func TestHeaderBadMagic(t *testing.T) {
	b := NewHeader().Bytes()
	b[0] = 'X'

	var h Header
	require.ErrorIs(t, h.Parse(b), errs.ErrBadMagic)
}

func TestHeaderVersionTooNew(t *testing.T) {
	b := NewHeader().Bytes()
	b[4] = 0x7F // version 0x7F01

	var h Header
	require.ErrorIs(t, h.Parse(b), errs.ErrUnsupportedVersion)
}

func TestHeaderTruncated(t *testing.T) {
	var h Header
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize-1)), errs.ErrTruncatedBlock)
}

func TestHeaderIgnoresReservedBytes(t *testing.T) {
	b := NewHeader().Bytes()
	for i := 16; i < 32; i++ {
		b[i] = 0xFF
	}

	var h Header
	require.NoError(t, h.Parse(b))
}
