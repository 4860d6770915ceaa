package ident

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/frame"
)

func TestGalactic128EncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frameID uint8
		lod     uint32
		x, y, z int32
	}{
		{"unscoped origin", frame.None, 0, 0, 0, 0},
		{"ecef basic", 0, 12, 1000, 1000, 0},
		{"negative", 3, 100, -1000, -1000, 0},
		{"deep lod", 7, 1<<24 - 1, 2, 0, 0},
		{"wide coords", 1, 5, Galactic128CoordMin, Galactic128CoordMin, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := EncodeGalactic128(tt.frameID, tt.lod, tt.x, tt.y, tt.z)
			require.NoError(t, err)

			require.Equal(t, Galactic128Version, g.Version())
			require.Equal(t, tt.frameID, g.FrameID())
			require.Equal(t, tt.lod, g.Lod())
			require.False(t, g.IsHilbert())
			require.Equal(t, format.KindGalactic128, g.Kind())

			x, y, z, lod := g.Decode()
			require.Equal(t, tt.x, x)
			require.Equal(t, tt.y, y)
			require.Equal(t, tt.z, z)
			require.Equal(t, tt.lod, lod)
		})
	}
}

func TestGalactic128HilbertVariant(t *testing.T) {
	g, err := EncodeGalactic128Hilbert(2, 9, 100, 100, 0)
	require.NoError(t, err)
	require.True(t, g.IsHilbert())

	x, y, z, lod := g.Decode()
	require.Equal(t, int32(100), x)
	require.Equal(t, int32(100), y)
	require.Equal(t, int32(0), z)
	require.Equal(t, uint32(9), lod)

	m, err := EncodeGalactic128(2, 9, 100, 100, 0)
	require.NoError(t, err)
	require.NotEqual(t, m.Lo, g.Lo, "curve selection must change the code")
}

func TestGalactic128Validation(t *testing.T) {
	_, err := EncodeGalactic128(0, 1<<24, 0, 0, 0)
	require.ErrorIs(t, err, errs.ErrRange)

	_, err = EncodeGalactic128(0, 0, Galactic128CoordMax+1, 1, 0)
	require.ErrorIs(t, err, errs.ErrRange)

	_, err = EncodeGalactic128(0, 0, 1, 1, 1)
	require.ErrorIs(t, err, errs.ErrParity)

	_, err = NewGalactic128(0, 1<<24, 0)
	require.ErrorIs(t, err, errs.ErrRange)
}

func TestGalactic128BigEndianBytes(t *testing.T) {
	g, err := EncodeGalactic128(0xAB, 0x123456, 2, 0, 0)
	require.NoError(t, err)

	b := g.Bytes()
	require.Len(t, b, 16)

	// Version, frame, then the 24-bit LOD at the bottom of the high word.
	require.Equal(t, byte(0x01), b[0])
	require.Equal(t, byte(0xAB), b[1])
	require.Equal(t, byte(0x12), b[5])
	require.Equal(t, byte(0x34), b[6])
	require.Equal(t, byte(0x56), b[7])

	back, err := Galactic128FromBytes(b)
	require.NoError(t, err)
	require.Equal(t, g, back)
}

func TestGalactic128FromBytesRejectsBadVersion(t *testing.T) {
	g, err := EncodeGalactic128(1, 1, 2, 0, 0)
	require.NoError(t, err)

	b := g.Bytes()
	b[0] = 0x7F

	_, err = Galactic128FromBytes(b)
	require.ErrorIs(t, err, errs.ErrRange)

	_, err = Galactic128FromBytes(b[:15])
	require.ErrorIs(t, err, errs.ErrRange)
}

func TestGalactic128FrameLookup(t *testing.T) {
	// Identifiers may exist before their frame is registered; CheckFrame is
	// the deferred strict validation.
	g, err := EncodeGalactic128(200, 4, 2, 0, 0)
	require.NoError(t, err)

	_, err = g.CheckFrame()
	require.ErrorIs(t, err, errs.ErrFrameNotFound)

	desc := frame.Descriptor{Name: "test-orbit", CRS: "WGS-84", Scale: 0.5}
	require.NoError(t, frame.Register(200, desc))

	got, err := g.CheckFrame()
	require.NoError(t, err)
	require.Equal(t, desc, got)
}

func TestGalactic128Hierarchy(t *testing.T) {
	g, err := EncodeGalactic128Hilbert(9, 10, 100, 100, 0)
	require.NoError(t, err)

	parent, err := g.Parent()
	require.NoError(t, err)
	require.Equal(t, uint8(9), parent.FrameID())
	require.True(t, parent.IsHilbert(), "curve selection survives traversal")

	px, py, pz, plod := parent.Decode()
	require.Equal(t, int32(50), px)
	require.Equal(t, int32(50), py)
	require.Equal(t, int32(0), pz)
	require.Equal(t, uint32(9), plod)

	children, err := g.Children()
	require.NoError(t, err)
	for _, slot := range children {
		require.True(t, slot.Ok())

		back, err := slot.ID.Parent()
		require.NoError(t, err)
		require.Equal(t, g, back)
	}

	for _, slot := range g.Neighbors14() {
		require.True(t, slot.Ok())
		require.Equal(t, uint32(10), slot.ID.Lod())
	}
}
