package ident

import (
	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/hilbert"
	"github.com/funkite/octaindex3d/lattice"
)

// Hilbert64 is the 64-bit Hilbert-ordered key for locality-heavy scans.
//
// Layout mirrors Index64 (5-bit LOD in bits 63-59, a 57-bit code of signed
// 19-bit coordinates biased by 2^18 in the low payload bits) but the payload
// is a 3D Hilbert code instead of a Morton code. Consecutive raw codes
// decode to coordinates one lattice step apart, so range scans over sorted
// Hilbert64 keys touch spatially contiguous cells.
type Hilbert64 uint64

const (
	// Hilbert64MaxLod is the largest LOD the 5-bit field can hold.
	Hilbert64MaxLod = uint8(31)
	// Hilbert64CoordMin and Hilbert64CoordMax bound each signed coordinate.
	Hilbert64CoordMin = int32(-1 << 18)
	Hilbert64CoordMax = int32(1<<18 - 1)

	hilbert64CoordBias = int32(1 << 18)
	hilbert64CoordBits = 19
	hilbert64LodShift  = 59
	hilbert64CodeMask  = uint64(1)<<(3*hilbert64CoordBits) - 1
)

// EncodeHilbert64 packs a lattice point and LOD into a Hilbert64.
func EncodeHilbert64(x, y, z int32, lod uint8) (Hilbert64, error) {
	if lod > Hilbert64MaxLod {
		return 0, &errs.RangeError{Field: "lod", Value: int64(lod), Min: 0, Max: int64(Hilbert64MaxLod)}
	}
	if err := checkCoords(x, y, z, Hilbert64CoordMin, Hilbert64CoordMax); err != nil {
		return 0, err
	}
	if err := lattice.Validate(x, y, z); err != nil {
		return 0, err
	}

	return packHilbert64(x, y, z, lod), nil
}

// Hilbert64FromCode rebuilds an identifier from a raw curve code, as used by
// scan cursors stepping through code space. Parity is not validated; the
// curve visits both parities and cursors filter on decode.
func Hilbert64FromCode(code uint64, lod uint8) (Hilbert64, error) {
	if lod > Hilbert64MaxLod {
		return 0, &errs.RangeError{Field: "lod", Value: int64(lod), Min: 0, Max: int64(Hilbert64MaxLod)}
	}
	if code > hilbert64CodeMask {
		return 0, &errs.RangeError{Field: "code", Value: int64(code), Min: 0, Max: int64(hilbert64CodeMask)}
	}

	return Hilbert64(uint64(lod)<<hilbert64LodShift | code), nil
}

func packHilbert64(x, y, z int32, lod uint8) Hilbert64 {
	u := uint32(x + hilbert64CoordBias)
	v := uint32(y + hilbert64CoordBias)
	w := uint32(z + hilbert64CoordBias)

	code, _ := hilbert.Encode(u, v, w, hilbert64CoordBits)

	return Hilbert64(uint64(lod)<<hilbert64LodShift | code)
}

// Decode recovers the coordinate triple and LOD.
func (h Hilbert64) Decode() (x, y, z int32, lod uint8) {
	u, v, w, _ := hilbert.Decode(h.Code(), hilbert64CoordBits)

	return int32(u) - hilbert64CoordBias, int32(v) - hilbert64CoordBias, int32(w) - hilbert64CoordBias, h.lod8()
}

// Code returns the raw Hilbert code payload.
func (h Hilbert64) Code() uint64 { return uint64(h) & hilbert64CodeMask }

// Lod returns the level-of-detail field.
func (h Hilbert64) Lod() uint32 { return uint32(h.lod8()) }

func (h Hilbert64) lod8() uint8 { return uint8(uint64(h) >> hilbert64LodShift) }

// Kind reports format.KindHilbert64.
func (h Hilbert64) Kind() format.IdentifierKind { return format.KindHilbert64 }

// Parent returns the identifier of the parent cell at LOD-1.
// Fails with a LodError at LOD 0.
func (h Hilbert64) Parent() (Hilbert64, error) {
	lod := h.lod8()
	if lod == 0 {
		return 0, &errs.LodError{Op: "parent", Lod: 0, Max: uint32(Hilbert64MaxLod)}
	}

	x, y, z, _ := h.Decode()
	p := lattice.Parent(lattice.Point{X: x, Y: y, Z: z})

	return packHilbert64(p.X, p.Y, p.Z, lod-1), nil
}

// Children returns the 8 child identifiers at LOD+1 in lattice slot order.
func (h Hilbert64) Children() ([lattice.ChildrenPerNode]Slot[Hilbert64], error) {
	var out [lattice.ChildrenPerNode]Slot[Hilbert64]

	lod := h.lod8()
	if lod == Hilbert64MaxLod {
		return out, &errs.LodError{Op: "children", Lod: uint32(lod), Max: uint32(Hilbert64MaxLod)}
	}

	x, y, z, _ := h.Decode()
	for s, c := range lattice.Children(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(c.X, c.Y, c.Z, Hilbert64CoordMin, Hilbert64CoordMax); err != nil {
			out[s] = Slot[Hilbert64]{Err: err}
			continue
		}
		out[s] = Slot[Hilbert64]{ID: packHilbert64(c.X, c.Y, c.Z, lod+1)}
	}

	return out, nil
}

// Neighbors14 returns the same-LOD BCC stencil neighbors in slot order.
func (h Hilbert64) Neighbors14() [lattice.NeighborCount]Slot[Hilbert64] {
	var out [lattice.NeighborCount]Slot[Hilbert64]

	x, y, z, lod := h.Decode()
	for s, n := range lattice.Neighbors(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(n.X, n.Y, n.Z, Hilbert64CoordMin, Hilbert64CoordMax); err != nil {
			out[s] = Slot[Hilbert64]{Err: err}
			continue
		}
		out[s] = Slot[Hilbert64]{ID: packHilbert64(n.X, n.Y, n.Z, lod)}
	}

	return out
}

// Bytes returns the 8-byte big-endian serialization.
func (h Hilbert64) Bytes() []byte {
	return endian.GetBigEndianEngine().AppendUint64(nil, uint64(h))
}

// Hilbert64FromBytes parses an 8-byte big-endian serialization.
func Hilbert64FromBytes(b []byte) (Hilbert64, error) {
	if len(b) != 8 {
		return 0, &errs.RangeError{Field: "length", Value: int64(len(b)), Min: 8, Max: 8}
	}

	return Hilbert64(endian.GetBigEndianEngine().Uint64(b)), nil
}

// String returns the checksummed textual form (oi1-hlb1...).
func (h Hilbert64) String() string { return formatBytes(hrpHilbert64, h.Bytes()) }
