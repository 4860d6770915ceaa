package ident

import (
	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/lattice"
	"github.com/funkite/octaindex3d/morton"
)

// Index64 is the 64-bit Morton-ordered spatial key.
//
// Layout:
//
//	bits 63-59  LOD (0-31)
//	bits 58-57  zero
//	bits 56-0   Morton code of the biased coordinate triple
//
// Coordinates are signed 19-bit values biased by 2^18 before interleaving,
// the widest uniform per-axis range whose full Morton code fits the 59-bit
// payload. The code is stored whole, so every integer point of the cubic
// range is representable, including the off-lattice body-neighbor stencil
// results. Sorting raw Index64 values approximates Morton order: spatially
// close cells cluster in key order.
type Index64 uint64

const (
	// Index64MaxLod is the largest LOD the 5-bit field can hold.
	Index64MaxLod = uint8(31)
	// Index64CoordMin and Index64CoordMax bound each signed coordinate.
	Index64CoordMin = int32(-1 << 18)
	Index64CoordMax = int32(1<<18 - 1)

	index64CoordBias   = int32(1 << 18)
	index64LodShift    = 59
	index64PayloadMask = uint64(1)<<index64LodShift - 1
)

// EncodeIndex64 packs a lattice point and LOD into an Index64.
//
// Validation order: LOD bound, per-axis coordinate range, BCC parity. Each
// failure returns the corresponding structured error.
func EncodeIndex64(x, y, z int32, lod uint8) (Index64, error) {
	if lod > Index64MaxLod {
		return 0, &errs.RangeError{Field: "lod", Value: int64(lod), Min: 0, Max: int64(Index64MaxLod)}
	}
	if err := checkCoords(x, y, z, Index64CoordMin, Index64CoordMax); err != nil {
		return 0, err
	}
	if err := lattice.Validate(x, y, z); err != nil {
		return 0, err
	}

	return packIndex64(x, y, z, lod), nil
}

// packIndex64 assumes range-checked coordinates; parity is not re-validated
// so enumeration helpers can produce off-lattice stencil results.
func packIndex64(x, y, z int32, lod uint8) Index64 {
	u := uint32(x + index64CoordBias)
	v := uint32(y + index64CoordBias)
	w := uint32(z + index64CoordBias)

	code, _ := morton.Encode(u, v, w)

	return Index64(uint64(lod)<<index64LodShift | code)
}

// Decode recovers the coordinate triple and LOD.
func (i Index64) Decode() (x, y, z int32, lod uint8) {
	u, v, w, _ := morton.Decode(uint64(i) & index64PayloadMask)

	return int32(u) - index64CoordBias, int32(v) - index64CoordBias, int32(w) - index64CoordBias, i.lod8()
}

// Lod returns the level-of-detail field.
func (i Index64) Lod() uint32 { return uint32(i.lod8()) }

func (i Index64) lod8() uint8 { return uint8(uint64(i) >> index64LodShift) }

// Kind reports format.KindIndex64.
func (i Index64) Kind() format.IdentifierKind { return format.KindIndex64 }

// Parent returns the identifier of the parent cell at LOD-1.
// Fails with a LodError at LOD 0.
func (i Index64) Parent() (Index64, error) {
	lod := i.lod8()
	if lod == 0 {
		return 0, &errs.LodError{Op: "parent", Lod: 0, Max: uint32(Index64MaxLod)}
	}

	x, y, z, _ := i.Decode()
	p := lattice.Parent(lattice.Point{X: x, Y: y, Z: z})

	return packIndex64(p.X, p.Y, p.Z, lod-1), nil
}

// Children returns the 8 child identifiers at LOD+1 in lattice slot order.
// Fails with a LodError at the maximum LOD; individual slots fail with a
// RangeError when the doubled coordinates leave the 19-bit range.
func (i Index64) Children() ([lattice.ChildrenPerNode]Slot[Index64], error) {
	var out [lattice.ChildrenPerNode]Slot[Index64]

	lod := i.lod8()
	if lod == Index64MaxLod {
		return out, &errs.LodError{Op: "children", Lod: uint32(lod), Max: uint32(Index64MaxLod)}
	}

	x, y, z, _ := i.Decode()
	for s, c := range lattice.Children(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(c.X, c.Y, c.Z, Index64CoordMin, Index64CoordMax); err != nil {
			out[s] = Slot[Index64]{Err: err}
			continue
		}
		out[s] = Slot[Index64]{ID: packIndex64(c.X, c.Y, c.Z, lod+1)}
	}

	return out, nil
}

// Neighbors14 returns the same-LOD BCC stencil neighbors in slot order:
// 8 body diagonals, then 6 face offsets. Slots whose coordinates leave the
// 19-bit range carry a RangeError.
func (i Index64) Neighbors14() [lattice.NeighborCount]Slot[Index64] {
	var out [lattice.NeighborCount]Slot[Index64]

	x, y, z, lod := i.Decode()
	for s, n := range lattice.Neighbors(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(n.X, n.Y, n.Z, Index64CoordMin, Index64CoordMax); err != nil {
			out[s] = Slot[Index64]{Err: err}
			continue
		}
		out[s] = Slot[Index64]{ID: packIndex64(n.X, n.Y, n.Z, lod)}
	}

	return out
}

// Bytes returns the 8-byte big-endian serialization.
func (i Index64) Bytes() []byte {
	return endian.GetBigEndianEngine().AppendUint64(nil, uint64(i))
}

// Index64FromBytes parses an 8-byte big-endian serialization.
func Index64FromBytes(b []byte) (Index64, error) {
	if len(b) != 8 {
		return 0, &errs.RangeError{Field: "length", Value: int64(len(b)), Min: 8, Max: 8}
	}

	return Index64(endian.GetBigEndianEngine().Uint64(b)), nil
}

// String returns the checksummed textual form (oi1-idx1...).
func (i Index64) String() string { return formatBytes(hrpIndex64, i.Bytes()) }

func checkCoords(x, y, z, minCoord, maxCoord int32) error {
	if x < minCoord || x > maxCoord {
		return &errs.RangeError{Field: "x", Value: int64(x), Min: int64(minCoord), Max: int64(maxCoord)}
	}
	if y < minCoord || y > maxCoord {
		return &errs.RangeError{Field: "y", Value: int64(y), Min: int64(minCoord), Max: int64(maxCoord)}
	}
	if z < minCoord || z > maxCoord {
		return &errs.RangeError{Field: "z", Value: int64(z), Min: int64(minCoord), Max: int64(maxCoord)}
	}

	return nil
}
