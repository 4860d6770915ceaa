package ident

import (
	"fmt"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/frame"
	"github.com/funkite/octaindex3d/hilbert"
	"github.com/funkite/octaindex3d/lattice"
	"github.com/funkite/octaindex3d/morton"
)

// Galactic128 is the 128-bit frame-scoped archival key.
//
// Layout (high word first):
//
//	Hi bits 63-56  version (currently 1)
//	Hi bits 55-48  frame ID
//	Hi bits 47-24  flags + reserved; bit 24 selects the Hilbert curve,
//	               the rest are zero on write and ignored on read
//	Hi bits 23-0   LOD
//	Lo bits 63-0   Morton (or Hilbert) code of the biased coordinate triple
//
// Coordinates are signed 21-bit values biased by 2^20 before curve encoding;
// that is the widest per-axis range a 64-bit interleaved code admits.
// Serialization is big-endian (Hi word first) for stable cross-platform
// persistence.
type Galactic128 struct {
	Hi uint64
	Lo uint64
}

const (
	// Galactic128Version is the current format version.
	Galactic128Version = uint8(1)
	// Galactic128MaxLod is the largest LOD the 24-bit field can hold.
	Galactic128MaxLod = uint32(1<<24 - 1)
	// Galactic128CoordMin and Galactic128CoordMax bound each signed coordinate.
	Galactic128CoordMin = int32(-1 << 20)
	Galactic128CoordMax = int32(1<<20 - 1)

	galacticCoordBias    = int32(1 << 20)
	galacticCoordBits    = 21
	galacticVersionShift = 56
	galacticFrameShift   = 48
	galacticHilbertBit   = uint64(1) << 24
	galacticLodMask      = uint64(1<<24 - 1)
)

// EncodeGalactic128 packs a frame-scoped lattice point using the Morton
// curve.
//
// The frame ID is stored but not resolved against the registry, so
// identifiers can be constructed and decoded before their frame is
// registered; use CheckFrame at use sites that require a registered frame.
func EncodeGalactic128(frameID uint8, lod uint32, x, y, z int32) (Galactic128, error) {
	if err := galacticValidate(lod, x, y, z); err != nil {
		return Galactic128{}, err
	}

	code, _ := morton.Encode(uint32(x+galacticCoordBias), uint32(y+galacticCoordBias), uint32(z+galacticCoordBias))

	return packGalactic128(frameID, lod, code, false), nil
}

// EncodeGalactic128Hilbert packs a frame-scoped lattice point using the
// Hilbert curve and sets the curve flag.
func EncodeGalactic128Hilbert(frameID uint8, lod uint32, x, y, z int32) (Galactic128, error) {
	if err := galacticValidate(lod, x, y, z); err != nil {
		return Galactic128{}, err
	}

	code, err := hilbert.Encode(uint32(x+galacticCoordBias), uint32(y+galacticCoordBias), uint32(z+galacticCoordBias), galacticCoordBits)
	if err != nil {
		return Galactic128{}, err
	}

	return packGalactic128(frameID, lod, code, true), nil
}

// NewGalactic128 builds an identifier from a raw curve code. The code is not
// decoded or parity-checked; this is the constructor used when codes come
// from trusted storage.
func NewGalactic128(frameID uint8, lod uint32, code uint64) (Galactic128, error) {
	if lod > Galactic128MaxLod {
		return Galactic128{}, &errs.RangeError{Field: "lod", Value: int64(lod), Min: 0, Max: int64(Galactic128MaxLod)}
	}
	if code >= 1<<(3*galacticCoordBits) {
		return Galactic128{}, fmt.Errorf("%w: curve code 0x%x exceeds %d bits", errs.ErrRange, code, 3*galacticCoordBits)
	}

	return packGalactic128(frameID, lod, code, false), nil
}

func galacticValidate(lod uint32, x, y, z int32) error {
	if lod > Galactic128MaxLod {
		return &errs.RangeError{Field: "lod", Value: int64(lod), Min: 0, Max: int64(Galactic128MaxLod)}
	}
	if err := checkCoords(x, y, z, Galactic128CoordMin, Galactic128CoordMax); err != nil {
		return err
	}

	return lattice.Validate(x, y, z)
}

func packGalactic128(frameID uint8, lod uint32, code uint64, hilbertCurve bool) Galactic128 {
	hi := uint64(Galactic128Version)<<galacticVersionShift |
		uint64(frameID)<<galacticFrameShift |
		uint64(lod)&galacticLodMask
	if hilbertCurve {
		hi |= galacticHilbertBit
	}

	return Galactic128{Hi: hi, Lo: code}
}

// packGalacticPoint packs range-checked coordinates without parity
// validation, preserving the curve selection of the receiver.
func packGalacticPoint(frameID uint8, lod uint32, x, y, z int32, hilbertCurve bool) Galactic128 {
	u := uint32(x + galacticCoordBias)
	v := uint32(y + galacticCoordBias)
	w := uint32(z + galacticCoordBias)

	var code uint64
	if hilbertCurve {
		code, _ = hilbert.Encode(u, v, w, galacticCoordBits)
	} else {
		code, _ = morton.Encode(u, v, w)
	}

	return packGalactic128(frameID, lod, code, hilbertCurve)
}

// Decode recovers the coordinate triple and LOD.
func (g Galactic128) Decode() (x, y, z int32, lod uint32) {
	var u, v, w uint32
	if g.IsHilbert() {
		u, v, w, _ = hilbert.Decode(g.Lo, galacticCoordBits)
	} else {
		u, v, w, _ = morton.Decode(g.Lo)
	}

	return int32(u) - galacticCoordBias, int32(v) - galacticCoordBias, int32(w) - galacticCoordBias, g.Lod()
}

// Version returns the format version byte.
func (g Galactic128) Version() uint8 { return uint8(g.Hi >> galacticVersionShift) }

// FrameID returns the embedded frame tag. frame.None means unscoped.
func (g Galactic128) FrameID() uint8 { return uint8(g.Hi >> galacticFrameShift) }

// Lod returns the 24-bit level-of-detail field.
func (g Galactic128) Lod() uint32 { return uint32(g.Hi & galacticLodMask) }

// Code returns the raw 64-bit curve code.
func (g Galactic128) Code() uint64 { return g.Lo }

// IsHilbert reports whether the code field holds a Hilbert code rather than
// a Morton code.
func (g Galactic128) IsHilbert() bool { return g.Hi&galacticHilbertBit != 0 }

// Kind reports format.KindGalactic128.
func (g Galactic128) Kind() format.IdentifierKind { return format.KindGalactic128 }

// CheckFrame resolves the embedded frame ID against the process registry.
// This is the strict-mode validation deferred from construction.
func (g Galactic128) CheckFrame() (frame.Descriptor, error) {
	return frame.Get(g.FrameID())
}

// Parent returns the identifier of the parent cell at LOD-1, preserving the
// frame tag and curve selection. Fails with a LodError at LOD 0.
func (g Galactic128) Parent() (Galactic128, error) {
	lod := g.Lod()
	if lod == 0 {
		return Galactic128{}, &errs.LodError{Op: "parent", Lod: 0, Max: Galactic128MaxLod}
	}

	x, y, z, _ := g.Decode()
	p := lattice.Parent(lattice.Point{X: x, Y: y, Z: z})

	return packGalacticPoint(g.FrameID(), lod-1, p.X, p.Y, p.Z, g.IsHilbert()), nil
}

// Children returns the 8 child identifiers at LOD+1, preserving frame tag
// and curve selection.
func (g Galactic128) Children() ([lattice.ChildrenPerNode]Slot[Galactic128], error) {
	var out [lattice.ChildrenPerNode]Slot[Galactic128]

	lod := g.Lod()
	if lod == Galactic128MaxLod {
		return out, &errs.LodError{Op: "children", Lod: lod, Max: Galactic128MaxLod}
	}

	x, y, z, _ := g.Decode()
	for s, c := range lattice.Children(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(c.X, c.Y, c.Z, Galactic128CoordMin, Galactic128CoordMax); err != nil {
			out[s] = Slot[Galactic128]{Err: err}
			continue
		}
		out[s] = Slot[Galactic128]{ID: packGalacticPoint(g.FrameID(), lod+1, c.X, c.Y, c.Z, g.IsHilbert())}
	}

	return out, nil
}

// Neighbors14 returns the same-LOD BCC stencil neighbors in slot order.
func (g Galactic128) Neighbors14() [lattice.NeighborCount]Slot[Galactic128] {
	var out [lattice.NeighborCount]Slot[Galactic128]

	x, y, z, lod := g.Decode()
	for s, n := range lattice.Neighbors(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(n.X, n.Y, n.Z, Galactic128CoordMin, Galactic128CoordMax); err != nil {
			out[s] = Slot[Galactic128]{Err: err}
			continue
		}
		out[s] = Slot[Galactic128]{ID: packGalacticPoint(g.FrameID(), lod, n.X, n.Y, n.Z, g.IsHilbert())}
	}

	return out
}

// Bytes returns the 16-byte big-endian serialization, high word first.
func (g Galactic128) Bytes() []byte {
	engine := endian.GetBigEndianEngine()
	b := engine.AppendUint64(make([]byte, 0, 16), g.Hi)

	return engine.AppendUint64(b, g.Lo)
}

// Galactic128FromBytes parses a 16-byte big-endian serialization and
// validates the version byte.
func Galactic128FromBytes(b []byte) (Galactic128, error) {
	if len(b) != 16 {
		return Galactic128{}, &errs.RangeError{Field: "length", Value: int64(len(b)), Min: 16, Max: 16}
	}

	engine := endian.GetBigEndianEngine()
	g := Galactic128{Hi: engine.Uint64(b[0:8]), Lo: engine.Uint64(b[8:16])}
	if g.Version() != Galactic128Version {
		return Galactic128{}, &errs.RangeError{Field: "version", Value: int64(g.Version()), Min: 1, Max: int64(Galactic128Version)}
	}

	return g, nil
}

// String returns the checksummed textual form (oi1-gal1...).
func (g Galactic128) String() string { return formatBytes(hrpGalactic128, g.Bytes()) }
