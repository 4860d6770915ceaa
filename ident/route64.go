package ident

import (
	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/lattice"
)

// Route64 is the 64-bit routing key used by path planners to hold many
// nodes compactly.
//
// Layout:
//
//	bits 63-62  tier (0-3)
//	bits 61-42  x, two's complement
//	bits 41-22  y, two's complement
//	bits 21-2   z, two's complement
//	bits 1-0    reserved, zero
//
// Coordinates are stored verbatim (no Morton interleave), so Route64 values
// do not sort spatially; they trade ordering for O(1) field extraction.
type Route64 uint64

const (
	// Route64MaxTier is the largest tier the 2-bit field can hold.
	Route64MaxTier = uint8(3)
	// Route64CoordMin and Route64CoordMax bound each signed coordinate.
	Route64CoordMin = int32(-1 << 19)
	Route64CoordMax = int32(1<<19 - 1)

	route64CoordBits = 20
	route64CoordMask = uint64(1<<route64CoordBits - 1)
	route64TierShift = 62
	route64XShift    = 42
	route64YShift    = 22
	route64ZShift    = 2
)

// NewRoute64 packs a tier and a lattice point into a Route64.
func NewRoute64(tier uint8, x, y, z int32) (Route64, error) {
	if tier > Route64MaxTier {
		return 0, &errs.RangeError{Field: "tier", Value: int64(tier), Min: 0, Max: int64(Route64MaxTier)}
	}
	if err := checkCoords(x, y, z, Route64CoordMin, Route64CoordMax); err != nil {
		return 0, err
	}
	if err := lattice.Validate(x, y, z); err != nil {
		return 0, err
	}

	return packRoute64(tier, x, y, z), nil
}

func packRoute64(tier uint8, x, y, z int32) Route64 {
	raw := uint64(tier) << route64TierShift
	raw |= (uint64(uint32(x)) & route64CoordMask) << route64XShift
	raw |= (uint64(uint32(y)) & route64CoordMask) << route64YShift
	raw |= (uint64(uint32(z)) & route64CoordMask) << route64ZShift

	return Route64(raw)
}

// Decode recovers the tier and coordinate triple.
func (r Route64) Decode() (tier uint8, x, y, z int32) {
	tier = uint8(uint64(r) >> route64TierShift)
	x = signExtend(uint32(uint64(r)>>route64XShift&route64CoordMask), route64CoordBits)
	y = signExtend(uint32(uint64(r)>>route64YShift&route64CoordMask), route64CoordBits)
	z = signExtend(uint32(uint64(r)>>route64ZShift&route64CoordMask), route64CoordBits)

	return tier, x, y, z
}

// Tier returns the 2-bit tier field.
func (r Route64) Tier() uint8 { return uint8(uint64(r) >> route64TierShift) }

// Lod returns the tier; Route64 tiers are shallow LODs.
func (r Route64) Lod() uint32 { return uint32(r.Tier()) }

// Kind reports format.KindRoute64.
func (r Route64) Kind() format.IdentifierKind { return format.KindRoute64 }

// Parent returns the parent node at tier-1. Fails with a LodError at tier 0.
func (r Route64) Parent() (Route64, error) {
	tier, x, y, z := r.Decode()
	if tier == 0 {
		return 0, &errs.LodError{Op: "parent", Lod: 0, Max: uint32(Route64MaxTier)}
	}

	p := lattice.Parent(lattice.Point{X: x, Y: y, Z: z})

	return packRoute64(tier-1, p.X, p.Y, p.Z), nil
}

// Children returns the 8 children at tier+1.
// Fails with a LodError at the maximum tier.
func (r Route64) Children() ([lattice.ChildrenPerNode]Slot[Route64], error) {
	var out [lattice.ChildrenPerNode]Slot[Route64]

	tier, x, y, z := r.Decode()
	if tier == Route64MaxTier {
		return out, &errs.LodError{Op: "children", Lod: uint32(tier), Max: uint32(Route64MaxTier)}
	}

	for s, c := range lattice.Children(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(c.X, c.Y, c.Z, Route64CoordMin, Route64CoordMax); err != nil {
			out[s] = Slot[Route64]{Err: err}
			continue
		}
		out[s] = Slot[Route64]{ID: packRoute64(tier+1, c.X, c.Y, c.Z)}
	}

	return out, nil
}

// Neighbors14 returns the same-tier BCC stencil neighbors in slot order.
func (r Route64) Neighbors14() [lattice.NeighborCount]Slot[Route64] {
	var out [lattice.NeighborCount]Slot[Route64]

	tier, x, y, z := r.Decode()
	for s, n := range lattice.Neighbors(lattice.Point{X: x, Y: y, Z: z}) {
		if err := checkCoords(n.X, n.Y, n.Z, Route64CoordMin, Route64CoordMax); err != nil {
			out[s] = Slot[Route64]{Err: err}
			continue
		}
		out[s] = Slot[Route64]{ID: packRoute64(tier, n.X, n.Y, n.Z)}
	}

	return out
}

// Bytes returns the 8-byte big-endian serialization.
func (r Route64) Bytes() []byte {
	return endian.GetBigEndianEngine().AppendUint64(nil, uint64(r))
}

// Route64FromBytes parses an 8-byte big-endian serialization.
func Route64FromBytes(b []byte) (Route64, error) {
	if len(b) != 8 {
		return 0, &errs.RangeError{Field: "length", Value: int64(len(b)), Min: 8, Max: 8}
	}

	return Route64(endian.GetBigEndianEngine().Uint64(b)), nil
}

// String returns the checksummed textual form (oi1-rte1...).
func (r Route64) String() string { return formatBytes(hrpRoute64, r.Bytes()) }
