// Package lattice implements the Body-Centered Cubic traversal primitives:
// parity validation, the fixed 14-neighbor stencil, and the parity-preserving
// parent/child hierarchy.
//
// All functions are stateless pure integer arithmetic and safe for concurrent
// use. Coordinates are signed; overflow policy is owned by the identifier
// types, which bound-check enumeration results against their own ranges.
package lattice

import (
	"fmt"

	"github.com/funkite/octaindex3d/errs"
)

// Point is a lattice coordinate triple. A Point is legal when its component
// sum is even; Validate enforces that at construction boundaries.
type Point struct {
	X, Y, Z int32
}

// ChildrenPerNode is the branching factor of the hierarchy: each lattice
// point at LOD l has exactly 8 children at LOD l+1.
const ChildrenPerNode = 8

// NeighborCount is the size of the BCC adjacency stencil: 8 body-diagonal
// neighbors plus 6 face neighbors.
const NeighborCount = 14

// neighborOffsets is the fixed 14-slot stencil. Slot order is part of the
// API: slots 0-7 are the body neighbors at squared distance 3, in
// lexicographic sign order (-,-,-) through (+,+,+); slots 8-13 are the face
// neighbors at squared distance 4, ordered -x, +x, -y, +y, -z, +z.
var neighborOffsets = [NeighborCount]Point{
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
	{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	{-2, 0, 0}, {2, 0, 0}, {0, -2, 0}, {0, 2, 0}, {0, 0, -2}, {0, 0, 2},
}

// childOffsets holds the 8 parity-admissible child offsets. Children of
// (x, y, z) are (2x+dx, 2y+dy, 2z+dz); candidate offsets range over
// {0,1}x{0,1}x{0..3} (16 in total) and exactly the even-sum half is
// admissible on the lattice. The dz>1 offsets cover the child cells whose
// naive floor-parent would land off-lattice.
var childOffsets = [ChildrenPerNode]Point{
	{0, 0, 0}, {0, 1, 1}, {1, 0, 1}, {1, 1, 0},
	{0, 0, 2}, {0, 1, 3}, {1, 0, 3}, {1, 1, 2},
}

// Validate checks the BCC parity invariant (x + y + z) mod 2 == 0.
//
// The sum is evaluated on the low bits only, so it is exact for the full
// signed coordinate range.
func Validate(x, y, z int32) error {
	if (x^y^z)&1 != 0 {
		return &errs.ParityError{X: x, Y: y, Z: z}
	}

	return nil
}

// IsValid reports whether the triple satisfies the parity invariant.
func IsValid(x, y, z int32) bool {
	return (x^y^z)&1 == 0
}

// Neighbors returns the 14 same-LOD neighbors of p in stencil order.
//
// The stencil connects the two cubic sublattices of the BCC cell structure;
// results are offsets of p and are not re-validated here. Callers that pack
// neighbors into identifiers apply their own coordinate-range bounds.
func Neighbors(p Point) [NeighborCount]Point {
	var out [NeighborCount]Point
	for i, d := range neighborOffsets {
		out[i] = Point{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
	}

	return out
}

// NeighborOffsets returns the stencil itself. Slots 0-7 have squared lattice
// distance 3; slots 8-13 have squared distance 4.
func NeighborOffsets() [NeighborCount]Point {
	return neighborOffsets
}

// Parent maps a point at LOD l to its parent at LOD l-1.
//
// The parent is the floor-halved triple, corrected to the lattice: when the
// floor triple has odd parity the z component is decremented. The correction
// makes Parent the exact inverse of Children for all 8 child slots and keeps
// every parent parity-valid.
func Parent(p Point) Point {
	h := Point{p.X >> 1, p.Y >> 1, p.Z >> 1}
	if (h.X^h.Y^h.Z)&1 != 0 {
		h.Z--
	}

	return h
}

// Children returns the 8 children of p at LOD l+1, in fixed slot order.
// Every child c satisfies Parent(c) == p, and the child sets of distinct
// parents partition the lattice at the finer level.
func Children(p Point) [ChildrenPerNode]Point {
	var out [ChildrenPerNode]Point
	for i, d := range childOffsets {
		out[i] = Point{2*p.X + d.X, 2*p.Y + d.Y, 2*p.Z + d.Z}
	}

	return out
}

// Ancestor maps p at LOD l to its k-th ancestor at LOD l-k.
// k must not exceed l.
func Ancestor(p Point, lod uint8, k uint8) (Point, error) {
	if k > lod {
		return Point{}, fmt.Errorf("%w: ancestor depth %d exceeds LOD %d", errs.ErrLod, k, lod)
	}

	for range k {
		p = Parent(p)
	}

	return p, nil
}

// Descendants appends to dst the 8^depth descendants of p at LOD l+depth and
// returns the extended slice. Enumeration is depth-first in child slot order,
// so the result is deterministic.
func Descendants(dst []Point, p Point, depth uint8) []Point {
	if depth == 0 {
		return append(dst, p)
	}

	for _, c := range Children(p) {
		dst = Descendants(dst, c, depth-1)
	}

	return dst
}
