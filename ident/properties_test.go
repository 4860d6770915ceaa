package ident

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Property sweeps over pseudo-random lattice points: parity preservation
// through the hierarchy, neighbor counts and distances, and hierarchy
// round-trips, for the Morton- and Hilbert-keyed types.

func latticeSweep(n int, maxAbs int32) [][3]int32 {
	state := uint64(0xC0FFEE)
	next := func() int32 {
		state = state*6364136223846793005 + 1442695040888963407
		return int32(state>>41)%maxAbs - maxAbs/2
	}

	points := make([][3]int32, 0, n)
	for len(points) < n {
		x, y := next(), next()
		z := next()
		z -= (x + y + z) & 1 // project onto the lattice
		points = append(points, [3]int32{x, y, z})
	}

	return points
}

func TestIndex64HierarchyProperties(t *testing.T) {
	for _, p := range latticeSweep(500, 1<<16) {
		id, err := EncodeIndex64(p[0], p[1], p[2], 10)
		require.NoError(t, err)

		// Parent preserves parity.
		parent, err := id.Parent()
		require.NoError(t, err)

		px, py, pz, _ := parent.Decode()
		require.Zero(t, (px+py+pz)&1)

		// Every child preserves parity and inverts to the original.
		children, err := id.Children()
		require.NoError(t, err)

		for _, slot := range children {
			require.True(t, slot.Ok())

			cx, cy, cz, _ := slot.ID.Decode()
			require.Zero(t, (cx+cy+cz)&1)

			back, err := slot.ID.Parent()
			require.NoError(t, err)
			require.Equal(t, id, back)
		}

		// The identifier is among its parent's children.
		pc, err := parent.Children()
		require.NoError(t, err)

		found := false
		for _, slot := range pc {
			if slot.Ok() && slot.ID == id {
				found = true
				break
			}
		}
		require.True(t, found)
	}
}

func TestIndex64NeighborDistanceProperty(t *testing.T) {
	for _, p := range latticeSweep(200, 1<<15) {
		id, err := EncodeIndex64(p[0], p[1], p[2], 8)
		require.NoError(t, err)

		neighbors := id.Neighbors14()
		require.Len(t, neighbors[:], 14)

		var dist3, dist4 int
		for _, slot := range neighbors {
			require.True(t, slot.Ok())

			nx, ny, nz, _ := slot.ID.Decode()
			dx, dy, dz := nx-p[0], ny-p[1], nz-p[2]
			switch dx*dx + dy*dy + dz*dz {
			case 3:
				dist3++
			case 4:
				dist4++
			default:
				t.Fatalf("neighbor (%d,%d,%d) of %v at unexpected distance", nx, ny, nz, p)
			}
		}
		require.Equal(t, 8, dist3)
		require.Equal(t, 6, dist4)
	}
}

func TestHilbert64HierarchyProperties(t *testing.T) {
	for _, p := range latticeSweep(200, 1<<15) {
		id, err := EncodeHilbert64(p[0], p[1], p[2], 10)
		require.NoError(t, err)

		x, y, z, lod := id.Decode()
		require.Equal(t, p, [3]int32{x, y, z})
		require.Equal(t, uint8(10), lod)

		children, err := id.Children()
		require.NoError(t, err)

		for _, slot := range children {
			require.True(t, slot.Ok())

			back, err := slot.ID.Parent()
			require.NoError(t, err)
			require.Equal(t, id, back)
		}
	}
}

func TestCrossTypeCoordinateAgreement(t *testing.T) {
	// The same lattice point survives a round trip through every identifier
	// type that can hold it.
	for _, p := range latticeSweep(200, 1<<17) {
		idx, err := EncodeIndex64(p[0], p[1], p[2], 3)
		require.NoError(t, err)

		rte, err := NewRoute64(3, p[0], p[1], p[2])
		require.NoError(t, err)

		gal, err := EncodeGalactic128(0, 3, p[0], p[1], p[2])
		require.NoError(t, err)

		ix, iy, iz, _ := idx.Decode()
		_, rx, ry, rz := rte.Decode()
		gx, gy, gz, _ := gal.Decode()

		require.Equal(t, [3]int32{ix, iy, iz}, [3]int32{rx, ry, rz})
		require.Equal(t, [3]int32{ix, iy, iz}, [3]int32{gx, gy, gz})
		require.Equal(t, p, [3]int32{ix, iy, iz})
	}
}
