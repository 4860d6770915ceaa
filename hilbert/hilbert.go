// Package hilbert implements the 3D Hilbert space-filling curve codec used by
// the Hilbert64 identifier and the curve-flagged Galactic128 variant.
//
// The codec uses the transpose form of the curve (John Skilling, "Programming
// the Hilbert curve", 2004): coordinates are rotated and reflected in place,
// then the transposed words are bit-interleaved into a single scalar. The
// mapping is a bijection over the cubic range, and consecutive codes decode to
// coordinates exactly one lattice step apart, which is what gives the curve
// its locality advantage over Morton order at equal width.
package hilbert

import (
	"fmt"

	"github.com/funkite/octaindex3d/errs"
)

const (
	// MaxCoordBits is the widest supported per-axis width.
	MaxCoordBits = 21
)

// Encode maps three coordinates of the given per-axis bit width onto the
// Hilbert curve. Each coordinate must be in [0, 2^bits); the returned code is
// in [0, 2^(3*bits)).
func Encode(x, y, z uint32, bits uint) (uint64, error) {
	if bits == 0 || bits > MaxCoordBits {
		return 0, fmt.Errorf("%w: hilbert coordinate width %d (legal 1-%d)", errs.ErrRange, bits, MaxCoordBits)
	}

	maxCoord := uint32(1)<<bits - 1
	if x > maxCoord {
		return 0, &errs.RangeError{Field: "x", Value: int64(x), Min: 0, Max: int64(maxCoord)}
	}
	if y > maxCoord {
		return 0, &errs.RangeError{Field: "y", Value: int64(y), Min: 0, Max: int64(maxCoord)}
	}
	if z > maxCoord {
		return 0, &errs.RangeError{Field: "z", Value: int64(z), Min: 0, Max: int64(maxCoord)}
	}

	t := [3]uint32{x, y, z}
	axesToTranspose(&t, bits)

	return interleave(t, bits), nil
}

// Decode recovers the coordinates of a Hilbert code produced by Encode with
// the same per-axis bit width.
func Decode(code uint64, bits uint) (x, y, z uint32, err error) {
	if bits == 0 || bits > MaxCoordBits {
		return 0, 0, 0, fmt.Errorf("%w: hilbert coordinate width %d (legal 1-%d)", errs.ErrRange, bits, MaxCoordBits)
	}
	if bits < MaxCoordBits && code >= 1<<(3*bits) {
		return 0, 0, 0, fmt.Errorf("%w: hilbert code 0x%x exceeds %d bits", errs.ErrRange, code, 3*bits)
	}

	t := deinterleave(code, bits)
	transposeToAxes(&t, bits)

	return t[0], t[1], t[2], nil
}

// axesToTranspose converts coordinates into the transposed Hilbert form,
// in place. Skilling's forward pass: undo excess rotations high-to-low, then
// Gray-encode.
func axesToTranspose(xs *[3]uint32, bits uint) {
	m := uint32(1) << (bits - 1)

	// Inverse undo
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := range 3 {
			if xs[i]&q != 0 {
				xs[0] ^= p
			} else {
				t := (xs[0] ^ xs[i]) & p
				xs[0] ^= t
				xs[i] ^= t
			}
		}
	}

	// Gray encode
	for i := 1; i < 3; i++ {
		xs[i] ^= xs[i-1]
	}

	var t uint32
	for q := m; q > 1; q >>= 1 {
		if xs[2]&q != 0 {
			t ^= q - 1
		}
	}
	for i := range 3 {
		xs[i] ^= t
	}
}

// transposeToAxes is the exact inverse of axesToTranspose.
func transposeToAxes(xs *[3]uint32, bits uint) {
	n := uint32(2) << (bits - 1)

	// Gray decode by H ^ (H/2)
	t := xs[2] >> 1
	for i := 2; i > 0; i-- {
		xs[i] ^= xs[i-1]
	}
	xs[0] ^= t

	// Undo excess work
	for q := uint32(2); q != n; q <<= 1 {
		p := q - 1
		for i := 2; i >= 0; i-- {
			if xs[i]&q != 0 {
				xs[0] ^= p
			} else {
				t = (xs[0] ^ xs[i]) & p
				xs[0] ^= t
				xs[i] ^= t
			}
		}
	}
}

// interleave packs the transposed words into a scalar. Word 0 carries the
// most significant bit of each 3-bit group, so the scalar orders points
// exactly as the curve visits them.
func interleave(t [3]uint32, bits uint) uint64 {
	var code uint64
	for b := int(bits) - 1; b >= 0; b-- {
		for i := range 3 {
			code = code<<1 | uint64(t[i]>>uint(b)&1)
		}
	}

	return code
}

func deinterleave(code uint64, bits uint) [3]uint32 {
	var t [3]uint32
	for b := int(bits) - 1; b >= 0; b-- {
		for i := range 3 {
			t[i] = t[i]<<1 | uint32(code>>uint(3*b+2-i)&1)
		}
	}

	return t
}
