// Package octaindex provides 3D spatial indexing on the Body-Centered Cubic
// lattice: compact hierarchical identifiers, parity-preserving lattice
// traversal, and a crash-recoverable binary container format.
//
// # Core Features
//
//   - Four packed identifier types: Index64 (Morton order), Route64 (packed
//     routing key), Galactic128 (frame-scoped archival key), Hilbert64
//     (Hilbert order for locality-heavy scans)
//   - BCC lattice traversal: 14-neighbor stencil, parent/child hierarchy,
//     cross-LOD ancestry, all in pure integer arithmetic
//   - Hardware-accelerated Morton codec (BMI2 PDEP/PEXT) with a portable
//     fallback, selected once at runtime
//   - Process-wide coordinate frame registry
//   - Append-only container format with CRC-protected blocks, optional LZ4 or
//     Zstd compression, TOC random access, and partial-data recovery
//   - Checksummed textual identifier encoding (Bech32m)
//
// # Basic Usage
//
// Encoding and traversing identifiers:
//
//	import "github.com/funkite/octaindex3d"
//
//	id, err := octaindex.Encode(100, 100, 0, 10)
//	if err != nil {
//	    return err
//	}
//	parent, _ := id.Parent()
//	for _, slot := range id.Neighbors14() {
//	    if slot.Ok() {
//	        // slot.ID is a same-LOD neighbor
//	    }
//	}
//
// Writing and reading a container:
//
//	w, _ := container.NewSequentialWriter(sink,
//	    container.WithCompression(format.CompressionLZ4),
//	)
//	w.Append(id, payload)
//	w.Close()
//
//	r, _ := container.Open(source)
//	for entry, err := range r.Entries() {
//	    // ...
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the ident,
// frame, and container packages, simplifying the most common use cases. For
// advanced usage and fine-grained control, use those packages directly.
package octaindex

import (
	"io"

	"github.com/funkite/octaindex3d/container"
	"github.com/funkite/octaindex3d/frame"
	"github.com/funkite/octaindex3d/ident"
)

// Encode packs a lattice point and LOD into an Index64, the default
// in-memory spatial key.
//
// Coordinates must satisfy the BCC parity invariant (x+y+z even) and fit the
// signed 19-bit per-axis range; lod must be at most 31.
func Encode(x, y, z int32, lod uint8) (ident.Index64, error) {
	return ident.EncodeIndex64(x, y, z, lod)
}

// EncodeHilbert packs a lattice point and LOD into a Hilbert64, the scan key
// whose ordering follows the Hilbert curve.
func EncodeHilbert(x, y, z int32, lod uint8) (ident.Hilbert64, error) {
	return ident.EncodeHilbert64(x, y, z, lod)
}

// Parse decodes any textual identifier form (oi1-idx1..., oi1-rte1...,
// oi1-gal1..., oi1-hlb1...), verifying the checksum.
func Parse(s string) (ident.Identifier, error) {
	return ident.Parse(s)
}

// RegisterFrame binds a frame tag to a descriptor, process-wide.
// Registration is idempotent; rebinding a tag to a different descriptor
// fails.
func RegisterFrame(id uint8, d frame.Descriptor) error {
	return frame.Register(id, d)
}

// NewWriter creates a sequential container writer over a seekable sink.
func NewWriter(sink io.WriteSeeker, opts ...container.Option) (*container.SequentialWriter, error) {
	return container.NewSequentialWriter(sink, opts...)
}

// OpenReader opens a container for reading.
func OpenReader(source io.Reader) (*container.Reader, error) {
	return container.Open(source)
}
