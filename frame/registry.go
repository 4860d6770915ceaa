// Package frame provides the process-wide registry of coordinate reference
// frames. Identifiers embed an 8-bit frame tag; the registry maps that tag
// to a full descriptor with transformation metadata.
//
// The registry is read-mostly: registrations are additive and idempotent,
// lookups never block each other, and a lookup concurrent with a
// registration observes either the pre- or post-registration state, never a
// torn view.
package frame

import (
	"iter"
	"math"
	"sort"
	"sync"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/internal/hash"
)

// None is the reserved frame tag meaning "no frame"; it cannot be
// registered.
const None = uint8(0xFF)

// Descriptor describes a coordinate reference frame.
//
// Scale is the edge length of an LOD-0 cell in the frame's units, so cell
// spacing at LOD l is Scale / 2^l.
type Descriptor struct {
	// Name is the human-readable frame name, e.g. "ecef".
	Name string
	// CRS identifies the parent coordinate reference system, e.g. "WGS-84".
	CRS string
	// Description is free-form documentation.
	Description string
	// EarthFixed marks frames rigidly attached to Earth.
	EarthFixed bool
	// Scale is the units-per-cell edge length at LOD 0.
	Scale float64
}

// Fingerprint returns the xxHash64 of the descriptor's canonical encoding.
// Two descriptors are structurally equal iff their fingerprints and fields
// match; the hash gives callers a cheap identity for caching and conflict
// reporting.
func (d Descriptor) Fingerprint() uint64 {
	engine := endian.GetBigEndianEngine()

	buf := make([]byte, 0, len(d.Name)+len(d.CRS)+len(d.Description)+16)
	for _, s := range []string{d.Name, d.CRS, d.Description} {
		buf = engine.AppendUint32(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	if d.EarthFixed {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = engine.AppendUint64(buf, floatBits(d.Scale))

	return hash.Sum(buf)
}

type registry struct {
	mu     sync.RWMutex
	frames map[uint8]Descriptor
}

var global = &registry{frames: make(map[uint8]Descriptor)}

// Register binds id to the descriptor, process-wide.
//
// Registration is idempotent: re-registering an id with a structurally
// identical descriptor succeeds; re-registering with a different descriptor
// fails with a FrameConflictError and leaves the stored descriptor
// untouched.
func Register(id uint8, d Descriptor) error {
	if id == None {
		return &errs.FrameConflictError{ID: id}
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if stored, ok := global.frames[id]; ok {
		if stored == d {
			return nil
		}

		return &errs.FrameConflictError{ID: id}
	}

	global.frames[id] = d

	return nil
}

// Get returns the descriptor registered for id.
func Get(id uint8) (Descriptor, error) {
	global.mu.RLock()
	defer global.mu.RUnlock()

	d, ok := global.frames[id]
	if !ok {
		return Descriptor{}, &errs.FrameNotFoundError{ID: id}
	}

	return d, nil
}

// All iterates a snapshot of the registry in ascending id order. The
// snapshot is taken when iteration starts; registrations made while
// iterating are not observed.
func All() iter.Seq2[uint8, Descriptor] {
	return func(yield func(uint8, Descriptor) bool) {
		global.mu.RLock()
		ids := make([]int, 0, len(global.frames))
		for id := range global.frames {
			ids = append(ids, int(id))
		}
		snapshot := make(map[uint8]Descriptor, len(global.frames))
		for id, d := range global.frames {
			snapshot[id] = d
		}
		global.mu.RUnlock()

		sort.Ints(ids)
		for _, id := range ids {
			if !yield(uint8(id), snapshot[uint8(id)]) {
				return
			}
		}
	}
}

// Count returns the number of registered frames.
func Count() int {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return len(global.frames)
}

func floatBits(f float64) uint64 {
	// Canonicalize negative zero so structurally equal descriptors hash
	// identically.
	if f == 0 {
		return 0
	}

	return math.Float64bits(f)
}
