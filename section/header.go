// Package section implements the bit-exact wire layout of the container
// format: the 32-byte header, the CRC-protected block frame, and the
// ENTRIES, METADATA and TOC payload codecs.
//
// All multi-byte integers are big-endian. The package performs no I/O; it
// encodes into and parses from byte slices, and the container package owns
// the sinks.
package section

import (
	"fmt"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

// Header is the fixed-size section at the start of every container.
//
// Layout:
//
//	bytes 0-3    magic "OCT3"
//	bytes 4-5    format version (u16)
//	bytes 6-7    flags (u16): bit 0 streaming, bit 1 has-TOC
//	bytes 8-15   stream ID (u64, zero for sequential containers)
//	bytes 16-31  reserved, zero on write, ignored on read
type Header struct {
	Version  uint16
	Flags    uint16
	StreamID uint64
}

// NewHeader creates a header at the current format version.
// Flags and stream ID are filled in by the writers.
func NewHeader() *Header {
	return &Header{Version: format.FormatVersion}
}

// IsStreaming reports the streaming flag.
func (h Header) IsStreaming() bool { return h.Flags&format.FlagStreaming != 0 }

// HasTOC reports the has-TOC flag.
func (h Header) HasTOC() bool { return h.Flags&format.FlagHasTOC != 0 }

// Parse parses and validates the header from a byte slice.
//
// Returns ErrBadMagic if the magic does not match, ErrUnsupportedVersion if
// the version exceeds the supported maximum.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return &errs.TruncationError{Offset: 0, Want: HeaderSize, Got: len(data)}
	}
	if string(data[0:4]) != format.Magic {
		return fmt.Errorf("%w: % x", errs.ErrBadMagic, data[0:4])
	}

	engine := endian.GetBigEndianEngine()
	h.Version = engine.Uint16(data[4:6])
	h.Flags = engine.Uint16(data[6:8])
	h.StreamID = engine.Uint64(data[8:16])

	if h.Version == 0 || h.Version > format.FormatVersion {
		return fmt.Errorf("%w: version %d, supported max %d", errs.ErrUnsupportedVersion, h.Version, format.FormatVersion)
	}

	return nil
}

// Bytes serializes the header into a fresh 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], format.Magic)

	engine := endian.GetBigEndianEngine()
	engine.PutUint16(b[4:6], h.Version)
	engine.PutUint16(b[6:8], h.Flags)
	engine.PutUint64(b[8:16], h.StreamID)
	// bytes 16-31 stay zero

	return b
}
