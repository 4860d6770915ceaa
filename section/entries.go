package section

import (
	"fmt"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
)

// Entry is one identifier-keyed record of an ENTRIES payload. The Key holds
// the identifier's big-endian bytes: 8 for the 64-bit types, 16 for
// Galactic128.
type Entry struct {
	Key     []byte
	Payload []byte
}

// AppendEntries serializes entries into dst and returns the extended slice.
//
// Wire layout: u32 entry count, then per entry the fixed-width identifier
// bytes, a u32 payload length, and the payload. The identifier width must be
// uniform; the caller records it in the block flags.
func AppendEntries(dst []byte, entries []Entry, idSize int) ([]byte, error) {
	engine := endian.GetBigEndianEngine()
	dst = engine.AppendUint32(dst, uint32(len(entries)))

	for i := range entries {
		e := &entries[i]
		if len(e.Key) != idSize {
			return nil, fmt.Errorf("%w: key is %d bytes, block carries %d-byte identifiers", errs.ErrMixedIDWidth, len(e.Key), idSize)
		}

		dst = append(dst, e.Key...)
		dst = engine.AppendUint32(dst, uint32(len(e.Payload)))
		dst = append(dst, e.Payload...)
	}

	return dst, nil
}

// ParseEntries decodes an ENTRIES payload. Returned keys and payloads alias
// data; callers that retain them across buffer reuse must copy.
func ParseEntries(data []byte, idSize int) ([]Entry, error) {
	engine := endian.GetBigEndianEngine()

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: entries payload shorter than count field", errs.ErrInvalidPayload)
	}

	count := engine.Uint32(data[0:4])
	data = data[4:]

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < idSize+4 {
			return nil, fmt.Errorf("%w: entry %d header truncated", errs.ErrInvalidPayload, i)
		}

		key := data[:idSize]
		payloadLen := engine.Uint32(data[idSize : idSize+4])
		data = data[idSize+4:]

		if uint32(len(data)) < payloadLen {
			return nil, fmt.Errorf("%w: entry %d payload truncated", errs.ErrInvalidPayload, i)
		}

		entries = append(entries, Entry{Key: key, Payload: data[:payloadLen]})
		data = data[payloadLen:]
	}

	if len(data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after last entry", errs.ErrInvalidPayload, len(data))
	}

	return entries, nil
}
