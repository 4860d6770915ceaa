package section

import (
	"fmt"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

// TOCEntry locates one block of a sequential container: the byte offset of
// its frame, the total on-disk length (frame plus payload), and its type.
type TOCEntry struct {
	Offset uint64
	Length uint32
	Type   format.BlockType
}

// AppendTOC serializes entries into dst and returns the extended slice.
//
// Wire layout: u32 entry count, then per entry a u64 offset, u32 length and
// u8 block type.
func AppendTOC(dst []byte, entries []TOCEntry) []byte {
	engine := endian.GetBigEndianEngine()
	dst = engine.AppendUint32(dst, uint32(len(entries)))

	for _, e := range entries {
		dst = engine.AppendUint64(dst, e.Offset)
		dst = engine.AppendUint32(dst, e.Length)
		dst = append(dst, uint8(e.Type))
	}

	return dst
}

// ParseTOC decodes a TOC payload.
func ParseTOC(data []byte) ([]TOCEntry, error) {
	engine := endian.GetBigEndianEngine()

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: toc payload shorter than count field", errs.ErrInvalidPayload)
	}

	count := engine.Uint32(data[0:4])
	data = data[4:]

	if uint64(len(data)) != uint64(count)*TOCEntrySize {
		return nil, fmt.Errorf("%w: toc payload is %d bytes, want %d entries of %d", errs.ErrInvalidPayload, len(data), count, TOCEntrySize)
	}

	entries := make([]TOCEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		entries = append(entries, TOCEntry{
			Offset: engine.Uint64(data[0:8]),
			Length: engine.Uint32(data[8:12]),
			Type:   format.BlockType(data[12]),
		})
		data = data[TOCEntrySize:]
	}

	return entries, nil
}
