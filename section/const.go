package section

const (
	// HeaderSize is the fixed container header size in bytes.
	HeaderSize = 32

	// Block frame field sizes. The codec byte is present only when the
	// compressed flag is set, so a frame is 14 or 15 bytes.
	blockFrameBase     = 14
	blockFrameCodec    = 15
	blockLengthsOffset = 2 // offset of the length/CRC triple without codec byte

	// EntrySlimIDSize and EntryWideIDSize are the two identifier widths an
	// ENTRIES block can carry; the width is uniform within a block and
	// recorded in the block flags.
	EntrySlimIDSize = 8
	EntryWideIDSize = 16

	// TOCEntrySize is the wire size of one table-of-contents entry:
	// u64 offset, u32 length, u8 block type.
	TOCEntrySize = 13

	// MaxPayloadSize bounds a single block payload. Guards length fields
	// against corrupt frames before any allocation happens.
	MaxPayloadSize = 1 << 30
)
