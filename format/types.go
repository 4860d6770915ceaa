package format

type (
	BlockType       uint8
	CompressionType uint8
	IdentifierKind  uint8
)

const (
	// Magic occupies the first four header bytes of every container.
	// Readers accept any version up to FormatVersion.
	Magic         = "OCT3"
	FormatVersion = uint16(1)

	// Container header flags (u16, big-endian).
	FlagStreaming = uint16(1 << 0) // header describes a streaming container
	FlagHasTOC    = uint16(1 << 1) // a TOC block terminates the container

	// Block frame flags (u8).
	BlockFlagCompressed = uint8(1 << 0) // payload is compressed, codec byte follows
	BlockFlagLast       = uint8(1 << 1) // final block of a stream
	BlockFlagWideID     = uint8(1 << 2) // ENTRIES identifiers are 16 bytes

	BlockEntries  BlockType = 0x1 // BlockEntries holds identifier-keyed payloads.
	BlockMetadata BlockType = 0x2 // BlockMetadata holds opaque key/value pairs.
	BlockTOC      BlockType = 0x3 // BlockTOC lists offsets of preceding blocks.

	CompressionNone CompressionType = 0x0 // CompressionNone represents no compression.
	CompressionLZ4  CompressionType = 0x1 // CompressionLZ4 represents LZ4 frame compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.

	KindIndex64     IdentifierKind = 0x1 // KindIndex64 is the Morton-ordered in-memory key.
	KindRoute64     IdentifierKind = 0x2 // KindRoute64 is the packed routing key.
	KindGalactic128 IdentifierKind = 0x3 // KindGalactic128 is the frame-scoped archival key.
	KindHilbert64   IdentifierKind = 0x4 // KindHilbert64 is the Hilbert-ordered key.
)

func (b BlockType) String() string {
	switch b {
	case BlockEntries:
		return "Entries"
	case BlockMetadata:
		return "Metadata"
	case BlockTOC:
		return "TOC"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

func (k IdentifierKind) String() string {
	switch k {
	case KindIndex64:
		return "Index64"
	case KindRoute64:
		return "Route64"
	case KindGalactic128:
		return "Galactic128"
	case KindHilbert64:
		return "Hilbert64"
	default:
		return "Unknown"
	}
}
