package section

import (
	"hash/crc32"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

// BlockHeader is the frame preceding every block payload.
//
// Layout:
//
//	byte  0      block type
//	byte  1      flags: bit 0 compressed, bit 1 last-of-stream, bit 2 wide IDs
//	byte  2      compression codec tag (present only if compressed)
//	4 bytes      uncompressed payload length (u32)
//	4 bytes      compressed payload length (u32; equals uncompressed if raw)
//	4 bytes      CRC32 (IEEE) of the compressed payload bytes
type BlockHeader struct {
	Type            format.BlockType
	Flags           uint8
	Codec           format.CompressionType
	UncompressedLen uint32
	CompressedLen   uint32
	CRC             uint32
}

// IsCompressed reports the compressed flag.
func (b *BlockHeader) IsCompressed() bool { return b.Flags&format.BlockFlagCompressed != 0 }

// IsLast reports the last-block-of-stream flag.
func (b *BlockHeader) IsLast() bool { return b.Flags&format.BlockFlagLast != 0 }

// HasWideIDs reports whether an ENTRIES payload carries 16-byte identifiers.
func (b *BlockHeader) HasWideIDs() bool { return b.Flags&format.BlockFlagWideID != 0 }

// FrameSize returns the encoded frame length: 15 bytes with a codec byte,
// 14 without.
func (b *BlockHeader) FrameSize() int {
	if b.IsCompressed() {
		return blockFrameCodec
	}

	return blockFrameBase
}

// Bytes serializes the block frame.
func (b *BlockHeader) Bytes() []byte {
	out := make([]byte, 2, b.FrameSize())
	out[0] = uint8(b.Type)
	out[1] = b.Flags
	if b.IsCompressed() {
		out = append(out, uint8(b.Codec))
	}

	engine := endian.GetBigEndianEngine()
	out = engine.AppendUint32(out, b.UncompressedLen)
	out = engine.AppendUint32(out, b.CompressedLen)
	out = engine.AppendUint32(out, b.CRC)

	return out
}

// ParsePrefix parses the fixed two-byte prefix and reports how many more
// bytes the rest of the frame occupies. Readers use it to issue exact-size
// reads without buffering.
func ParsePrefix(data []byte) (blockType format.BlockType, flags uint8, rest int, err error) {
	if len(data) < blockLengthsOffset {
		return 0, 0, 0, &errs.TruncationError{Want: blockLengthsOffset, Got: len(data)}
	}

	blockType = format.BlockType(data[0])
	flags = data[1]

	rest = blockFrameBase - blockLengthsOffset
	if flags&format.BlockFlagCompressed != 0 {
		rest = blockFrameCodec - blockLengthsOffset
	}

	switch blockType {
	case format.BlockEntries, format.BlockMetadata, format.BlockTOC:
	default:
		return 0, 0, 0, &errs.RangeError{Field: "block type", Value: int64(blockType), Min: 1, Max: 3}
	}

	return blockType, flags, rest, nil
}

// ParseRest completes a BlockHeader from the prefix fields and the remaining
// frame bytes returned by ParsePrefix.
func ParseRest(blockType format.BlockType, flags uint8, data []byte) (BlockHeader, error) {
	b := BlockHeader{Type: blockType, Flags: flags}

	want := blockFrameBase - blockLengthsOffset
	if b.IsCompressed() {
		want = blockFrameCodec - blockLengthsOffset
	}
	if len(data) < want {
		return BlockHeader{}, &errs.TruncationError{Want: want, Got: len(data)}
	}

	if b.IsCompressed() {
		b.Codec = format.CompressionType(data[0])
		data = data[1:]
	}

	engine := endian.GetBigEndianEngine()
	b.UncompressedLen = engine.Uint32(data[0:4])
	b.CompressedLen = engine.Uint32(data[4:8])
	b.CRC = engine.Uint32(data[8:12])

	if b.UncompressedLen > MaxPayloadSize || b.CompressedLen > MaxPayloadSize {
		return BlockHeader{}, &errs.RangeError{Field: "payload length", Value: int64(b.CompressedLen), Min: 0, Max: MaxPayloadSize}
	}

	return b, nil
}

// Checksum computes the CRC32 stored in block frames. The checksum covers
// the payload bytes exactly as they appear on disk (post-compression).
func Checksum(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}
