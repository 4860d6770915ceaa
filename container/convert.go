package container

import (
	"io"

	"github.com/funkite/octaindex3d/compress"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/internal/pool"
	"github.com/funkite/octaindex3d/section"
)

// ConvertStream rewrites a streaming container as a sequential container
// with a table of contents.
//
// Blocks are copied one by one with their original codec: each block is read
// back decompressed and, if it was compressed, compressed again with the same
// codec, with its compressed length and checksum recomputed.
// The last-block-of-stream flag is cleared, the stream ID is dropped, and a
// TOC covering every copied block is appended.
func ConvertStream(src io.Reader, dst io.WriteSeeker) error {
	reader, err := Open(src)
	if err != nil {
		return err
	}
	if !reader.IsStreaming() {
		return errs.ErrNotStreaming
	}

	header := section.NewHeader()
	header.Flags = format.FlagHasTOC

	offset := uint64(0)
	write := func(b []byte) error {
		n, werr := dst.Write(b)
		offset += uint64(n)
		if werr != nil {
			return &errs.IOError{Offset: offset, Err: werr}
		}

		return nil
	}

	if err := write(header.Bytes()); err != nil {
		return err
	}

	var toc []section.TOCEntry
	for blk, err := range reader.Blocks() {
		if err != nil {
			return err
		}

		bh := blk.Header
		bh.Flags &^= format.BlockFlagLast

		// Re-frame with the on-disk payload form the source used.
		onDisk := blk.Payload
		if bh.IsCompressed() {
			// Blocks() hands back the decompressed payload; recompress with
			// the recorded codec so the copy round-trips bit-compatibly.
			codec, cerr := compress.GetCodec(bh.Codec)
			if cerr != nil {
				return cerr
			}
			onDisk, cerr = codec.Compress(blk.Payload)
			if cerr != nil {
				return cerr
			}
			bh.CompressedLen = uint32(len(onDisk))
			bh.CRC = section.Checksum(onDisk)
		}

		blockOffset := offset
		if err := write(bh.Bytes()); err != nil {
			return err
		}
		if err := write(onDisk); err != nil {
			return err
		}

		toc = append(toc, section.TOCEntry{
			Offset: blockOffset,
			Length: uint32(bh.FrameSize()) + bh.CompressedLen,
			Type:   bh.Type,
		})
	}

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	tocPayload := section.AppendTOC(buf.Bytes(), toc)
	bh := section.BlockHeader{
		Type:            format.BlockTOC,
		UncompressedLen: uint32(len(tocPayload)),
		CompressedLen:   uint32(len(tocPayload)),
		CRC:             section.Checksum(tocPayload),
	}
	if err := write(bh.Bytes()); err != nil {
		return err
	}
	if err := write(tocPayload); err != nil {
		return err
	}

	return nil
}
