package container

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/funkite/octaindex3d/compress"
	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/section"
)

// Block is one decoded container block: its file offset, its frame, and the
// decompressed payload.
type Block struct {
	Offset  uint64
	Header  section.BlockHeader
	Payload []byte
}

// Entry is one identifier-keyed record yielded by the entry iterators. Key
// holds the identifier's big-endian bytes; Wide distinguishes 16-byte
// Galactic128 keys from the 8-byte types.
type Entry struct {
	Key     []byte
	Payload []byte
	Wide    bool
}

// Failure records where and why a scan stopped. Offset is the byte offset of
// the block frame that failed validation; everything before it decoded
// cleanly and everything after it is treated as potentially corrupted.
type Failure struct {
	Offset    uint64
	BlockType format.BlockType
	Err       error
}

// Reader reads sequential and streaming containers.
//
// Block and entry iteration work over any io.Reader; TOC random access and
// the recovery rescan additionally require io.ReadSeeker. The reader owns
// its source exclusively.
type Reader struct {
	r      io.Reader
	seeker io.ReadSeeker // nil when the source cannot seek

	header  section.Header
	offset  uint64
	failure *Failure
}

// Open reads and validates the 32-byte container header.
//
// Fatal errors: ErrBadMagic, ErrUnsupportedVersion. The returned reader is
// positioned at the first block.
func Open(r io.Reader) (*Reader, error) {
	var buf [section.HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("%w: container header: %v", errs.ErrTruncatedBlock, err)
	}

	rd := &Reader{r: r, offset: section.HeaderSize}
	if s, ok := r.(io.ReadSeeker); ok {
		rd.seeker = s
	}

	if err := rd.header.Parse(buf[:]); err != nil {
		return nil, err
	}

	return rd, nil
}

// Header returns the parsed container header.
func (r *Reader) Header() section.Header { return r.header }

// IsStreaming reports whether the source is a streaming container.
func (r *Reader) IsStreaming() bool { return r.header.IsStreaming() }

// Failure returns where iteration stopped, or nil while no integrity
// failure has been observed.
func (r *Reader) Failure() *Failure { return r.failure }

// Blocks iterates blocks in file order, validating each CRC and
// decompressing payloads.
//
// On the first integrity failure the iterator yields the error once and
// stops; the failure point stays available through Failure. A clean EOF ends
// iteration without an error.
func (r *Reader) Blocks() iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		for {
			blk, err := r.nextBlock()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(Block{}, err)

				return
			}

			if !yield(blk, nil) {
				return
			}

			if blk.Header.IsLast() {
				return
			}
		}
	}
}

// Entries iterates the records of every ENTRIES block in write order.
// Metadata and TOC blocks are skipped. Entry slices alias per-block buffers
// that remain valid for the whole iteration.
func (r *Reader) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for blk, err := range r.Blocks() {
			if err != nil {
				yield(Entry{}, err)

				return
			}
			if blk.Header.Type != format.BlockEntries {
				continue
			}

			idSize := section.EntrySlimIDSize
			if blk.Header.HasWideIDs() {
				idSize = section.EntryWideIDSize
			}

			parsed, err := section.ParseEntries(blk.Payload, idSize)
			if err != nil {
				r.fail(blk.Offset, blk.Header.Type, err)
				yield(Entry{}, err)

				return
			}

			for _, e := range parsed {
				if !yield(Entry{Key: e.Key, Payload: e.Payload, Wide: idSize == section.EntryWideIDSize}, nil) {
					return
				}
			}
		}
	}
}

// Metadata collects the key/value pairs of every METADATA block.
func (r *Reader) Metadata() ([]section.MetadataPair, error) {
	var pairs []section.MetadataPair
	for blk, err := range r.Blocks() {
		if err != nil {
			return pairs, err
		}
		if blk.Header.Type != format.BlockMetadata {
			continue
		}

		parsed, err := section.ParseMetadata(blk.Payload)
		if err != nil {
			return pairs, err
		}
		pairs = append(pairs, parsed...)
	}

	return pairs, nil
}

// Recovered rescans the container from the start and returns every entry
// that precedes the first integrity failure, together with the failure
// point. A container that scans cleanly returns a nil Failure.
//
// The source must support seeking.
func (r *Reader) Recovered() ([]Entry, *Failure, error) {
	if r.seeker == nil {
		return nil, nil, errs.ErrNotSeekable
	}
	if err := r.rewind(); err != nil {
		return nil, nil, err
	}

	var entries []Entry
	for e, err := range r.Entries() {
		if err != nil {
			break
		}
		// Copy out: recovered entries outlive the scan buffers.
		entry := Entry{
			Key:     append([]byte(nil), e.Key...),
			Payload: append([]byte(nil), e.Payload...),
			Wide:    e.Wide,
		}
		entries = append(entries, entry)
	}

	return entries, r.failure, nil
}

// TOC locates and parses the table-of-contents block of a sequential
// container. The source must support seeking and the header must carry the
// has-TOC flag.
func (r *Reader) TOC() ([]section.TOCEntry, error) {
	if r.seeker == nil {
		return nil, errs.ErrNotSeekable
	}
	if !r.header.HasTOC() {
		return nil, errs.ErrNoTOC
	}
	if err := r.rewind(); err != nil {
		return nil, err
	}

	// The TOC is the final block; skip over payloads to reach it.
	var toc []section.TOCEntry
	for {
		blk, err := r.skipBlock()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}
		if blk.Type != format.BlockTOC {
			continue
		}

		full, err := r.blockAt(section.TOCEntry{Offset: blk.offset, Type: blk.Type})
		if err != nil {
			return nil, err
		}

		toc, err = section.ParseTOC(full.Payload)
		if err != nil {
			return nil, err
		}
	}

	if toc == nil {
		return nil, errs.ErrNoTOC
	}

	return toc, nil
}

// BlockAt seeks to a TOC-listed block and decodes it without reading any
// preceding blocks.
func (r *Reader) BlockAt(entry section.TOCEntry) (Block, error) {
	if r.seeker == nil {
		return Block{}, errs.ErrNotSeekable
	}

	return r.blockAt(entry)
}

// EntriesAt decodes the records of a TOC-listed ENTRIES block.
func (r *Reader) EntriesAt(entry section.TOCEntry) ([]Entry, error) {
	if entry.Type != format.BlockEntries {
		return nil, fmt.Errorf("%w: block at offset %d is %s", errs.ErrUnknownBlockType, entry.Offset, entry.Type)
	}

	blk, err := r.BlockAt(entry)
	if err != nil {
		return nil, err
	}

	idSize := section.EntrySlimIDSize
	if blk.Header.HasWideIDs() {
		idSize = section.EntryWideIDSize
	}

	parsed, err := section.ParseEntries(blk.Payload, idSize)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, len(parsed))
	for i, e := range parsed {
		out[i] = Entry{Key: e.Key, Payload: e.Payload, Wide: idSize == section.EntryWideIDSize}
	}

	return out, nil
}

// nextBlock reads, validates and decompresses the block at the current
// offset. io.EOF at a block boundary means a clean end of file.
func (r *Reader) nextBlock() (Block, error) {
	blockOffset := r.offset

	var prefix [2]byte
	n, err := io.ReadFull(r.r, prefix[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return Block{}, io.EOF
		}

		return Block{}, r.fail(blockOffset, 0, &errs.TruncationError{Offset: blockOffset, Want: 2, Got: n})
	}
	r.offset += uint64(n)

	blockType, flags, restLen, err := section.ParsePrefix(prefix[:])
	if err != nil {
		return Block{}, r.fail(blockOffset, blockType, err)
	}

	rest := make([]byte, restLen)
	n, err = io.ReadFull(r.r, rest)
	r.offset += uint64(n)
	if err != nil {
		return Block{}, r.fail(blockOffset, blockType, &errs.TruncationError{Offset: blockOffset, Want: restLen, Got: n})
	}

	bh, err := section.ParseRest(blockType, flags, rest)
	if err != nil {
		return Block{}, r.fail(blockOffset, blockType, err)
	}

	onDisk := make([]byte, bh.CompressedLen)
	n, err = io.ReadFull(r.r, onDisk)
	r.offset += uint64(n)
	if err != nil {
		return Block{}, r.fail(blockOffset, blockType, &errs.TruncationError{Offset: blockOffset, Want: int(bh.CompressedLen), Got: n})
	}

	if actual := section.Checksum(onDisk); actual != bh.CRC {
		return Block{}, r.fail(blockOffset, blockType, &errs.CRCError{Offset: blockOffset, Stored: bh.CRC, Actual: actual})
	}

	payload := onDisk
	if bh.IsCompressed() {
		codec, err := compress.GetCodec(bh.Codec)
		if err != nil {
			return Block{}, r.fail(blockOffset, blockType, err)
		}

		payload, err = codec.Decompress(onDisk)
		if err != nil {
			return Block{}, r.fail(blockOffset, blockType, err)
		}
		if uint32(len(payload)) != bh.UncompressedLen {
			return Block{}, r.fail(blockOffset, blockType, fmt.Errorf("%w: decompressed to %d bytes, frame says %d",
				errs.ErrDecompression, len(payload), bh.UncompressedLen))
		}
	}

	return Block{Offset: blockOffset, Header: bh, Payload: payload}, nil
}

// skippedBlock is the frame summary produced by skipBlock.
type skippedBlock struct {
	offset uint64
	Type   format.BlockType
}

// skipBlock reads one block frame and seeks over its payload.
func (r *Reader) skipBlock() (skippedBlock, error) {
	blockOffset := r.offset

	var prefix [2]byte
	n, err := io.ReadFull(r.r, prefix[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return skippedBlock{}, io.EOF
		}

		return skippedBlock{}, &errs.TruncationError{Offset: blockOffset, Want: 2, Got: n}
	}
	r.offset += uint64(n)

	blockType, flags, restLen, err := section.ParsePrefix(prefix[:])
	if err != nil {
		return skippedBlock{}, err
	}

	rest := make([]byte, restLen)
	n, err = io.ReadFull(r.r, rest)
	r.offset += uint64(n)
	if err != nil {
		return skippedBlock{}, &errs.TruncationError{Offset: blockOffset, Want: restLen, Got: n}
	}

	bh, err := section.ParseRest(blockType, flags, rest)
	if err != nil {
		return skippedBlock{}, err
	}

	if _, err := r.seeker.Seek(int64(bh.CompressedLen), io.SeekCurrent); err != nil {
		return skippedBlock{}, &errs.IOError{Offset: r.offset, Err: err}
	}
	r.offset += uint64(bh.CompressedLen)

	return skippedBlock{offset: blockOffset, Type: blockType}, nil
}

func (r *Reader) blockAt(entry section.TOCEntry) (Block, error) {
	if _, err := r.seeker.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return Block{}, &errs.IOError{Offset: entry.Offset, Err: err}
	}
	r.offset = entry.Offset

	return r.nextBlock()
}

func (r *Reader) rewind() error {
	if _, err := r.seeker.Seek(section.HeaderSize, io.SeekStart); err != nil {
		return &errs.IOError{Offset: section.HeaderSize, Err: err}
	}
	r.offset = section.HeaderSize
	r.failure = nil

	return nil
}

// fail records the first failure point and returns err.
func (r *Reader) fail(offset uint64, blockType format.BlockType, err error) error {
	if r.failure == nil {
		r.failure = &Failure{Offset: offset, BlockType: blockType, Err: err}
	}

	return err
}
