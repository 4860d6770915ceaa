package container

import (
	"fmt"
	"io"
	"time"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
	"github.com/funkite/octaindex3d/ident"
	"github.com/funkite/octaindex3d/internal/options"
	"github.com/funkite/octaindex3d/internal/pool"
	"github.com/funkite/octaindex3d/section"
)

// writerState tracks the writer lifecycle:
// Open -> WritingBlock -> BlockClosed -> (WritingBlock | Closing) -> Closed,
// with Failed reachable from any state on a sink error.
type writerState uint8

const (
	stateOpen writerState = iota
	stateWritingBlock
	stateBlockClosed
	stateClosing
	stateClosed
	stateFailed
)

// blockWriter is the buffering core shared by both writer shapes.
type blockWriter struct {
	*writerConfig

	w      io.Writer
	header *section.Header

	state   writerState
	offset  uint64 // bytes written to the sink so far
	lastErr error

	// pending entries of the block being assembled
	pending     []section.Entry
	pendingSize int
	idSize      int // locked on first append; 0 until then

	metadata []section.MetadataPair
	toc      []section.TOCEntry

	lastFlush time.Time
}

func newBlockWriter(w io.Writer, header *section.Header, opts []Option) (*blockWriter, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	bw := &blockWriter{
		writerConfig: cfg,
		w:            w,
		header:       header,
		lastFlush:    time.Now(),
	}

	if err := bw.writeRaw(header.Bytes()); err != nil {
		return nil, err
	}

	return bw, nil
}

func (bw *blockWriter) checkWritable() error {
	switch bw.state {
	case stateFailed:
		return fmt.Errorf("%w: %v", errs.ErrWriterFailed, bw.lastErr)
	case stateClosing, stateClosed:
		return errs.ErrWriterClosed
	default:
		return nil
	}
}

// append buffers one entry, locking the identifier width on first use and
// emitting a block when the uncompressed threshold is reached.
func (bw *blockWriter) append(id ident.Identifier, payload []byte) error {
	if err := bw.checkWritable(); err != nil {
		return err
	}

	key := id.Bytes()
	if bw.idSize == 0 {
		bw.idSize = len(key)
	} else if bw.idSize != len(key) {
		return fmt.Errorf("%w: got %d-byte %s key in a block of %d-byte keys",
			errs.ErrMixedIDWidth, len(key), id.Kind(), bw.idSize)
	}

	// Copy the payload: the caller may reuse its buffer before the block is
	// emitted.
	p := make([]byte, len(payload))
	copy(p, payload)

	bw.pending = append(bw.pending, section.Entry{Key: key, Payload: p})
	bw.pendingSize += len(key) + 4 + len(p)
	bw.state = stateWritingBlock

	if bw.pendingSize >= bw.blockSize {
		return bw.flushEntries(false)
	}
	if bw.flushInterval > 0 && time.Since(bw.lastFlush) >= bw.flushInterval {
		return bw.flushEntries(false)
	}

	return nil
}

// setMetadata buffers an opaque key/value pair; pairs are written as a
// METADATA block during Close so they describe the finished container.
func (bw *blockWriter) setMetadata(key string, value []byte) error {
	if err := bw.checkWritable(); err != nil {
		return err
	}

	v := make([]byte, len(value))
	copy(v, value)
	bw.metadata = append(bw.metadata, section.MetadataPair{Key: key, Value: v})

	return nil
}

// flushEntries emits the pending entries as one ENTRIES block.
func (bw *blockWriter) flushEntries(last bool) error {
	if len(bw.pending) == 0 {
		return nil
	}

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	payload, err := section.AppendEntries(buf.Bytes(), bw.pending, bw.idSize)
	if err != nil {
		return err
	}

	flags := uint8(0)
	if bw.idSize == section.EntryWideIDSize {
		flags |= format.BlockFlagWideID
	}

	if err := bw.emitBlock(format.BlockEntries, flags, payload, last); err != nil {
		return err
	}

	bw.pending = bw.pending[:0]
	bw.pendingSize = 0
	bw.idSize = 0
	bw.state = stateBlockClosed
	bw.lastFlush = time.Now()

	return nil
}

func (bw *blockWriter) flushMetadata(last bool) error {
	if len(bw.metadata) == 0 {
		return nil
	}

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	payload, err := section.AppendMetadata(buf.Bytes(), bw.metadata)
	if err != nil {
		return err
	}

	if err := bw.emitBlock(format.BlockMetadata, 0, payload, last); err != nil {
		return err
	}

	bw.metadata = bw.metadata[:0]

	return nil
}

// emitBlock frames and writes one block: compress, checksum, frame, payload.
func (bw *blockWriter) emitBlock(blockType format.BlockType, flags uint8, payload []byte, last bool) error {
	onDisk := payload
	if bw.compression != format.CompressionNone {
		compressed, err := bw.codec.Compress(payload)
		if err != nil {
			return err
		}
		onDisk = compressed
		flags |= format.BlockFlagCompressed
	}
	if last {
		flags |= format.BlockFlagLast
	}

	bh := section.BlockHeader{
		Type:            blockType,
		Flags:           flags,
		Codec:           bw.compression,
		UncompressedLen: uint32(len(payload)),
		CompressedLen:   uint32(len(onDisk)),
		CRC:             section.Checksum(onDisk),
	}

	blockOffset := bw.offset
	if err := bw.writeRaw(bh.Bytes()); err != nil {
		return err
	}
	if err := bw.writeRaw(onDisk); err != nil {
		return err
	}

	bw.toc = append(bw.toc, section.TOCEntry{
		Offset: blockOffset,
		Length: uint32(bh.FrameSize()) + bh.CompressedLen,
		Type:   blockType,
	})

	return nil
}

// writeRaw writes to the sink, failing the writer on error.
func (bw *blockWriter) writeRaw(b []byte) error {
	n, err := bw.w.Write(b)
	bw.offset += uint64(n)
	if err != nil {
		bw.state = stateFailed
		bw.lastErr = &errs.IOError{Offset: bw.offset, Err: err}

		return bw.lastErr
	}

	return nil
}

// SequentialWriter writes a sequential container to a seekable sink and
// finalizes it with a TOC block. The writer owns the sink exclusively; it is
// not safe for concurrent use.
type SequentialWriter struct {
	bw   *blockWriter
	sink io.WriteSeeker
}

// NewSequentialWriter writes the container header and returns a writer ready
// for appends.
func NewSequentialWriter(sink io.WriteSeeker, opts ...Option) (*SequentialWriter, error) {
	header := section.NewHeader()

	bw, err := newBlockWriter(sink, header, opts)
	if err != nil {
		return nil, err
	}

	return &SequentialWriter{bw: bw, sink: sink}, nil
}

// Append buffers one identifier-keyed entry. Entries appear to readers in
// append order. All entries of one block must share an identifier width;
// the writer re-locks the width at each block boundary.
func (w *SequentialWriter) Append(id ident.Identifier, payload []byte) error {
	return w.bw.append(id, payload)
}

// SetMetadata buffers an opaque key/value pair, written as a METADATA block
// during Close.
func (w *SequentialWriter) SetMetadata(key string, value []byte) error {
	return w.bw.setMetadata(key, value)
}

// Flush emits any pending entries as a block without closing the writer.
func (w *SequentialWriter) Flush() error {
	if err := w.bw.checkWritable(); err != nil {
		return err
	}

	return w.bw.flushEntries(false)
}

// Close flushes pending entries and metadata, emits the TOC block, and
// back-patches the header's has-TOC flag. The container is complete only if
// Close returns nil; partial writes recover up to the last valid block.
//
// On a writer already failed, Close returns the recorded error without
// touching the sink further.
func (w *SequentialWriter) Close() error {
	bw := w.bw

	switch bw.state {
	case stateClosed:
		return errs.ErrWriterClosed
	case stateFailed:
		return fmt.Errorf("%w: %v", errs.ErrWriterFailed, bw.lastErr)
	}

	bw.state = stateClosing

	if err := bw.flushEntries(false); err != nil {
		return err
	}
	if err := bw.flushMetadata(false); err != nil {
		return err
	}

	buf := pool.GetBlockBuffer()
	tocPayload := section.AppendTOC(buf.Bytes(), bw.toc)
	err := bw.emitBlock(format.BlockTOC, 0, tocPayload, true)
	pool.PutBlockBuffer(buf)
	if err != nil {
		return err
	}

	// Back-patch the header now that the TOC exists.
	bw.header.Flags |= format.FlagHasTOC
	if _, err := w.sink.Seek(0, io.SeekStart); err != nil {
		bw.state = stateFailed
		bw.lastErr = &errs.IOError{Offset: 0, Err: err}

		return bw.lastErr
	}
	if _, err := w.sink.Write(bw.header.Bytes()); err != nil {
		bw.state = stateFailed
		bw.lastErr = &errs.IOError{Offset: 0, Err: err}

		return bw.lastErr
	}
	if _, err := w.sink.Seek(int64(bw.offset), io.SeekStart); err != nil {
		bw.state = stateFailed
		bw.lastErr = &errs.IOError{Offset: bw.offset, Err: err}

		return bw.lastErr
	}

	bw.state = stateClosed

	return nil
}

// StreamingWriter writes a streaming container to a plain writer: same block
// format, no TOC, flush-aligned block boundaries, and a stream ID in the
// header. The final block carries the last-block-of-stream flag.
type StreamingWriter struct {
	bw *blockWriter
}

// NewStreamingWriter writes the streaming header and returns a writer.
//
// The stream ID is drawn from wall-clock nanoseconds; clocks before the Unix
// epoch clamp to zero rather than failing.
func NewStreamingWriter(sink io.Writer, opts ...Option) (*StreamingWriter, error) {
	header := section.NewHeader()
	header.Flags = format.FlagStreaming
	header.StreamID = streamID(time.Now())

	bw, err := newBlockWriter(sink, header, opts)
	if err != nil {
		return nil, err
	}

	return &StreamingWriter{bw: bw}, nil
}

// StreamID returns the stream identifier stamped into the header.
func (w *StreamingWriter) StreamID() uint64 { return w.bw.header.StreamID }

// Append buffers one identifier-keyed entry, emitting a block when the size
// threshold or the configured flush interval is reached.
func (w *StreamingWriter) Append(id ident.Identifier, payload []byte) error {
	return w.bw.append(id, payload)
}

// SetMetadata buffers an opaque key/value pair, written as a METADATA block
// during Close.
func (w *StreamingWriter) SetMetadata(key string, value []byte) error {
	return w.bw.setMetadata(key, value)
}

// Flush emits any pending entries as a block. Flush boundaries are the
// durability unit of a stream: everything up to the last flushed block is
// recoverable after a crash.
func (w *StreamingWriter) Flush() error {
	if err := w.bw.checkWritable(); err != nil {
		return err
	}

	return w.bw.flushEntries(false)
}

// Close flushes pending data and sets the last-block-of-stream flag on the
// final block. It never seeks back to the header.
func (w *StreamingWriter) Close() error {
	bw := w.bw

	switch bw.state {
	case stateClosed:
		return errs.ErrWriterClosed
	case stateFailed:
		return fmt.Errorf("%w: %v", errs.ErrWriterFailed, bw.lastErr)
	}

	bw.state = stateClosing

	switch {
	case len(bw.pending) > 0 || len(bw.metadata) > 0:
		if err := bw.flushEntries(len(bw.metadata) == 0); err != nil {
			return err
		}
		if err := bw.flushMetadata(true); err != nil {
			return err
		}
	case len(bw.toc) > 0:
		// Every block is already on the wire; emit an empty terminator so
		// the stream still ends with a last-flagged block.
		payload, _ := section.AppendEntries(nil, nil, section.EntrySlimIDSize)
		if err := bw.emitBlock(format.BlockEntries, 0, payload, true); err != nil {
			return err
		}
	}

	bw.state = stateClosed

	return nil
}

// streamID converts a wall-clock reading into a header stream ID, clamping
// pre-epoch clocks to zero.
func streamID(t time.Time) uint64 {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}

	return uint64(ns)
}
