// Package errs defines the error taxonomy shared by all octaindex3d packages.
//
// Category sentinels support errors.Is checks; structured error types carry
// the offending values and unwrap to their category sentinel, so callers can
// match either the broad category or the concrete failure.
package errs

import "errors"

// Lattice and identifier errors.
var (
	ErrParity         = errors.New("coordinate parity violation")
	ErrRange          = errors.New("value out of range")
	ErrLod            = errors.New("invalid level of detail")
	ErrNoParent       = errors.New("no parent above LOD 0")
	ErrFrameNotFound  = errors.New("frame not registered")
	ErrFrameConflict  = errors.New("frame already registered with different descriptor")
	ErrBadChecksum    = errors.New("textual encoding checksum mismatch")
	ErrBadPrefix      = errors.New("unknown textual encoding prefix")
	ErrBadCharacter   = errors.New("illegal character in textual encoding")
	ErrWrongKind      = errors.New("identifier kind mismatch")
	ErrUnknownVersion = errors.New("unknown identifier version")
)

// Container errors.
var (
	ErrBadMagic           = errors.New("invalid container magic")
	ErrUnsupportedVersion = errors.New("unsupported container version")
	ErrCRCMismatch        = errors.New("block CRC mismatch")
	ErrTruncatedBlock     = errors.New("truncated block")
	ErrUnknownBlockType   = errors.New("unknown block type")
	ErrUnknownCodec       = errors.New("unknown compression codec")
	ErrDecompression      = errors.New("block decompression failed")
	ErrNoTOC              = errors.New("container has no table of contents")
	ErrNotStreaming       = errors.New("container is not a streaming container")
	ErrNotSeekable        = errors.New("source does not support seeking")
	ErrWriterFailed       = errors.New("writer is in failed state")
	ErrWriterClosed       = errors.New("writer is closed")
	ErrMixedIDWidth       = errors.New("mixed identifier widths in one block")
	ErrInvalidPayload     = errors.New("invalid block payload")
)

// Codec errors.
var (
	ErrCompressionFailed   = errors.New("compression failed")
	ErrDecompressionFailed = errors.New("decompression failed")
	ErrOutputTooSmall      = errors.New("output buffer too small")
)
