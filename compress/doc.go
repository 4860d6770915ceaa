// Package compress provides the pluggable per-block compression codecs of
// the container format: identity, LZ4 (frame format), and Zstandard.
//
// Codec selection is per-block; the chosen codec's wire tag is recorded in
// the block frame, so readers pick the matching decompressor without any
// out-of-band configuration. All codecs are safe for concurrent use and pool
// their internal state.
package compress
