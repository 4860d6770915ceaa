// Package container implements the persistent identifier-keyed cell store:
// an append-only binary format with a magic header, CRC-protected typed
// blocks, optional per-block compression, and a crash-recovery scan.
//
// Two writer shapes exist. SequentialWriter targets seekable sinks and
// finalizes with a table-of-contents block for random access; its Close
// back-patches the header's has-TOC flag. StreamingWriter targets plain
// writers (pipes, sockets), stamps a stream ID into the header, and marks
// the final block instead of writing a TOC. Reader handles both shapes,
// stops at the first integrity failure, and exposes everything decoded
// before that point together with the failure offset.
//
// Writers and readers are exclusive owners of their sinks and are not safe
// for concurrent use; parallel work operates on disjoint containers.
package container
