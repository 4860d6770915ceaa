package ident

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/funkite/octaindex3d/errs"
)

// Textual encoding: Bech32m with a type-identifying human-readable part.
// The HRP itself contains a "1"; the separator is the final "1" as in
// BIP-350, so the full form reads oi1-idx1<payload+checksum>. The payload is
// the identifier's big-endian byte form regrouped into 5-bit symbols. The
// alphabet and HRP set are part of the format contract.
const (
	hrpIndex64     = "oi1-idx"
	hrpRoute64     = "oi1-rte"
	hrpGalactic128 = "oi1-gal"
	hrpHilbert64   = "oi1-hlb"

	bech32Alphabet = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

// formatBytes renders raw identifier bytes under the given HRP. The inputs
// are fixed-size and pre-validated, so encoding cannot fail at runtime.
func formatBytes(hrp string, raw []byte) string {
	grouped, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return ""
	}

	s, err := bech32.EncodeM(hrp, grouped)
	if err != nil {
		return ""
	}

	return s
}

// Parse decodes any of the four textual identifier forms, dispatching on the
// HRP. The Bech32m checksum is verified before the payload is interpreted.
//
// Errors: ErrBadPrefix for an unknown or missing HRP, ErrBadCharacter for
// symbols outside the alphabet, ErrBadChecksum for a failed checksum or
// malformed payload.
func Parse(s string) (Identifier, error) {
	hrp, raw, err := decodeBytes(s)
	if err != nil {
		return nil, err
	}

	switch hrp {
	case hrpIndex64:
		return parse64(raw, func(v uint64) Identifier { return Index64(v) })
	case hrpRoute64:
		return parse64(raw, func(v uint64) Identifier { return Route64(v) })
	case hrpHilbert64:
		return parse64(raw, func(v uint64) Identifier { return Hilbert64(v) })
	case hrpGalactic128:
		if len(raw) != 16 {
			return nil, fmt.Errorf("%w: galactic payload is %d bytes, want 16", errs.ErrBadChecksum, len(raw))
		}

		g, err := Galactic128FromBytes(raw)
		if err != nil {
			return nil, err
		}

		return g, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrBadPrefix, hrp)
	}
}

// ParseIndex64 decodes an oi1-idx1... string.
func ParseIndex64(s string) (Index64, error) {
	id, err := parseKind(s, hrpIndex64)
	if err != nil {
		return 0, err
	}

	return id.(Index64), nil
}

// ParseRoute64 decodes an oi1-rte1... string.
func ParseRoute64(s string) (Route64, error) {
	id, err := parseKind(s, hrpRoute64)
	if err != nil {
		return 0, err
	}

	return id.(Route64), nil
}

// ParseGalactic128 decodes an oi1-gal1... string.
func ParseGalactic128(s string) (Galactic128, error) {
	id, err := parseKind(s, hrpGalactic128)
	if err != nil {
		return Galactic128{}, err
	}

	return id.(Galactic128), nil
}

// ParseHilbert64 decodes an oi1-hlb1... string.
func ParseHilbert64(s string) (Hilbert64, error) {
	id, err := parseKind(s, hrpHilbert64)
	if err != nil {
		return 0, err
	}

	return id.(Hilbert64), nil
}

func parseKind(s, wantHRP string) (Identifier, error) {
	sep := strings.LastIndexByte(s, '1')
	if sep <= 0 || s[:sep] != wantHRP {
		return nil, fmt.Errorf("%w: want %s", errs.ErrBadPrefix, wantHRP)
	}

	return Parse(s)
}

func parse64(raw []byte, build func(uint64) Identifier) (Identifier, error) {
	if len(raw) != 8 {
		return nil, fmt.Errorf("%w: payload is %d bytes, want 8", errs.ErrBadChecksum, len(raw))
	}

	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}

	return build(v), nil
}

func decodeBytes(s string) (string, []byte, error) {
	sep := strings.LastIndexByte(s, '1')
	if sep <= 0 || sep+1 >= len(s) {
		return "", nil, fmt.Errorf("%w: no separator", errs.ErrBadPrefix)
	}

	// Reject characters outside the alphabet before checksum verification so
	// transcription errors of this class are reported precisely.
	for _, c := range s[sep+1:] {
		if !strings.ContainsRune(bech32Alphabet, c) {
			return "", nil, fmt.Errorf("%w: %q", errs.ErrBadCharacter, c)
		}
	}

	hrp, grouped, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errs.ErrBadChecksum, err)
	}
	if version != bech32.VersionM {
		return "", nil, fmt.Errorf("%w: not bech32m", errs.ErrBadChecksum)
	}

	raw, err := bech32.ConvertBits(grouped, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errs.ErrBadChecksum, err)
	}

	return hrp, raw, nil
}
