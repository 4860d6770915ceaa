package ident

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
)

func mustConvertBits(t *testing.T, raw []byte) []byte {
	t.Helper()

	grouped, err := bech32.ConvertBits(raw, 8, 5, true)
	require.NoError(t, err)

	return grouped
}

func TestTextualRoundTrip(t *testing.T) {
	idx, err := EncodeIndex64(100, 100, 0, 10)
	require.NoError(t, err)

	rte, err := NewRoute64(2, -10, 10, 0)
	require.NoError(t, err)

	gal, err := EncodeGalactic128(3, 42, 1000, 1000, 0)
	require.NoError(t, err)

	hlb, err := EncodeHilbert64(-100, 100, 0, 8)
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     Identifier
		prefix string
	}{
		{"index64", idx, "oi1-idx1"},
		{"route64", rte, "oi1-rte1"},
		{"galactic128", gal, "oi1-gal1"},
		{"hilbert64", hlb, "oi1-hlb1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.id.(interface{ String() string }).String()
			require.True(t, strings.HasPrefix(s, tt.prefix), "got %q", s)
			require.Equal(t, strings.ToLower(s), s, "textual form is lowercase")

			back, err := Parse(s)
			require.NoError(t, err)
			require.Equal(t, tt.id, back)
		})
	}
}

func TestTypedParsers(t *testing.T) {
	idx, err := EncodeIndex64(2, 2, 0, 3)
	require.NoError(t, err)

	got, err := ParseIndex64(idx.String())
	require.NoError(t, err)
	require.Equal(t, idx, got)

	// A typed parser rejects another type's textual form.
	rte, err := NewRoute64(1, 2, 2, 0)
	require.NoError(t, err)

	_, err = ParseIndex64(rte.String())
	require.ErrorIs(t, err, errs.ErrBadPrefix)

	gal, err := EncodeGalactic128(0, 1, 2, 0, 0)
	require.NoError(t, err)

	gotGal, err := ParseGalactic128(gal.String())
	require.NoError(t, err)
	require.Equal(t, gal, gotGal)

	hlb, err := EncodeHilbert64(2, 2, 0, 3)
	require.NoError(t, err)

	gotHlb, err := ParseHilbert64(hlb.String())
	require.NoError(t, err)
	require.Equal(t, hlb, gotHlb)

	gotRte, err := ParseRoute64(rte.String())
	require.NoError(t, err)
	require.Equal(t, rte, gotRte)
}

func TestParseRejectsCorruption(t *testing.T) {
	idx, err := EncodeIndex64(100, 100, 0, 10)
	require.NoError(t, err)

	s := idx.String()
	sep := strings.LastIndexByte(s, '1')

	// Substitute every payload character in turn with a different alphabet
	// symbol; the checksum must catch each single-character substitution.
	for pos := sep + 1; pos < len(s); pos++ {
		for _, repl := range bech32Alphabet {
			if byte(repl) == s[pos] {
				continue
			}

			mutated := s[:pos] + string(repl) + s[pos+1:]
			_, err := Parse(mutated)
			require.ErrorIs(t, err, errs.ErrBadChecksum, "substitution at %d accepted", pos)

			break // one substitution per position keeps the sweep fast
		}
	}
}

func TestParseErrorTaxonomy(t *testing.T) {
	idx, err := EncodeIndex64(2, 0, 0, 1)
	require.NoError(t, err)
	s := idx.String()

	// A checksum-valid string under an unknown HRP is a prefix error, not a
	// checksum error.
	unknown, err := bech32.EncodeM("oi1-xyz", mustConvertBits(t, idx.Bytes()))
	require.NoError(t, err)

	_, err = Parse(unknown)
	require.ErrorIs(t, err, errs.ErrBadPrefix)

	_, err = Parse("no-separator")
	require.ErrorIs(t, err, errs.ErrBadPrefix)

	// 'b' is excluded from the alphabet.
	_, err = Parse(s[:len(s)-1] + "b")
	require.ErrorIs(t, err, errs.ErrBadCharacter)

	for _, banned := range []string{"b", "i", "o"} {
		require.False(t, strings.Contains(bech32Alphabet, banned))
	}
}
