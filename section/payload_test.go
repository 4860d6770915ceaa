package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
	"github.com/funkite/octaindex3d/format"
)

func TestEntriesRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: []byte{0, 0, 0, 0, 0, 0, 0, 1}, Payload: []byte("alpha")},
		{Key: []byte{0, 0, 0, 0, 0, 0, 0, 2}, Payload: nil},
		{Key: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, Payload: []byte{0x00, 0x01, 0x02}},
	}

	payload, err := AppendEntries(nil, entries, EntrySlimIDSize)
	require.NoError(t, err)

	parsed, err := ParseEntries(payload, EntrySlimIDSize)
	require.NoError(t, err)
	require.Len(t, parsed, len(entries))

	for i := range entries {
		require.Equal(t, entries[i].Key, parsed[i].Key)
		require.Equal(t, len(entries[i].Payload), len(parsed[i].Payload))
		require.Equal(t, append([]byte{}, entries[i].Payload...), append([]byte{}, parsed[i].Payload...))
	}
}

func TestEntriesWideIdentifiers(t *testing.T) {
	wide := make([]byte, EntryWideIDSize)
	wide[0] = 0x01

	payload, err := AppendEntries(nil, []Entry{{Key: wide, Payload: []byte("g")}}, EntryWideIDSize)
	require.NoError(t, err)

	parsed, err := ParseEntries(payload, EntryWideIDSize)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, wide, parsed[0].Key)
}

func TestEntriesRejectsMixedWidth(t *testing.T) {
	entries := []Entry{
		{Key: make([]byte, EntrySlimIDSize)},
		{Key: make([]byte, EntryWideIDSize)},
	}

	_, err := AppendEntries(nil, entries, EntrySlimIDSize)
	require.ErrorIs(t, err, errs.ErrMixedIDWidth)
}

func TestEntriesEmptyPayload(t *testing.T) {
	payload, err := AppendEntries(nil, nil, EntrySlimIDSize)
	require.NoError(t, err)

	parsed, err := ParseEntries(payload, EntrySlimIDSize)
	require.NoError(t, err)
	require.Empty(t, parsed)
}

func TestEntriesTruncation(t *testing.T) {
	entries := []Entry{{Key: make([]byte, EntrySlimIDSize), Payload: []byte("data")}}

	payload, err := AppendEntries(nil, entries, EntrySlimIDSize)
	require.NoError(t, err)

	for cut := 1; cut < len(payload); cut++ {
		_, err := ParseEntries(payload[:len(payload)-cut], EntrySlimIDSize)
		require.ErrorIs(t, err, errs.ErrInvalidPayload, "cut %d bytes", cut)
	}

	_, err = ParseEntries(payload[:2], EntrySlimIDSize)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestEntriesTrailingGarbage(t *testing.T) {
	payload, err := AppendEntries(nil, []Entry{{Key: make([]byte, 8)}}, EntrySlimIDSize)
	require.NoError(t, err)

	_, err = ParseEntries(append(payload, 0xAA), EntrySlimIDSize)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestMetadataRoundTrip(t *testing.T) {
	pairs := []MetadataPair{
		{Key: "sensor", Value: []byte("lidar-front")},
		{Key: "origin", Value: []byte{0x01, 0x00}},
		{Key: "empty", Value: nil},
	}

	payload, err := AppendMetadata(nil, pairs)
	require.NoError(t, err)

	parsed, err := ParseMetadata(payload)
	require.NoError(t, err)
	require.Len(t, parsed, len(pairs))
	for i := range pairs {
		require.Equal(t, pairs[i].Key, parsed[i].Key)
		require.Equal(t, len(pairs[i].Value), len(parsed[i].Value))
	}
}

func TestMetadataTruncation(t *testing.T) {
	payload, err := AppendMetadata(nil, []MetadataPair{{Key: "k", Value: []byte("v")}})
	require.NoError(t, err)

	_, err = ParseMetadata(payload[:len(payload)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestTOCRoundTrip(t *testing.T) {
	entries := []TOCEntry{
		{Offset: 32, Length: 1024, Type: format.BlockEntries},
		{Offset: 1056, Length: 128, Type: format.BlockMetadata},
		{Offset: 1184, Length: 64, Type: format.BlockEntries},
	}

	payload := AppendTOC(nil, entries)
	require.Len(t, payload, 4+len(entries)*TOCEntrySize)

	parsed, err := ParseTOC(payload)
	require.NoError(t, err)
	require.Equal(t, entries, parsed)
}

func TestTOCRejectsSizeMismatch(t *testing.T) {
	payload := AppendTOC(nil, []TOCEntry{{Offset: 32, Length: 10, Type: format.BlockEntries}})

	_, err := ParseTOC(payload[:len(payload)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	_, err = ParseTOC(append(payload, 0x00))
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}
