package section

import (
	"fmt"
	"math"

	"github.com/funkite/octaindex3d/endian"
	"github.com/funkite/octaindex3d/errs"
)

// MetadataPair is one opaque key/value record of a METADATA payload.
type MetadataPair struct {
	Key   string
	Value []byte
}

// AppendMetadata serializes pairs into dst and returns the extended slice.
//
// Wire layout: u32 pair count, then per pair a u16 key length, the key
// bytes, a u32 value length, and the value bytes.
func AppendMetadata(dst []byte, pairs []MetadataPair) ([]byte, error) {
	engine := endian.GetBigEndianEngine()
	dst = engine.AppendUint32(dst, uint32(len(pairs)))

	for i := range pairs {
		p := &pairs[i]
		if len(p.Key) > math.MaxUint16 {
			return nil, &errs.RangeError{Field: "metadata key length", Value: int64(len(p.Key)), Min: 0, Max: math.MaxUint16}
		}

		dst = engine.AppendUint16(dst, uint16(len(p.Key)))
		dst = append(dst, p.Key...)
		dst = engine.AppendUint32(dst, uint32(len(p.Value)))
		dst = append(dst, p.Value...)
	}

	return dst, nil
}

// ParseMetadata decodes a METADATA payload. Values alias data.
func ParseMetadata(data []byte) ([]MetadataPair, error) {
	engine := endian.GetBigEndianEngine()

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: metadata payload shorter than count field", errs.ErrInvalidPayload)
	}

	count := engine.Uint32(data[0:4])
	data = data[4:]

	pairs := make([]MetadataPair, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 2 {
			return nil, fmt.Errorf("%w: metadata pair %d truncated", errs.ErrInvalidPayload, i)
		}

		keyLen := int(engine.Uint16(data[0:2]))
		data = data[2:]
		if len(data) < keyLen+4 {
			return nil, fmt.Errorf("%w: metadata pair %d truncated", errs.ErrInvalidPayload, i)
		}

		key := string(data[:keyLen])
		valueLen := engine.Uint32(data[keyLen : keyLen+4])
		data = data[keyLen+4:]

		if uint32(len(data)) < valueLen {
			return nil, fmt.Errorf("%w: metadata pair %d value truncated", errs.ErrInvalidPayload, i)
		}

		pairs = append(pairs, MetadataPair{Key: key, Value: data[:valueLen]})
		data = data[valueLen:]
	}

	if len(data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after last pair", errs.ErrInvalidPayload, len(data))
	}

	return pairs, nil
}
