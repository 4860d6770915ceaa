package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEndiannessConsistent(t *testing.T) {
	first := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.BigEndian, binary.LittleEndian}, first)

	for range 100 {
		require.Equal(t, first, CheckEndianness())
	}

	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
	require.Equal(t, IsNativeLittleEndian(), first == binary.LittleEndian)
}

func TestCompareNativeEndian(t *testing.T) {
	require.Equal(t, IsNativeLittleEndian(), CompareNativeEndian(GetLittleEndianEngine()))
	require.Equal(t, IsNativeBigEndian(), CompareNativeEndian(GetBigEndianEngine()))
}

func TestBigEndianEngineWireLayout(t *testing.T) {
	// The container format is big-endian; the engine must put the MSB first
	// for every width the wire layout uses.
	engine := GetBigEndianEngine()
	require.Implements(t, (*EndianEngine)(nil), engine)

	b16 := make([]byte, 2)
	engine.PutUint16(b16, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, b16)
	require.Equal(t, uint16(0x0102), engine.Uint16(b16))

	b32 := make([]byte, 4)
	engine.PutUint32(b32, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b32)

	b64 := engine.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, b64)
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(b64))
}

func TestEnginesRoundTripAndDiffer(t *testing.T) {
	little := GetLittleEndianEngine()
	big := GetBigEndianEngine()
	require.Implements(t, (*EndianEngine)(nil), little)

	const v = uint64(0x0102030405060708)
	lb := little.AppendUint64(nil, v)
	bb := big.AppendUint64(nil, v)

	require.NotEqual(t, lb, bb, "byte orders must produce different layouts")
	require.Equal(t, v, little.Uint64(lb))
	require.Equal(t, v, big.Uint64(bb))
}
