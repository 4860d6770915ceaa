package morton

import "testing"

func BenchmarkEncode(b *testing.B) {
	dispatch()

	var sink uint64
	for i := 0; b.Loop(); i++ {
		v := uint32(i) & MaxCoord
		sink ^= encodeImpl(v, v^0x55555, v^0xAAAAA)
	}
	_ = sink
}

func BenchmarkDecode(b *testing.B) {
	dispatch()

	var sink uint32
	for i := 0; b.Loop(); i++ {
		x, y, z := decodeImpl(uint64(i) & (1<<CodeBits - 1))
		sink ^= x ^ y ^ z
	}
	_ = sink
}

func BenchmarkEncodePortable(b *testing.B) {
	var sink uint64
	for i := 0; b.Loop(); i++ {
		v := uint32(i) & MaxCoord
		sink ^= encodePortable(v, v^0x55555, v^0xAAAAA)
	}
	_ = sink
}

func BenchmarkDecodePortable(b *testing.B) {
	var sink uint32
	for i := 0; b.Loop(); i++ {
		x, y, z := decodePortable(uint64(i) & (1<<CodeBits - 1))
		sink ^= x ^ y ^ z
	}
	_ = sink
}
