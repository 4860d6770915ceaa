//go:build amd64 && !purego

package morton

import "golang.org/x/sys/cpu"

// pdep64 and pext64 are implemented in bmi2_amd64.s. They must only be
// called after HasBMI2 has been verified.
//
//go:noescape
func pdep64(src, mask uint64) uint64

//go:noescape
func pext64(src, mask uint64) uint64

func encodeBMI2(x, y, z uint32) uint64 {
	return pdep64(uint64(x), maskX) | pdep64(uint64(y), maskY) | pdep64(uint64(z), maskZ)
}

func decodeBMI2(code uint64) (x, y, z uint32) {
	return uint32(pext64(code, maskX)), uint32(pext64(code, maskY)), uint32(pext64(code, maskZ))
}

// selectImpl picks the PDEP/PEXT path on Haswell+/Zen hosts and the portable
// path everywhere else. Detection runs once; the result is cached by the
// dispatch machinery in morton.go.
func selectImpl() (func(x, y, z uint32) uint64, func(code uint64) (x, y, z uint32)) {
	if cpu.X86.HasBMI2 {
		return encodeBMI2, decodeBMI2
	}

	return encodePortable, decodePortable
}
