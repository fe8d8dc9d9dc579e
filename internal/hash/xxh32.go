package hash

import (
	"encoding/binary"
	"math/bits"
)

const (
	prime32_1 uint32 = 2654435761
	prime32_2 uint32 = 2246822519
	prime32_3 uint32 = 3266489917
	prime32_4 uint32 = 668265263
	prime32_5 uint32 = 374761393
)

// Sum32 computes the 32-bit xxHash of data with the given seed.
//
// The LZ4Block stream framing checksums each block with this hash.
func Sum32(data []byte, seed uint32) uint32 {
	n := len(data)
	p := 0

	var h uint32
	if n >= 16 {
		v1 := seed + prime32_1 + prime32_2
		v2 := seed + prime32_2
		v3 := seed
		v4 := seed - prime32_1
		for ; p+16 <= n; p += 16 {
			v1 = round32(v1, binary.LittleEndian.Uint32(data[p:]))
			v2 = round32(v2, binary.LittleEndian.Uint32(data[p+4:]))
			v3 = round32(v3, binary.LittleEndian.Uint32(data[p+8:]))
			v4 = round32(v4, binary.LittleEndian.Uint32(data[p+12:]))
		}
		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h = seed + prime32_5
	}

	h += uint32(n) //nolint: gosec

	for ; p+4 <= n; p += 4 {
		h += binary.LittleEndian.Uint32(data[p:]) * prime32_3
		h = bits.RotateLeft32(h, 17) * prime32_4
	}
	for ; p < n; p++ {
		h += uint32(data[p]) * prime32_5
		h = bits.RotateLeft32(h, 11) * prime32_1
	}

	h ^= h >> 15
	h *= prime32_2
	h ^= h >> 13
	h *= prime32_3
	h ^= h >> 16

	return h
}

func round32(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = bits.RotateLeft32(acc, 13)

	return acc * prime32_1
}
