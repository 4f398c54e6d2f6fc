// Package mem provides XOR helpers for block-sized and arbitrary-length buffers.
package mem

import (
	"crypto/subtle"
	"encoding/binary"
)

// XORBlock XORs the 8-byte k into dst.
func XORBlock(dst, k *[8]byte) {
	binary.LittleEndian.PutUint64(dst[:], binary.LittleEndian.Uint64(dst[:])^binary.LittleEndian.Uint64(k[:]))
}

// XOR XORs a and b into dst. Uses subtle.XORBytes for slices larger than 16 bytes (which benefits from SIMD) and a
// scalar loop for small slices. All three slices must be the same length.
func XOR(dst, a, b []byte) {
	if len(dst) > 16 {
		subtle.XORBytes(dst, a, b)
	} else {
		for i := range dst {
			dst[i] = a[i] ^ b[i]
		}
	}
}
