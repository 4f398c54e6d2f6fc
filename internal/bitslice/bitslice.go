// Package bitslice implements PRESENT over many blocks at once.
//
// A bitsliced state is 64 planes. Plane i holds bit i of every lane's block, with lane j in bit j of the plane, so a
// uint32 state carries 32 blocks and a uint64 state carries 64. Substitution becomes four boolean circuits over groups
// of four planes, the permutation becomes a move of whole planes, and key mixing XORs a plane with all ones or
// nothing. All blocks in a state share one key.
package bitslice

import (
	"math/bits"

	"github.com/codahale/present/internal/keyschedule"
	"github.com/codahale/present/internal/pbox"
	"github.com/codahale/present/internal/sbox"
)

// Planes is the number of planes in a state.
const Planes = pbox.Size

// State is a bitsliced PRESENT state.
type State[W sbox.Word] [Planes]W

// Lanes returns the number of blocks a State[W] carries.
func Lanes[W sbox.Word]() int {
	return bits.OnesCount64(uint64(^W(0)))
}

// Size returns the length in bytes of the buffer a State[W] is loaded from and stored to.
func Size[W sbox.Word]() int {
	return Lanes[W]() * 8
}

// Enslice loads Lanes blocks into s. Block j occupies src[8*j:8*j+8]. src must be exactly Size bytes long.
func Enslice[W sbox.Word](s *State[W], src []byte) {
	lanes := Lanes[W]()
	_ = src[lanes*8-1]

	for i := range Planes {
		var w W
		for j := range lanes {
			w |= W((src[i/8+j*8]>>(i%8))&1) << j
		}
		s[i] = w
	}
}

// Unslice stores s into dst, inverting Enslice. dst must be exactly Size bytes long.
func Unslice[W sbox.Word](dst []byte, s *State[W]) {
	n := Size[W]()
	_ = dst[n-1]

	for k := range n {
		var b byte
		for bit := range 8 {
			b |= byte((s[(k%8)*8+bit]>>(k/8))&1) << bit
		}
		dst[k] = b
	}
}

// AddRoundKey XORs a round key into every lane.
func AddRoundKey[W sbox.Word](s *State[W], rk *[keyschedule.RoundKeySize]byte) {
	for i := range Planes {
		s[i] ^= -W((rk[i/8] >> (i % 8)) & 1)
	}
}

// SubLayer applies the S-box circuits to all sixteen nibble positions.
func SubLayer[W sbox.Word](s *State[W]) {
	for i := 0; i < Planes; i += 4 {
		s[i], s[i+1], s[i+2], s[i+3] = sbox.Slice(s[i], s[i+1], s[i+2], s[i+3])
	}
}

// InvSubLayer inverts SubLayer.
func InvSubLayer[W sbox.Word](s *State[W]) {
	for i := 0; i < Planes; i += 4 {
		s[i], s[i+1], s[i+2], s[i+3] = sbox.InvSlice(s[i], s[i+1], s[i+2], s[i+3])
	}
}

// Encrypt runs the full cipher over s, advancing key once per round. On return key has been advanced 31 times.
func Encrypt[W sbox.Word](s *State[W], key *keyschedule.Register) {
	for r := uint8(1); r <= keyschedule.Rounds; r++ {
		rk := key.RoundKey()
		AddRoundKey(s, &rk)
		SubLayer(s)
		pbox.Planes((*[Planes]W)(s))
		key.Advance(r)
	}
	rk := key.RoundKey()
	AddRoundKey(s, &rk)
}

// Decrypt inverts Encrypt. key must be the register Encrypt left behind; on return it holds the original key.
func Decrypt[W sbox.Word](s *State[W], key *keyschedule.Register) {
	rk := key.RoundKey()
	AddRoundKey(s, &rk)
	for r := uint8(keyschedule.Rounds); r >= 1; r-- {
		pbox.InvPlanes((*[Planes]W)(s))
		InvSubLayer(s)
		key.Rewind(r)
		rk = key.RoundKey()
		AddRoundKey(s, &rk)
	}
}

// EncryptExpanded runs the full cipher over s using precomputed round keys.
func EncryptExpanded[W sbox.Word](s *State[W], rks *[keyschedule.Rounds + 1][keyschedule.RoundKeySize]byte) {
	for r := range keyschedule.Rounds {
		AddRoundKey(s, &rks[r])
		SubLayer(s)
		pbox.Planes((*[Planes]W)(s))
	}
	AddRoundKey(s, &rks[keyschedule.Rounds])
}

// DecryptExpanded inverts EncryptExpanded.
func DecryptExpanded[W sbox.Word](s *State[W], rks *[keyschedule.Rounds + 1][keyschedule.RoundKeySize]byte) {
	AddRoundKey(s, &rks[keyschedule.Rounds])
	for r := keyschedule.Rounds - 1; r >= 0; r-- {
		pbox.InvPlanes((*[Planes]W)(s))
		InvSubLayer(s)
		AddRoundKey(s, &rks[r])
	}
}

// EncryptBlocks encrypts Lanes contiguous blocks in place, advancing key 31 times.
func EncryptBlocks[W sbox.Word](blocks []byte, key *keyschedule.Register) {
	var s State[W]
	Enslice(&s, blocks)
	Encrypt(&s, key)
	Unslice(blocks, &s)
}

// DecryptBlocks inverts EncryptBlocks, rewinding key 31 times.
func DecryptBlocks[W sbox.Word](blocks []byte, key *keyschedule.Register) {
	var s State[W]
	Enslice(&s, blocks)
	Decrypt(&s, key)
	Unslice(blocks, &s)
}
