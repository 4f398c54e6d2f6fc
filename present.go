// Package present implements the [PRESENT] lightweight block cipher with an 80-bit key.
//
// PRESENT is a 31-round substitution-permutation network over 64-bit blocks. This package provides two engines for the
// same transform: a scalar engine which encrypts one block with table lookups and bit extraction, and a bitsliced
// engine which encrypts 32 or 64 blocks at once under a single key by holding each bit position of every block in one
// machine word.
//
// Blocks and keys are little-endian: bit i of a block is bit i%8 of byte i/8, so the paper's most significant byte is
// the last byte of the array. The core functions take fixed-size arrays and modify them in place, including the key,
// which is left in the state the key schedule reaches after 31 rounds. Use [NewCipher] for a [crypto/cipher.Block]
// which leaves the caller's key alone.
//
// Neither engine is hardened against side channels beyond what fixed, branch-free bit operations give. The scalar
// engine's S-box is a table lookup.
//
// [PRESENT]: https://www.iacr.org/archive/ches2007/47270450/47270450.pdf
package present

import (
	"github.com/codahale/present/internal/bitslice"
	"github.com/codahale/present/internal/keyschedule"
	"github.com/codahale/present/internal/mem"
	"github.com/codahale/present/internal/pbox"
	"github.com/codahale/present/internal/sbox"
)

const (
	// BlockSize is the PRESENT block size in bytes.
	BlockSize = 8

	// KeySize is the PRESENT-80 key size in bytes.
	KeySize = keyschedule.Size

	// Rounds is the number of PRESENT rounds. A final key addition follows the last round.
	Rounds = keyschedule.Rounds

	// Lanes32 is the number of blocks encrypted by one call to EncryptBlocks32.
	Lanes32 = 32

	// Lanes64 is the number of blocks encrypted by one call to EncryptBlocks64.
	Lanes64 = 64
)

// EncryptBlock encrypts block in place with the scalar engine. On return key holds the key register after 31 rounds
// of the key schedule; callers who need the original key again must copy it first.
func EncryptBlock(block *[BlockSize]byte, key *[KeySize]byte) {
	reg := (*keyschedule.Register)(key)
	for r := uint8(1); r <= Rounds; r++ {
		addRoundKey(block, reg)
		sbox.Layer(block)
		pbox.Layer(block)
		reg.Advance(r)
	}
	addRoundKey(block, reg)
}

// DecryptBlock inverts EncryptBlock. key must hold the register EncryptBlock left behind; on return block holds the
// plaintext and key holds the original key.
func DecryptBlock(block *[BlockSize]byte, key *[KeySize]byte) {
	reg := (*keyschedule.Register)(key)
	addRoundKey(block, reg)
	for r := uint8(Rounds); r >= 1; r-- {
		pbox.InvLayer(block)
		sbox.InvLayer(block)
		reg.Rewind(r)
		addRoundKey(block, reg)
	}
}

// EncryptBlocks32 encrypts 32 contiguous blocks in place with the bitsliced engine. Block j is blocks[8*j:8*j+8].
// Every block is encrypted under the same key, and key is advanced exactly as EncryptBlock advances it.
func EncryptBlocks32(blocks *[BlockSize * Lanes32]byte, key *[KeySize]byte) {
	bitslice.EncryptBlocks[uint32](blocks[:], (*keyschedule.Register)(key))
}

// DecryptBlocks32 inverts EncryptBlocks32.
func DecryptBlocks32(blocks *[BlockSize * Lanes32]byte, key *[KeySize]byte) {
	bitslice.DecryptBlocks[uint32](blocks[:], (*keyschedule.Register)(key))
}

// EncryptBlocks64 encrypts 64 contiguous blocks in place with the bitsliced engine. Block j is blocks[8*j:8*j+8].
// Every block is encrypted under the same key, and key is advanced exactly as EncryptBlock advances it.
func EncryptBlocks64(blocks *[BlockSize * Lanes64]byte, key *[KeySize]byte) {
	bitslice.EncryptBlocks[uint64](blocks[:], (*keyschedule.Register)(key))
}

// DecryptBlocks64 inverts EncryptBlocks64.
func DecryptBlocks64(blocks *[BlockSize * Lanes64]byte, key *[KeySize]byte) {
	bitslice.DecryptBlocks[uint64](blocks[:], (*keyschedule.Register)(key))
}

func addRoundKey(block *[BlockSize]byte, reg *keyschedule.Register) {
	rk := reg.RoundKey()
	mem.XORBlock(block, &rk)
}

func encryptExpanded(block *[BlockSize]byte, rks *[Rounds + 1][BlockSize]byte) {
	for r := range Rounds {
		mem.XORBlock(block, &rks[r])
		sbox.Layer(block)
		pbox.Layer(block)
	}
	mem.XORBlock(block, &rks[Rounds])
}

func decryptExpanded(block *[BlockSize]byte, rks *[Rounds + 1][BlockSize]byte) {
	mem.XORBlock(block, &rks[Rounds])
	for r := Rounds - 1; r >= 0; r-- {
		pbox.InvLayer(block)
		sbox.InvLayer(block)
		mem.XORBlock(block, &rks[r])
	}
}
