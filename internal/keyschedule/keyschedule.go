// Package keyschedule implements the PRESENT-80 key schedule.
//
// The 80-bit key register is stored least significant byte first: bit i of the register is bit i%8 of byte i/8, so
// byte 9 holds bits 79..72. The round key is always the register's top 64 bits, bytes 2 through 9.
package keyschedule

import "github.com/codahale/present/internal/sbox"

const (
	// Size is the size of the key register in bytes.
	Size = 10

	// RoundKeySize is the size of a round key in bytes.
	RoundKeySize = 8

	// Rounds is the number of times the register is advanced over one encryption.
	Rounds = 31
)

// Register is the 80-bit PRESENT key register.
type Register [Size]byte

// RoundKey returns the round key for the register's current state.
func (k *Register) RoundKey() [RoundKeySize]byte {
	var rk [RoundKeySize]byte
	copy(rk[:], k[Size-RoundKeySize:])
	return rk
}

// Advance moves the register forward by one round. The round counter r must start at 1 and increase by exactly one
// per call; any other sequence produces a schedule that is not PRESENT's.
func (k *Register) Advance(r uint8) {
	t0, t1, t2 := k[0], k[1], k[2]

	// Rotate left by 61, which is right by 19: each byte takes its low bits from two bytes above and its high bits
	// from three bytes above.
	for i := range 7 {
		k[i] = k[i+2]>>3 | k[i+3]<<5
	}
	k[7] = k[9]>>3 | t0<<5
	k[8] = t0>>3 | t1<<5
	k[9] = t1>>3 | t2<<5

	// Substitute bits 79..76.
	k[9] = sbox.Nibble(k[9]>>4)<<4 | k[9]&0x0f

	// XOR the counter into bits 19..15.
	k[1] ^= r << 7
	k[2] ^= r >> 1
}

// Rewind inverts Advance(r). Counters must be supplied in the reverse of the order Advance received them.
func (k *Register) Rewind(r uint8) {
	k[1] ^= r << 7
	k[2] ^= r >> 1

	k[9] = sbox.InvNibble(k[9]>>4)<<4 | k[9]&0x0f

	var prev Register
	for i := range Size {
		prev[i] = k[(i+Size-2)%Size]<<3 | k[(i+Size-3)%Size]>>5
	}
	*k = prev
}

// Expand returns every round key for the given key, including the final whitening key. The key is not modified.
func Expand(key *[Size]byte) [Rounds + 1][RoundKeySize]byte {
	var rks [Rounds + 1][RoundKeySize]byte
	reg := Register(*key)
	for r := range uint8(Rounds) {
		rks[r] = reg.RoundKey()
		reg.Advance(r + 1)
	}
	rks[Rounds] = reg.RoundKey()
	return rks
}
