// Package pbox implements the PRESENT bit permutation over a 64-bit state.
//
// Bit b of the state is bit b%8 of byte b/8. The permutation moves bit b to position (b/4) + (b%4)*16. It interleaves
// positions, so every layer here writes into a scratch state and then replaces the original.
package pbox

import "github.com/codahale/present/internal/sbox"

// Size is the number of bit positions in the state.
const Size = 64

// Position returns the destination of bit b.
func Position(b int) int {
	return (b >> 2) + (b&3)<<4
}

// InvPosition returns the source of the bit that Position moves to p.
func InvPosition(p int) int {
	return (p&15)<<2 + p>>4
}

// Layer permutes the bits of a scalar state.
func Layer(s *[8]byte) {
	var out [8]byte
	for b := range Size {
		p := Position(b)
		out[p>>3] |= ((s[b>>3] >> (b & 7)) & 1) << (p & 7)
	}
	*s = out
}

// InvLayer inverts Layer.
func InvLayer(s *[8]byte) {
	var out [8]byte
	for p := range Size {
		b := InvPosition(p)
		out[b>>3] |= ((s[p>>3] >> (p & 7)) & 1) << (b & 7)
	}
	*s = out
}

// Planes permutes a bitsliced state by moving whole planes. One move relocates the bit for every lane.
func Planes[W sbox.Word](s *[Size]W) {
	var out [Size]W
	for b := range Size {
		out[Position(b)] = s[b]
	}
	*s = out
}

// InvPlanes inverts Planes.
func InvPlanes[W sbox.Word](s *[Size]W) {
	var out [Size]W
	for p := range Size {
		out[InvPosition(p)] = s[p]
	}
	*s = out
}
