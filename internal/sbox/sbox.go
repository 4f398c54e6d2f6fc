// Package sbox implements the PRESENT 4-bit S-box, both as lookup tables for the scalar engine and as bitsliced
// boolean circuits for the parallel engine.
//
// Nibble bit 0 is the least significant bit. In the bitsliced form, x0..x3 are the four planes holding bits 0..3 of
// one nibble position across every lane.
package sbox

// Word is a bitsliced register. Each bit of a Word belongs to a different lane.
type Word interface {
	~uint32 | ~uint64
}

var (
	table   = [16]byte{0xc, 0x5, 0x6, 0xb, 0x9, 0x0, 0xa, 0xd, 0x3, 0xe, 0xf, 0x8, 0x4, 0x7, 0x1, 0x2} //nolint:gochecknoglobals // constant table
	inverse = [16]byte{0x5, 0xe, 0xf, 0x8, 0xc, 0x1, 0x2, 0xd, 0xb, 0x4, 0x6, 0x3, 0x0, 0x7, 0x9, 0xa} //nolint:gochecknoglobals // constant table
)

// Nibble substitutes the low four bits of x. The high four bits are ignored.
func Nibble(x byte) byte {
	return table[x&0x0f]
}

// InvNibble inverts Nibble.
func InvNibble(x byte) byte {
	return inverse[x&0x0f]
}

// Byte substitutes both nibbles of x independently.
func Byte(x byte) byte {
	return table[x>>4]<<4 | table[x&0x0f]
}

// InvByte inverts Byte.
func InvByte(x byte) byte {
	return inverse[x>>4]<<4 | inverse[x&0x0f]
}

// Layer applies the S-box to all sixteen nibbles of a 64-bit state.
func Layer(s *[8]byte) {
	for i := range s {
		s[i] = Byte(s[i])
	}
}

// InvLayer inverts Layer.
func InvLayer(s *[8]byte) {
	for i := range s {
		s[i] = InvByte(s[i])
	}
}

// S0 computes output bit 0 of the S-box.
func S0[W Word](x0, x1, x2, x3 W) W {
	return x0 ^ (x1 & x2) ^ x2 ^ x3
}

// S1 computes output bit 1 of the S-box.
func S1[W Word](x0, x1, x2, x3 W) W {
	c := x2 & x3
	return ((x0 & x1) & (x2 ^ x3)) ^ (x3 & x1) ^ x1 ^ (x0 & c) ^ c ^ x3
}

// S2 computes output bit 2 of the S-box.
func S2[W Word](x0, x1, x2, x3 W) W {
	c := x0 & x3
	return (x0 & x1) ^ (c & x1) ^ (x3 & x1) ^ x2 ^ c ^ (c & x2) ^ x3 ^ ^W(0)
}

// S3 computes output bit 3 of the S-box.
func S3[W Word](x0, x1, x2, x3 W) W {
	c := x1 & x2
	return (c & x0) ^ ((x3 & x0) & (x1 ^ x2)) ^ x0 ^ x1 ^ c ^ x3 ^ ^W(0)
}

// Slice applies the S-box to one nibble position of every lane.
func Slice[W Word](x0, x1, x2, x3 W) (y0, y1, y2, y3 W) {
	return S0(x0, x1, x2, x3), S1(x0, x1, x2, x3), S2(x0, x1, x2, x3), S3(x0, x1, x2, x3)
}

// InvSlice inverts Slice. The circuits are the algebraic normal form of the inverse table.
func InvSlice[W Word](x0, x1, x2, x3 W) (y0, y1, y2, y3 W) {
	a := x0 & x1
	b := x0 & x2 & x3
	y0 = x0 ^ x2 ^ (x1 & x3) ^ ^W(0)
	y1 = x0 ^ x1 ^ x3 ^ (x0 & x2) ^ (x1 & x3) ^ (x2 & x3) ^ (a & x2) ^ (a & x3) ^ b
	y2 = a ^ (x0 & x2) ^ (x1 & x2) ^ x3 ^ (x0 & x3) ^ (x1 & x3) ^ (a & x2) ^ (a & x3) ^ b ^ ^W(0)
	y3 = x0 ^ x1 ^ x2 ^ x3 ^ a ^ (a & x2) ^ b
	return y0, y1, y2, y3
}
