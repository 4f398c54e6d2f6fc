package present

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/codahale/present/internal/bitslice"
	"github.com/codahale/present/internal/mem"
)

type ctr struct {
	c       *Cipher
	counter uint64
	buf     [groupSize]byte
	used    int
}

// NewCTR returns a cipher.Stream which produces the same output as cipher.NewCTR(c, iv), but generates its keystream
// Lanes blocks at a time with the bitsliced engine. The IV is a 64-bit big-endian counter which wraps around.
//
// NewCTR panics if len(iv) != BlockSize.
func NewCTR(c *Cipher, iv []byte) cipher.Stream {
	if len(iv) != BlockSize {
		panic("present: IV length must equal block size")
	}

	s := &ctr{c: c, counter: binary.BigEndian.Uint64(iv)}
	s.used = len(s.buf)
	return s
}

// XORKeyStream XORs each byte in src with a byte of keystream and writes the result to dst.
func (s *ctr) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("present: output smaller than input")
	}

	for len(src) > 0 {
		if s.used == len(s.buf) {
			s.refill()
		}

		n := min(len(src), len(s.buf)-s.used)
		mem.XOR(dst[:n], src[:n], s.buf[s.used:s.used+n])
		s.used += n
		dst, src = dst[n:], src[n:]
	}
}

func (s *ctr) refill() {
	for i := 0; i < len(s.buf); i += BlockSize {
		binary.BigEndian.PutUint64(s.buf[i:], s.counter)
		s.counter++
	}

	var st bitslice.State[word]
	s.c.group(&st, s.buf[:], s.buf[:], bitslice.EncryptExpanded[word])
	s.used = 0
}
