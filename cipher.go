package present

import (
	"crypto/cipher"
	"errors"
	"strconv"

	"github.com/codahale/present/internal/bitslice"
	"github.com/codahale/present/internal/keyschedule"
)

// ErrInvalidLength is returned when a batch input is not a whole number of blocks.
var ErrInvalidLength = errors.New("present: input not a multiple of the block size")

// ErrShortBuffer is returned when a batch output is smaller than its input.
var ErrShortBuffer = errors.New("present: output smaller than input")

// KeySizeError is returned by NewCipher for keys which are not KeySize bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "present: invalid key size " + strconv.Itoa(int(k))
}

// A Cipher is a PRESENT-80 instance with its round keys expanded. It implements cipher.Block, and is safe for
// concurrent use.
type Cipher struct {
	rks [Rounds + 1][BlockSize]byte
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher returns a Cipher for the given 10-byte key. The key is not retained or modified.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	return &Cipher{rks: keyschedule.Expand((*[KeySize]byte)(key))}, nil
}

// BlockSize returns the PRESENT block size.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block of src into dst. dst and src may overlap entirely or not at all.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("present: input not full block")
	}
	if len(dst) < BlockSize {
		panic("present: output not full block")
	}

	var b [BlockSize]byte
	copy(b[:], src)
	encryptExpanded(&b, &c.rks)
	copy(dst, b[:])
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap entirely or not at all.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("present: input not full block")
	}
	if len(dst) < BlockSize {
		panic("present: output not full block")
	}

	var b [BlockSize]byte
	copy(b[:], src)
	decryptExpanded(&b, &c.rks)
	copy(dst, b[:])
}

// EncryptBlocks encrypts every block of src into dst, as if by calling Encrypt on each. Groups of Lanes blocks go
// through the bitsliced engine and any remainder through the scalar engine. dst and src may overlap entirely or not at
// all.
func (c *Cipher) EncryptBlocks(dst, src []byte) error {
	return c.blocks(dst, src, bitslice.EncryptExpanded[word], c.Encrypt)
}

// DecryptBlocks decrypts every block of src into dst, as if by calling Decrypt on each. dst and src may overlap
// entirely or not at all.
func (c *Cipher) DecryptBlocks(dst, src []byte) error {
	return c.blocks(dst, src, bitslice.DecryptExpanded[word], c.Decrypt)
}

type sliceFunc func(*bitslice.State[word], *[Rounds + 1][BlockSize]byte)

type blockFunc func(dst, src []byte)

const groupSize = BlockSize * Lanes

func checkLengths(dst, src []byte) error {
	if len(src)%BlockSize != 0 {
		return ErrInvalidLength
	}
	if len(dst) < len(src) {
		return ErrShortBuffer
	}
	return nil
}

func (c *Cipher) blocks(dst, src []byte, slice sliceFunc, scalar blockFunc) error {
	if err := checkLengths(dst, src); err != nil {
		return err
	}

	var s bitslice.State[word]
	for len(src) >= groupSize {
		c.group(&s, dst[:groupSize], src[:groupSize], slice)
		dst, src = dst[groupSize:], src[groupSize:]
	}
	c.tail(dst, src, scalar)
	return nil
}

func (c *Cipher) group(s *bitslice.State[word], dst, src []byte, slice sliceFunc) {
	bitslice.Enslice(s, src)
	slice(s, &c.rks)
	bitslice.Unslice(dst, s)
}

func (c *Cipher) tail(dst, src []byte, scalar blockFunc) {
	for i := 0; i < len(src); i += BlockSize {
		scalar(dst[i:], src[i:])
	}
}
