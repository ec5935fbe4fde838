package zuc

import "github.com/coldforge/gocrypto"

// Cipher is the ZUC-based confidentiality algorithm (128-EEA3 style):
// encryption and decryption are both XOR with the ZUC keystream, so the
// two operations are identical.
type Cipher struct {
	eng   *engine
	word  [4]byte
	avail int // unused keystream bytes remaining in word
}

// confidentialityIV builds the 128-bit IV from a 32-bit COUNT, a 5-bit
// bearer identity and a 1-bit direction flag, per the standard
// EEA3-style construction: the first half is COUNT || (bearer<<3 |
// direction<<2) || 0,0,0, and the second half repeats it.
func confidentialityIV(count uint32, bearer, direction byte) []byte {
	iv := make([]byte, IVSize)
	iv[0] = byte(count >> 24)
	iv[1] = byte(count >> 16)
	iv[2] = byte(count >> 8)
	iv[3] = byte(count)
	iv[4] = (bearer << 3) | (direction << 2)
	iv[5], iv[6], iv[7] = 0, 0, 0
	copy(iv[8:16], iv[0:8])
	return iv
}

// NewCipher builds a ZUC confidentiality cipher from a 128-bit key, a
// COUNT value, a 5-bit radio bearer identity and a 1-bit direction flag.
func NewCipher(key []byte, count uint32, bearer, direction byte) (*Cipher, error) {
	eng, err := newEngine(key, confidentialityIV(count, bearer, direction))
	if err != nil {
		return nil, err
	}
	return &Cipher{eng: eng}, nil
}

func (c *Cipher) nextByte() byte {
	if c.avail == 0 {
		w := c.eng.next()
		c.word[0] = byte(w >> 24)
		c.word[1] = byte(w >> 16)
		c.word[2] = byte(w >> 8)
		c.word[3] = byte(w)
		c.avail = 4
	}
	b := c.word[4-c.avail]
	c.avail--
	return b
}

// XORKeyStream XORs src with the ZUC keystream into dst, which may equal
// src for in-place use. Encryption and decryption are the same operation.
func (c *Cipher) XORKeyStream(dst, src []byte) error {
	if len(dst) < len(src) {
		return gocrypto.New(gocrypto.InvalidParameter, "zuc: dst shorter than src")
	}
	for i, b := range src {
		dst[i] = b ^ c.nextByte()
	}
	return nil
}
