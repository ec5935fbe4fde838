// Package aes implements AES-128/192/256 (FIPS 197) as a gocrypto.BlockCipher.
//
// The round transform is the classic four-table (Te0..Te3 / Td0..Td3)
// formulation: SubBytes, ShiftRows and MixColumns (their inverses,
// respectively) are folded into a single 256-entry table of 32-bit words
// per table, so each round step is four table lookups and three XORs per
// output word. The S-box and tables are derived at package init from the
// GF(2^8) multiplicative inverse plus the FIPS 197 affine map, rather than
// transcribed as literal constants, so the derivation itself is the
// correctness argument.
package aes

import (
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const BlockSize = 16

var (
	sbox    [256]byte
	invSbox [256]byte
	rcon    [11]byte

	te0, te1, te2, te3 [256]uint32
	td0, td1, td2, td3 [256]uint32
)

// gmul multiplies a and b in GF(2^8) with the AES reduction polynomial
// x^8+x^4+x^3+x+1 (0x11B).
func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func init() {
	// Multiplicative inverse table over GF(2^8); inv[0] = 0 by convention.
	var inv [256]byte
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			if gmul(byte(a), byte(b)) == 1 {
				inv[a] = byte(b)
				break
			}
		}
	}

	// FIPS 197 affine transform over the inverse to build the S-box.
	for i := 0; i < 256; i++ {
		x := inv[i]
		s := x ^ bits.RotateLeft8(x, 1) ^ bits.RotateLeft8(x, 2) ^
			bits.RotateLeft8(x, 3) ^ bits.RotateLeft8(x, 4) ^ 0x63
		sbox[i] = s
		invSbox[s] = byte(i)
	}

	// Round constants: rcon[1]=0x01, rcon[i] = xtime(rcon[i-1]).
	rcon[1] = 0x01
	for i := 2; i <= 10; i++ {
		v := rcon[i-1]
		hi := v & 0x80
		v <<= 1
		if hi != 0 {
			v ^= 0x1b
		}
		rcon[i] = v
	}

	for i := 0; i < 256; i++ {
		s := sbox[i]
		te0[i] = uint32(gmul(s, 2))<<24 | uint32(s)<<16 | uint32(s)<<8 | uint32(gmul(s, 3))
		te1[i] = bits.RotateLeft32(te0[i], 24)
		te2[i] = bits.RotateLeft32(te0[i], 16)
		te3[i] = bits.RotateLeft32(te0[i], 8)

		is := invSbox[i]
		td0[i] = uint32(gmul(is, 0x0e))<<24 | uint32(gmul(is, 0x09))<<16 |
			uint32(gmul(is, 0x0d))<<8 | uint32(gmul(is, 0x0b))
		td1[i] = bits.RotateLeft32(td0[i], 24)
		td2[i] = bits.RotateLeft32(td0[i], 16)
		td3[i] = bits.RotateLeft32(td0[i], 8)
	}
}

// Cipher is an expanded AES key, ready to encrypt or decrypt blocks.
type Cipher struct {
	enc []uint32 // forward round keys, 4*(nr+1) words
	dec []uint32 // equivalent-inverse round keys, 4*(nr+1) words
	nr  int
}

// NewCipher derives round keys for a 16, 24, or 32 byte key (AES-128/192/256).
func NewCipher(key []byte) (*Cipher, error) {
	var nk, nr int
	switch len(key) {
	case 16:
		nk, nr = 4, 10
	case 24:
		nk, nr = 6, 12
	case 32:
		nk, nr = 8, 14
	default:
		return nil, gocrypto.New(gocrypto.InvalidParameter, "aes: key must be 16, 24 or 32 bytes, got %d", len(key))
	}

	c := &Cipher{nr: nr}
	c.enc = expandKey(key, nk, nr)
	c.dec = invertSchedule(c.enc, nr)
	return c, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 | uint32(sbox[(w>>16)&0xff])<<16 |
		uint32(sbox[(w>>8)&0xff])<<8 | uint32(sbox[w&0xff])
}

func expandKey(key []byte, nk, nr int) []uint32 {
	total := 4 * (nr + 1)
	w := make([]uint32, total)
	for i := 0; i < nk; i++ {
		w[i] = uint32(key[4*i])<<24 | uint32(key[4*i+1])<<16 | uint32(key[4*i+2])<<8 | uint32(key[4*i+3])
	}
	for i := nk; i < total; i++ {
		temp := w[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(bits.RotateLeft32(temp, 8)) ^ uint32(rcon[i/nk])<<24
		case nk > 6 && i%nk == 4:
			temp = subWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}
	return w
}

// invMixColumn applies InvMixColumns to a single round-key word, used to
// turn the forward key schedule into the equivalent-inverse decryption
// schedule.
func invMixColumn(w uint32) uint32 {
	b0 := byte(w >> 24)
	b1 := byte(w >> 16)
	b2 := byte(w >> 8)
	b3 := byte(w)
	r0 := gmul(b0, 0x0e) ^ gmul(b1, 0x0b) ^ gmul(b2, 0x0d) ^ gmul(b3, 0x09)
	r1 := gmul(b0, 0x09) ^ gmul(b1, 0x0e) ^ gmul(b2, 0x0b) ^ gmul(b3, 0x0d)
	r2 := gmul(b0, 0x0d) ^ gmul(b1, 0x09) ^ gmul(b2, 0x0e) ^ gmul(b3, 0x0b)
	r3 := gmul(b0, 0x0b) ^ gmul(b1, 0x0d) ^ gmul(b2, 0x09) ^ gmul(b3, 0x0e)
	return uint32(r0)<<24 | uint32(r1)<<16 | uint32(r2)<<8 | uint32(r3)
}

// invertSchedule builds the equivalent-inverse cipher's round keys: the
// first and last round keys are reused unchanged (in reverse order), and
// every interior round key has InvMixColumns applied.
func invertSchedule(enc []uint32, nr int) []uint32 {
	dec := make([]uint32, len(enc))
	copy(dec[0:4], enc[4*nr:4*nr+4])
	for r := 1; r < nr; r++ {
		src := enc[4*(nr-r) : 4*(nr-r)+4]
		for j := 0; j < 4; j++ {
			dec[4*r+j] = invMixColumn(src[j])
		}
	}
	copy(dec[4*nr:4*nr+4], enc[0:4])
	return dec
}

func getu32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putu32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// EncryptBlock encrypts exactly one 16-byte block from plain into dst.
func (c *Cipher) EncryptBlock(dst, plain []byte) {
	s0 := getu32(plain[0:4]) ^ c.enc[0]
	s1 := getu32(plain[4:8]) ^ c.enc[1]
	s2 := getu32(plain[8:12]) ^ c.enc[2]
	s3 := getu32(plain[12:16]) ^ c.enc[3]

	for r := 1; r < c.nr; r++ {
		rk := c.enc[4*r : 4*r+4]
		t0 := te0[s0>>24] ^ te1[(s1>>16)&0xff] ^ te2[(s2>>8)&0xff] ^ te3[s3&0xff] ^ rk[0]
		t1 := te0[s1>>24] ^ te1[(s2>>16)&0xff] ^ te2[(s3>>8)&0xff] ^ te3[s0&0xff] ^ rk[1]
		t2 := te0[s2>>24] ^ te1[(s3>>16)&0xff] ^ te2[(s0>>8)&0xff] ^ te3[s1&0xff] ^ rk[2]
		t3 := te0[s3>>24] ^ te1[(s0>>16)&0xff] ^ te2[(s1>>8)&0xff] ^ te3[s2&0xff] ^ rk[3]
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	rk := c.enc[4*c.nr : 4*c.nr+4]
	o0 := uint32(sbox[s0>>24])<<24 | uint32(sbox[(s1>>16)&0xff])<<16 | uint32(sbox[(s2>>8)&0xff])<<8 | uint32(sbox[s3&0xff])
	o1 := uint32(sbox[s1>>24])<<24 | uint32(sbox[(s2>>16)&0xff])<<16 | uint32(sbox[(s3>>8)&0xff])<<8 | uint32(sbox[s0&0xff])
	o2 := uint32(sbox[s2>>24])<<24 | uint32(sbox[(s3>>16)&0xff])<<16 | uint32(sbox[(s0>>8)&0xff])<<8 | uint32(sbox[s1&0xff])
	o3 := uint32(sbox[s3>>24])<<24 | uint32(sbox[(s0>>16)&0xff])<<16 | uint32(sbox[(s1>>8)&0xff])<<8 | uint32(sbox[s2&0xff])

	putu32(dst[0:4], o0^rk[0])
	putu32(dst[4:8], o1^rk[1])
	putu32(dst[8:12], o2^rk[2])
	putu32(dst[12:16], o3^rk[3])
}

// DecryptBlock decrypts exactly one 16-byte block from cipher into dst.
func (c *Cipher) DecryptBlock(dst, cipher []byte) {
	s0 := getu32(cipher[0:4]) ^ c.dec[0]
	s1 := getu32(cipher[4:8]) ^ c.dec[1]
	s2 := getu32(cipher[8:12]) ^ c.dec[2]
	s3 := getu32(cipher[12:16]) ^ c.dec[3]

	for r := 1; r < c.nr; r++ {
		rk := c.dec[4*r : 4*r+4]
		t0 := td0[s0>>24] ^ td1[(s3>>16)&0xff] ^ td2[(s2>>8)&0xff] ^ td3[s1&0xff] ^ rk[0]
		t1 := td0[s1>>24] ^ td1[(s0>>16)&0xff] ^ td2[(s3>>8)&0xff] ^ td3[s2&0xff] ^ rk[1]
		t2 := td0[s2>>24] ^ td1[(s1>>16)&0xff] ^ td2[(s0>>8)&0xff] ^ td3[s3&0xff] ^ rk[2]
		t3 := td0[s3>>24] ^ td1[(s2>>16)&0xff] ^ td2[(s1>>8)&0xff] ^ td3[s0&0xff] ^ rk[3]
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	rk := c.dec[4*c.nr : 4*c.nr+4]
	o0 := uint32(invSbox[s0>>24])<<24 | uint32(invSbox[(s3>>16)&0xff])<<16 | uint32(invSbox[(s2>>8)&0xff])<<8 | uint32(invSbox[s1&0xff])
	o1 := uint32(invSbox[s1>>24])<<24 | uint32(invSbox[(s0>>16)&0xff])<<16 | uint32(invSbox[(s3>>8)&0xff])<<8 | uint32(invSbox[s2&0xff])
	o2 := uint32(invSbox[s2>>24])<<24 | uint32(invSbox[(s1>>16)&0xff])<<16 | uint32(invSbox[(s0>>8)&0xff])<<8 | uint32(invSbox[s3&0xff])
	o3 := uint32(invSbox[s3>>24])<<24 | uint32(invSbox[(s2>>16)&0xff])<<16 | uint32(invSbox[(s1>>8)&0xff])<<8 | uint32(invSbox[s0&0xff])

	putu32(dst[0:4], o0^rk[0])
	putu32(dst[4:8], o1^rk[1])
	putu32(dst[8:12], o2^rk[2])
	putu32(dst[12:16], o3^rk[3])
}
