// Package sm3 implements the SM3 cryptographic hash function (GB/T
// 32905-2016), a 256-bit Merkle-Damgard digest with a Chinese national
// standard compression function distinct from SHA-256's.
package sm3

import (
	"encoding/binary"
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const (
	BlockSize  = 64
	DigestSize = 32
)

var iv = [8]uint32{
	0x7380166f, 0x4914b2b9, 0x172442d7, 0xda8a0600,
	0xa96f30bc, 0x163138aa, 0xe38dee4d, 0xb0fb0e4e,
}

func ffj(j int, x, y, z uint32) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (x & z) | (y & z)
}

func ggj(j int, x, y, z uint32) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (^x & z)
}

func p0(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17)
}

func p1(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23)
}

func tj(j int) uint32 {
	if j < 16 {
		return 0x79cc4519
	}
	return 0x7a879d8a
}

// Digest implements gocrypto.Digest for SM3.
type Digest struct {
	h      [8]uint32
	buf    [BlockSize]byte
	nbuf   int
	length uint64
}

func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.h = iv
	d.nbuf = 0
	d.length = 0
}

func (d *Digest) BlockSize() int { return BlockSize }
func (d *Digest) Size() int      { return DigestSize * 8 }

func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)
	if d.nbuf > 0 {
		c := copy(d.buf[d.nbuf:], p)
		d.nbuf += c
		p = p[c:]
		if d.nbuf == BlockSize {
			d.block(d.buf[:])
			d.nbuf = 0
		}
	}
	for len(p) >= BlockSize {
		d.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nbuf = copy(d.buf[:], p)
	}
	return n, nil
}

func (d *Digest) Checksum(out []byte) []byte {
	clone := *d
	bitLen := clone.length * 8
	var tail [BlockSize + 8]byte
	tail[0] = 0x80
	padLen := 56 - int(clone.length%64)
	if padLen <= 0 {
		padLen += 64
	}
	clone.Write(tail[:padLen])
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	clone.Write(lenBytes[:])

	if out == nil {
		out = make([]byte, DigestSize)
	}
	for i, v := range clone.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (d *Digest) block(p []byte) {
	var w [68]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for j := 16; j < 68; j++ {
		x := w[j-16] ^ w[j-9] ^ bits.RotateLeft32(w[j-3], 15)
		w[j] = p1(x) ^ bits.RotateLeft32(w[j-13], 7) ^ w[j-6]
	}
	var wp [64]uint32
	for j := 0; j < 64; j++ {
		wp[j] = w[j] ^ w[j+4]
	}

	a, b, c, dd, e, f, g, h := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4], d.h[5], d.h[6], d.h[7]

	for j := 0; j < 64; j++ {
		ss1 := bits.RotateLeft32(bits.RotateLeft32(a, 12)+e+bits.RotateLeft32(tj(j), j%32), 7)
		ss2 := ss1 ^ bits.RotateLeft32(a, 12)
		tt1 := ffj(j, a, b, c) + dd + ss2 + wp[j]
		tt2 := ggj(j, e, f, g) + h + ss1 + w[j]
		dd = c
		c = bits.RotateLeft32(b, 9)
		b = a
		a = tt1
		h = g
		g = bits.RotateLeft32(f, 19)
		f = e
		e = p0(tt2)
	}

	d.h[0] ^= a
	d.h[1] ^= b
	d.h[2] ^= c
	d.h[3] ^= dd
	d.h[4] ^= e
	d.h[5] ^= f
	d.h[6] ^= g
	d.h[7] ^= h
}

// Sum returns the SM3 checksum of data in one call.
func Sum(data []byte) [DigestSize]byte {
	d := New()
	d.Write(data)
	var out [DigestSize]byte
	copy(out[:], d.Checksum(nil))
	return out
}

var _ gocrypto.Digest = (*Digest)(nil)
