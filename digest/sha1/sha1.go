// Package sha1 implements the SHA-1 message digest (FIPS 180-4).
package sha1

import (
	"encoding/binary"
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const (
	BlockSize  = 64
	DigestSize = 20
)

type Digest struct {
	h      [5]uint32
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
	d.h = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}
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
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, dd, e := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & dd)
			k = 0x5A827999
		case i < 40:
			f = b ^ c ^ dd
			k = 0x6ED9EBA1
		case i < 60:
			f = (b & c) | (b & dd) | (c & dd)
			k = 0x8F1BBCDC
		default:
			f = b ^ c ^ dd
			k = 0xCA62C1D6
		}
		temp := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = dd
		dd = c
		c = bits.RotateLeft32(b, 30)
		b = a
		a = temp
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
}

// Sum returns the SHA-1 checksum of data in one call.
func Sum(data []byte) [DigestSize]byte {
	d := New()
	d.Write(data)
	var out [DigestSize]byte
	copy(out[:], d.Checksum(nil))
	return out
}

var _ gocrypto.Digest = (*Digest)(nil)
