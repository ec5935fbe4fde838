// Package md5 implements the MD5 message digest (RFC 1321).
package md5

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const (
	BlockSize  = 64
	DigestSize = 16
)

// k is RFC 1321's T[i] table, derived rather than transcribed:
// T[i] = floor(abs(sin(i+1)) * 2^32), 0 <= i < 64.
var k [64]uint32

var shifts = [64]uint{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

func init() {
	for i := 0; i < 64; i++ {
		k[i] = uint32(math.Floor(math.Abs(math.Sin(float64(i+1))) * 4294967296))
	}
}

// Digest implements gocrypto.Digest for MD5.
type Digest struct {
	a, b, c, d uint32
	buf        [BlockSize]byte
	nbuf       int
	length     uint64
}

// New returns a fresh MD5 digest.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.a, d.b, d.c, d.d = 0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476
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
	binary.LittleEndian.PutUint64(lenBytes[:], bitLen)
	clone.Write(lenBytes[:])

	if out == nil {
		out = make([]byte, DigestSize)
	}
	binary.LittleEndian.PutUint32(out[0:4], clone.a)
	binary.LittleEndian.PutUint32(out[4:8], clone.b)
	binary.LittleEndian.PutUint32(out[8:12], clone.c)
	binary.LittleEndian.PutUint32(out[12:16], clone.d)
	return out
}

func (d *Digest) block(p []byte) {
	a, b, c, dd := d.a, d.b, d.c, d.d
	var m [16]uint32
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint32(p[i*4:])
	}

	for i := 0; i < 64; i++ {
		var f uint32
		var g int
		switch {
		case i < 16:
			f = (b & c) | (^b & dd)
			g = i
		case i < 32:
			f = (dd & b) | (^dd & c)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ c ^ dd
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^dd)
			g = (7 * i) % 16
		}
		f = f + a + k[i] + m[g]
		a, dd, c = dd, c, b
		b = b + bits.RotateLeft32(f, int(shifts[i]))
	}

	d.a += a
	d.b += b
	d.c += c
	d.d += dd
}

// Sum returns the MD5 checksum of data in one call.
func Sum(data []byte) [DigestSize]byte {
	d := New()
	d.Write(data)
	var out [DigestSize]byte
	copy(out[:], d.Checksum(nil))
	return out
}

var _ gocrypto.Digest = (*Digest)(nil)
