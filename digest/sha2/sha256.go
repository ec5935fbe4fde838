package sha2

import (
	"encoding/binary"
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const Block256Size = 64

// Digest256 implements gocrypto.Digest for SHA-256 and, with a different
// initial hash value, SHA-224.
type Digest256 struct {
	h       [8]uint32
	buf     [Block256Size]byte
	nbuf    int
	length  uint64
	outBits int
}

// New256 returns a fresh SHA-256 digest.
func New256() *Digest256 { return newDigest256(h256Init, 256) }

// New224 returns a fresh SHA-224 digest.
func New224() *Digest256 { return newDigest256(h224Init, 224) }

func newDigest256(iv [8]uint32, outBits int) *Digest256 {
	d := &Digest256{outBits: outBits}
	d.h = iv
	return d
}

func (d *Digest256) Reset() {
	if d.outBits == 224 {
		d.h = h224Init
	} else {
		d.h = h256Init
	}
	d.nbuf = 0
	d.length = 0
}

func (d *Digest256) BlockSize() int { return Block256Size }
func (d *Digest256) Size() int      { return d.outBits }

func (d *Digest256) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)
	if d.nbuf > 0 {
		c := copy(d.buf[d.nbuf:], p)
		d.nbuf += c
		p = p[c:]
		if d.nbuf == Block256Size {
			d.block(d.buf[:])
			d.nbuf = 0
		}
	}
	for len(p) >= Block256Size {
		d.block(p[:Block256Size])
		p = p[Block256Size:]
	}
	if len(p) > 0 {
		d.nbuf = copy(d.buf[:], p)
	}
	return n, nil
}

func (d *Digest256) Checksum(out []byte) []byte {
	clone := *d
	bitLen := clone.length * 8
	var tail [Block256Size + 8]byte
	tail[0] = 0x80
	padLen := 56 - int(clone.length%64)
	if padLen <= 0 {
		padLen += 64
	}
	clone.Write(tail[:padLen])
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	clone.Write(lenBytes[:])

	n := d.outBits / 8
	if out == nil {
		out = make([]byte, n)
	}
	var full [32]byte
	for i, v := range clone.h {
		binary.BigEndian.PutUint32(full[i*4:], v)
	}
	copy(out, full[:n])
	return out
}

func (d *Digest256) block(p []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, dd, e, f, g, h := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4], d.h[5], d.h[6], d.h[7]

	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k256[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h = g
		g = f
		f = e
		e = dd + t1
		dd = c
		c = b
		b = a
		a = t1 + t2
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
	d.h[5] += f
	d.h[6] += g
	d.h[7] += h
}

// Sum256 returns the SHA-256 checksum of data in one call.
func Sum256(data []byte) [32]byte {
	d := New256()
	d.Write(data)
	var out [32]byte
	copy(out[:], d.Checksum(nil))
	return out
}

// Sum224 returns the SHA-224 checksum of data in one call.
func Sum224(data []byte) [28]byte {
	d := New224()
	d.Write(data)
	var out [28]byte
	copy(out[:], d.Checksum(nil))
	return out
}

var _ gocrypto.Digest = (*Digest256)(nil)
