package sha2

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/coldforge/gocrypto"
)

const Block512Size = 128

// Digest512 implements gocrypto.Digest for SHA-512 and its truncated
// siblings (SHA-384, SHA-512/224, SHA-512/256, and arbitrary SHA-512/t).
type Digest512 struct {
	h       [8]uint64
	buf     [Block512Size]byte
	nbuf    int
	length  uint64
	outBits int
	iv      [8]uint64
}

func newDigest512(iv [8]uint64, outBits int) *Digest512 {
	d := &Digest512{iv: iv, outBits: outBits}
	d.h = iv
	return d
}

// New512 returns a fresh SHA-512 digest.
func New512() *Digest512 { return newDigest512(h512Init, 512) }

// New384 returns a fresh SHA-384 digest.
func New384() *Digest512 { return newDigest512(h384Init, 384) }

// New512_224 returns a fresh SHA-512/224 digest.
func New512_224() *Digest512 { return newDigest512(tIV(224), 224) }

// New512_256 returns a fresh SHA-512/256 digest.
func New512_256() *Digest512 { return newDigest512(tIV(256), 256) }

// New512T returns a fresh SHA-512/t digest for any t that is a multiple
// of 8, less than 512, and not 384 (which has its own fixed IV).
func New512T(t int) (*Digest512, error) {
	if t <= 0 || t >= 512 || t%8 != 0 || t == 384 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "sha2: invalid SHA-512/t output length %d", t)
	}
	return newDigest512(tIV(t), t), nil
}

// tIV implements the FIPS 180-4 §5.3.6 SHA-512/t IV generation function:
// hash the ASCII string "SHA-512/t" with SHA-512 seeded from its own IV
// xored with the repeating byte 0xa5, and use the result as the new IV.
func tIV(t int) [8]uint64 {
	var seed [8]uint64
	for i, v := range h512Init {
		seed[i] = v ^ 0xa5a5a5a5a5a5a5a5
	}
	seeder := newDigest512(seed, 512)
	fmt.Fprintf(seeder, "SHA-512/%d", t)
	sum := seeder.rawChecksum()
	var out [8]uint64
	for i := range out {
		out[i] = binary.BigEndian.Uint64(sum[i*8:])
	}
	return out
}

func (d *Digest512) Reset() {
	d.h = d.iv
	d.nbuf = 0
	d.length = 0
}

func (d *Digest512) BlockSize() int { return Block512Size }
func (d *Digest512) Size() int      { return d.outBits }

func (d *Digest512) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)
	if d.nbuf > 0 {
		c := copy(d.buf[d.nbuf:], p)
		d.nbuf += c
		p = p[c:]
		if d.nbuf == Block512Size {
			d.block(d.buf[:])
			d.nbuf = 0
		}
	}
	for len(p) >= Block512Size {
		d.block(p[:Block512Size])
		p = p[Block512Size:]
	}
	if len(p) > 0 {
		d.nbuf = copy(d.buf[:], p)
	}
	return n, nil
}

// rawChecksum returns the full, untruncated 64-byte hash state; tIV needs
// all 512 bits even when building a truncated variant's IV.
func (d *Digest512) rawChecksum() [64]byte {
	clone := *d
	bitLen := clone.length * 8
	var tail [Block512Size + 16]byte
	tail[0] = 0x80
	padLen := 112 - int(clone.length%128)
	if padLen <= 0 {
		padLen += 128
	}
	clone.Write(tail[:padLen])
	var lenBytes [16]byte
	binary.BigEndian.PutUint64(lenBytes[8:], bitLen)
	clone.Write(lenBytes[:])

	var full [64]byte
	for i, v := range clone.h {
		binary.BigEndian.PutUint64(full[i*8:], v)
	}
	return full
}

// Checksum returns the digest truncated to Size() bits, per the
// gocrypto.Digest contract.
func (d *Digest512) Checksum(out []byte) []byte {
	full := d.rawChecksum()
	n := d.outBits / 8
	if out == nil {
		out = make([]byte, n)
	}
	copy(out, full[:n])
	return out
}

// Sum returns the checksum truncated to the digest's configured output
// length.
func (d *Digest512) Sum() []byte {
	return d.Checksum(nil)
}

func (d *Digest512) block(p []byte) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(p[i*8:])
	}
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ (w[i-15] >> 7)
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ (w[i-2] >> 6)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, dd, e, f, g, h := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4], d.h[5], d.h[6], d.h[7]

	for i := 0; i < 80; i++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k512[i] + w[i]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
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

// Sum512 returns the SHA-512 checksum of data in one call.
func Sum512(data []byte) [64]byte {
	d := New512()
	d.Write(data)
	var out [64]byte
	copy(out[:], d.Sum())
	return out
}

// Sum384 returns the SHA-384 checksum of data in one call.
func Sum384(data []byte) [48]byte {
	d := New384()
	d.Write(data)
	var out [48]byte
	copy(out[:], d.Sum())
	return out
}

// Sum512_256 returns the SHA-512/256 checksum of data in one call.
func Sum512_256(data []byte) [32]byte {
	d := New512_256()
	d.Write(data)
	var out [32]byte
	copy(out[:], d.Sum())
	return out
}

// Sum512_224 returns the SHA-512/224 checksum of data in one call.
func Sum512_224(data []byte) [28]byte {
	d := New512_224()
	d.Write(data)
	var out [28]byte
	copy(out[:], d.Sum())
	return out
}

var _ gocrypto.Digest = (*Digest512)(nil)
