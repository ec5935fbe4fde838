package sha3

import (
	"encoding/binary"

	"github.com/coldforge/gocrypto"
)

// Domain separation suffixes from FIPS 202 §6.1/§6.2, applied before the
// multi-rate pad10*1 padding. Each byte already has the construction's
// domain bits packed low-bit-first followed by the pad10*1 start bit;
// dsBits below counts how many low bits of each are meaningful.
const (
	dsSHA3      = 0x06
	dsSHA3Bits  = 3
	dsSHAKE     = 0x1f
	dsSHAKEBits = 5
)

// State is a Keccak sponge. It implements gocrypto.Digest for the fixed
// SHA3-n instances and gocrypto.DigestXOF for SHAKE, plus a bit-level
// absorb for inputs whose length isn't a whole number of bytes.
type State struct {
	a       [25]uint64
	rate    int // bytes
	dsbyte  byte
	dsBits  int
	outBits int // fixed output length in bits; 0 for an XOF not yet sized

	buf []byte // unabsorbed whole bytes
	// pendingBits holds up to 7 trailing message bits not yet absorbed,
	// right-justified, used only by WriteBits.
	pendingBits  byte
	pendingCount int

	squeezing  bool
	squeezeBuf []byte
	squeezeOff int
}

func newState(rate int, ds byte, dsBits int, outBits int) *State {
	return &State{rate: rate, dsbyte: ds, dsBits: dsBits, outBits: outBits}
}

func (d *State) Reset() {
	d.a = [25]uint64{}
	d.buf = d.buf[:0]
	d.pendingBits = 0
	d.pendingCount = 0
	d.squeezing = false
	d.squeezeBuf = nil
	d.squeezeOff = 0
}

func (d *State) BlockSize() int { return d.rate }
func (d *State) Size() int     { return d.outBits }

// SetDigestLen sets the XOF's output length in bits and resets all
// absorbed state.
func (d *State) SetDigestLen(bits int) {
	d.outBits = bits
	d.Reset()
}

func (d *State) absorbBlock(block []byte) {
	for i := 0; i < d.rate/8; i++ {
		d.a[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
	keccakF1600(&d.a)
}

func (d *State) Write(p []byte) (int, error) {
	if d.squeezing {
		return 0, gocrypto.New(gocrypto.NotSupportUsage, "sha3: cannot write after squeezing has started")
	}
	if d.pendingCount != 0 {
		return 0, gocrypto.New(gocrypto.NotSupportUsage, "sha3: cannot mix WriteBits with byte-aligned Write")
	}
	n := len(p)
	d.buf = append(d.buf, p...)
	for len(d.buf) >= d.rate {
		d.absorbBlock(d.buf[:d.rate])
		d.buf = d.buf[d.rate:]
	}
	return n, nil
}

// WriteBits absorbs nbits bits from the low bits of each byte of p
// (little-bit-first within each byte, per FIPS 202's bit-string
// convention), allowing message lengths that are not whole bytes. It may
// only be called once, as the final write before Checksum.
func (d *State) WriteBits(p []byte, nbits int) error {
	if d.squeezing {
		return gocrypto.New(gocrypto.NotSupportUsage, "sha3: cannot write after squeezing has started")
	}
	if nbits < 0 || nbits > len(p)*8 {
		return gocrypto.New(gocrypto.InvalidParameter, "sha3: nbits out of range")
	}
	full := nbits / 8
	rem := nbits % 8
	if _, err := d.Write(p[:full]); err != nil {
		return err
	}
	if rem > 0 {
		mask := byte(1<<uint(rem)) - 1
		d.pendingBits = p[full] & mask
		d.pendingCount = rem
	}
	return nil
}

// finalizeBlocks builds the final block(s) to absorb: the buffered tail, the domain
// suffix bits (and any WriteBits remainder) merged with the start of the
// pad10*1 padding, and the terminal 0x80 bit. dsbyte already encodes the
// construction's domain-separation bits with the pad10*1 start bit
// (e.g. 0x06 for SHA3's "01"+1, 0x1f for SHAKE's "1111"+1); dsBits counts
// how many low bits of dsbyte are meaningful.
func (d *State) finalizeBlocks() []byte {
	suffix := uint16(d.dsbyte)
	suffixBits := d.dsBits
	if d.pendingCount > 0 {
		suffix = uint16(d.pendingBits) | (suffix << uint(d.pendingCount))
		suffixBits += d.pendingCount
	}
	// suffixBits <= 5+7 = 12, never spans more than two bytes.
	tail := append([]byte(nil), d.buf...)
	tail = append(tail, byte(suffix))
	if suffixBits > 8 {
		tail = append(tail, byte(suffix>>8))
	}
	suffixEnd := len(tail)

	for len(tail)%d.rate != 0 {
		tail = append(tail, 0)
	}
	// If the suffix plus pad start filled the block exactly, pad10*1
	// still needs its own block with the terminal bit.
	if suffixBits == 8 && suffixEnd%d.rate == 0 {
		tail = append(tail, make([]byte, d.rate)...)
	}
	tail[len(tail)-1] ^= 0x80
	return tail
}

func (d *State) startSqueezing() {
	if d.squeezing {
		return
	}
	blocks := d.finalizeBlocks()
	for off := 0; off < len(blocks); off += d.rate {
		d.absorbBlock(blocks[off : off+d.rate])
	}
	d.squeezing = true
	d.squeezeBuf = nil
	d.squeezeOff = 0
}

func (d *State) squeezeBytes(n int) []byte {
	d.startSqueezing()
	out := make([]byte, 0, n)
	for len(out) < n {
		if d.squeezeOff == 0 {
			block := make([]byte, d.rate)
			for i := 0; i < d.rate/8; i++ {
				binary.LittleEndian.PutUint64(block[i*8:], d.a[i])
			}
			d.squeezeBuf = block
		}
		take := d.rate - d.squeezeOff
		if rem := n - len(out); take > rem {
			take = rem
		}
		out = append(out, d.squeezeBuf[d.squeezeOff:d.squeezeOff+take]...)
		d.squeezeOff += take
		if d.squeezeOff == d.rate {
			keccakF1600(&d.a)
			d.squeezeOff = 0
		}
	}
	return out
}

// Checksum squeezes Size() bits of output. For the fixed SHA3-n
// instances this is always the construction's output length; for SHAKE
// it is whatever length SetDigestLen configured.
func (d *State) Checksum(out []byte) []byte {
	clone := *d
	n := d.outBits / 8
	squeezed := clone.squeezeBytes(n)
	if out == nil {
		return squeezed
	}
	copy(out, squeezed)
	return out
}

var (
	_ gocrypto.Digest    = (*State)(nil)
	_ gocrypto.DigestXOF = (*State)(nil)
)
