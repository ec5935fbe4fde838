// Package mode implements the block-cipher modes of operation — ECB, CBC,
// CFB, OFB and CTR — each with both a one-shot Encrypt/Decrypt contract and
// a resumable streaming contract (Write/Finish), built only on the
// gocrypto.BlockCipher and gocrypto.Padding contracts.
package mode

import "github.com/coldforge/gocrypto"

// base holds the state every mode shares: the cipher, padding scheme, IV
// source, the fixed initial IV, and the streaming buffers. One-shot
// Encrypt/Decrypt never touch the streaming fields (iv/pond/partial);
// they derive their own working register from initialIV so a mode
// instance's one-shot and streaming contracts do not interfere with each
// other. Mixing a one-shot call into the middle of an open stream is not
// supported — finish or reset the stream first.
type base struct {
	cipher    gocrypto.BlockCipher
	padding   gocrypto.Padding
	ivSource  gocrypto.IVSource
	blockSize int
	initialIV []byte

	// Streaming state.
	iv       []byte // feedback register, advances as blocks are processed
	pond     []byte // fully transformed output not yet drawn off
	partial  []byte // buffered input, always < one block (< s for CFB)
	finished bool
}

func newBase(cipher gocrypto.BlockCipher, padding gocrypto.Padding, ivSource gocrypto.IVSource) (*base, error) {
	if cipher == nil {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cipher must not be nil")
	}
	bs := cipher.BlockSize()
	if bs <= 0 {
		bs = 1
	}
	b := &base{
		cipher:    cipher,
		padding:   padding,
		ivSource:  ivSource,
		blockSize: bs,
	}
	if ivSource != nil {
		b.initialIV = make([]byte, bs)
		if err := ivSource.Draw(b.initialIV); err != nil {
			return nil, gocrypto.Wrap(gocrypto.RandError, err, "mode: drawing initial IV")
		}
	} else {
		b.initialIV = make([]byte, bs)
	}
	b.iv = append([]byte(nil), b.initialIV...)
	return b, nil
}

// SetIV replaces the initial IV; len(iv) must equal the block size.
func (b *base) SetIV(iv []byte) error {
	if len(iv) != b.blockSize {
		return gocrypto.New(gocrypto.InvalidParameter, "mode: IV must be %d bytes, got %d", b.blockSize, len(iv))
	}
	b.initialIV = append(b.initialIV[:0], iv...)
	b.iv = append(b.iv[:0], iv...)
	return nil
}

// UpdateIV re-draws the initial IV from the configured IVSource.
func (b *base) UpdateIV() error {
	if b.ivSource == nil {
		return gocrypto.New(gocrypto.InvalidParameter, "mode: no IV source configured")
	}
	if err := b.ivSource.Draw(b.initialIV); err != nil {
		return gocrypto.Wrap(gocrypto.RandError, err, "mode: redrawing IV")
	}
	b.iv = append(b.iv[:0], b.initialIV...)
	return nil
}

// workingIV returns a fresh copy of the initial IV for a one-shot call.
func (b *base) workingIV() []byte {
	return append([]byte(nil), b.initialIV...)
}

// resetStream restores the streaming feedback register to the initial IV
// and clears buffered state, allowing the stream to be reused.
func (b *base) resetStream() {
	b.iv = append(b.iv[:0], b.initialIV...)
	b.pond = b.pond[:0]
	b.partial = b.partial[:0]
	b.finished = false
}

func xorInto(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
