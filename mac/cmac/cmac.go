// Package cmac implements CMAC (NIST SP 800-38B) over any
// gocrypto.BlockCipher.
package cmac

import "github.com/coldforge/gocrypto"

// CMAC computes a cipher-based message authentication code.
type CMAC struct {
	cipher    gocrypto.BlockCipher
	blockSize int
	k1, k2    []byte

	buf []byte // unprocessed tail, always <= blockSize bytes
	mac []byte // running CBC-MAC of all complete blocks except the last
}

// rb is the constant used by the subkey-doubling step, chosen by block
// size per SP 800-38B: 0x87 for 128-bit blocks, 0x1b for 64-bit blocks.
func rb(blockSize int) byte {
	if blockSize == 8 {
		return 0x1b
	}
	return 0x87
}

// dbl implements the SP 800-38B doubling operation in GF(2^n).
func dbl(block []byte, r byte) []byte {
	n := len(block)
	out := make([]byte, n)
	var carry byte
	for i := n - 1; i >= 0; i-- {
		v := block[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[n-1] ^= r
	}
	return out
}

func subkeys(cipher gocrypto.BlockCipher) (k1, k2 []byte) {
	bs := cipher.BlockSize()
	l := make([]byte, bs)
	cipher.EncryptBlock(l, l)
	r := rb(bs)
	k1 = dbl(l, r)
	k2 = dbl(k1, r)
	return k1, k2
}

// New builds a CMAC instance over the given block cipher.
func New(cipher gocrypto.BlockCipher) (*CMAC, error) {
	if cipher == nil {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "cmac: cipher must not be nil")
	}
	bs := cipher.BlockSize()
	k1, k2 := subkeys(cipher)
	m := &CMAC{cipher: cipher, blockSize: bs, k1: k1, k2: k2, mac: make([]byte, bs)}
	return m, nil
}

func (m *CMAC) BlockSize() int { return m.blockSize }
func (m *CMAC) Size() int      { return m.blockSize * 8 }

func (m *CMAC) Reset() {
	m.buf = m.buf[:0]
	for i := range m.mac {
		m.mac[i] = 0
	}
}

// Write absorbs p, always holding back the last 1 to blockSize bytes (the
// possibly partial final block) so the final block can be distinguished (complete vs. padded) at Checksum.
func (m *CMAC) Write(p []byte) (int, error) {
	n := len(p)
	m.buf = append(m.buf, p...)
	for len(m.buf) > m.blockSize {
		block := m.buf[:m.blockSize]
		for i := range m.mac {
			m.mac[i] ^= block[i]
		}
		m.cipher.EncryptBlock(m.mac, m.mac)
		m.buf = append(m.buf[:0], m.buf[m.blockSize:]...)
	}
	return n, nil
}

// Checksum finalizes the MAC over everything written so far, without
// disturbing state so further Writes could in principle continue — but
// per SP 800-38B a CMAC is only meaningful as a single finalized value;
// call Reset before reusing the instance for a new message.
func (m *CMAC) Checksum(out []byte) []byte {
	mac := append([]byte(nil), m.mac...)
	var last []byte
	if len(m.buf) == m.blockSize {
		last = make([]byte, m.blockSize)
		for i := range last {
			last[i] = m.buf[i] ^ m.k1[i]
		}
	} else {
		last = make([]byte, m.blockSize)
		copy(last, m.buf)
		last[len(m.buf)] = 0x80
		for i := range last {
			last[i] ^= m.k2[i]
		}
	}
	for i := range mac {
		mac[i] ^= last[i]
	}
	m.cipher.EncryptBlock(mac, mac)
	if out == nil {
		return mac
	}
	copy(out, mac)
	return out
}

var _ gocrypto.Digest = (*CMAC)(nil)
