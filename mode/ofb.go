package mode

import "github.com/coldforge/gocrypto"

// OFB is output feedback: the keystream is produced by repeatedly
// encrypting the register itself (not the ciphertext), so encryption and
// decryption are the same XOR-with-keystream operation.
type OFB struct {
	*base
	partial   []byte
	keystream []byte
	ksUsed    int
}

func NewOFB(cipher gocrypto.BlockCipher, ivSource gocrypto.IVSource) (*OFB, error) {
	b, err := newBase(cipher, nil, ivSource)
	if err != nil {
		return nil, err
	}
	return &OFB{base: b, keystream: make([]byte, b.blockSize), ksUsed: b.blockSize}, nil
}

func (m *OFB) xorStream(dst, src []byte, reg []byte) {
	n := 0
	ks := make([]byte, m.blockSize)
	copy(ks, reg)
	avail := 0
	for n < len(src) {
		if avail == 0 {
			m.cipher.EncryptBlock(ks, ks)
			copy(reg, ks)
			avail = m.blockSize
		}
		take := avail
		if rem := len(src) - n; take > rem {
			take = rem
		}
		off := m.blockSize - avail
		xorInto(dst[n:n+take], src[n:n+take], ks[off:off+take])
		n += take
		avail -= take
	}
}

func (m *OFB) Encrypt(dst, plain []byte) ([]byte, error) {
	out := make([]byte, len(plain))
	reg := m.workingIV()
	m.xorStream(out, plain, reg)
	return out, nil
}

// Decrypt is identical to Encrypt: OFB keystream XOR is its own inverse.
func (m *OFB) Decrypt(dst, cipher []byte) ([]byte, error) {
	return m.Encrypt(dst, cipher)
}

func (m *OFB) Write(p []byte) []byte {
	out := make([]byte, len(p))
	n := 0
	for n < len(p) {
		if m.ksUsed == m.blockSize {
			m.cipher.EncryptBlock(m.keystream, m.iv)
			copy(m.iv, m.keystream)
			m.ksUsed = 0
		}
		take := m.blockSize - m.ksUsed
		if rem := len(p) - n; take > rem {
			take = rem
		}
		xorInto(out[n:n+take], p[n:n+take], m.keystream[m.ksUsed:m.ksUsed+take])
		m.ksUsed += take
		n += take
	}
	return out
}

// Finish restores the feedback register and keystream offset to their
// initial state so the stream is immediately ready for another message;
// there is never a buffered partial block to flush, since every input
// byte is consumed by the keystream as it arrives.
func (m *OFB) Finish() []byte {
	m.iv = append(m.iv[:0], m.initialIV...)
	m.ksUsed = m.blockSize
	return nil
}

func (m *OFB) Reset() {
	m.resetStream()
	m.ksUsed = m.blockSize
}
