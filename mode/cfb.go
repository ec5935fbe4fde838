package mode

import "github.com/coldforge/gocrypto"

// CFB is s-byte cipher feedback: the keystream segment is the leading s
// bytes of E(register), xored with s bytes of plaintext; the register
// shifts left by s bytes and the new ciphertext segment is fed in.
// s defaults to the full block size (CFB-128 for a 16-byte cipher).
type CFB struct {
	*base
	segSize int
	partial []byte
}

func NewCFB(cipher gocrypto.BlockCipher, ivSource gocrypto.IVSource, segSize int) (*CFB, error) {
	b, err := newBase(cipher, nil, ivSource)
	if err != nil {
		return nil, err
	}
	if segSize <= 0 {
		segSize = b.blockSize
	}
	if segSize > b.blockSize {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cfb segment size %d exceeds block size %d", segSize, b.blockSize)
	}
	return &CFB{base: b, segSize: segSize}, nil
}

func (m *CFB) shift(reg []byte) { copy(reg, reg[m.segSize:]) }

func (m *CFB) stepEncrypt(reg []byte, seg []byte, out []byte) {
	ks := make([]byte, m.blockSize)
	m.cipher.EncryptBlock(ks, reg)
	xorInto(out, seg, ks[:m.segSize])
	m.shift(reg)
	copy(reg[m.blockSize-m.segSize:], out)
}

func (m *CFB) stepDecrypt(reg []byte, seg []byte, out []byte) {
	ks := make([]byte, m.blockSize)
	m.cipher.EncryptBlock(ks, reg)
	xorInto(out, seg, ks[:m.segSize])
	m.shift(reg)
	copy(reg[m.blockSize-m.segSize:], seg)
}

func (m *CFB) Encrypt(dst, plain []byte) ([]byte, error) {
	out := make([]byte, len(plain))
	reg := m.workingIV()
	for off := 0; off < len(plain); off += m.segSize {
		end := off + m.segSize
		if end > len(plain) {
			end = len(plain)
		}
		seg := make([]byte, m.segSize)
		copy(seg, plain[off:end])
		full := make([]byte, m.segSize)
		m.stepEncrypt(reg, seg, full)
		copy(out[off:end], full[:end-off])
	}
	return out, nil
}

func (m *CFB) Decrypt(dst, cipher []byte) ([]byte, error) {
	out := make([]byte, len(cipher))
	reg := m.workingIV()
	for off := 0; off < len(cipher); off += m.segSize {
		end := off + m.segSize
		if end > len(cipher) {
			end = len(cipher)
		}
		seg := make([]byte, m.segSize)
		copy(seg, cipher[off:end])
		full := make([]byte, m.segSize)
		m.stepDecrypt(reg, seg, full)
		copy(out[off:end], full[:end-off])
	}
	return out, nil
}

func (m *CFB) WriteEncrypt(p []byte) []byte {
	m.partial = append(m.partial, p...)
	n := (len(m.partial) / m.segSize) * m.segSize
	out := make([]byte, n)
	for off := 0; off < n; off += m.segSize {
		m.stepEncrypt(m.iv, m.partial[off:off+m.segSize], out[off:off+m.segSize])
	}
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out
}

func (m *CFB) WriteDecrypt(p []byte) []byte {
	m.partial = append(m.partial, p...)
	n := (len(m.partial) / m.segSize) * m.segSize
	out := make([]byte, n)
	for off := 0; off < n; off += m.segSize {
		m.stepDecrypt(m.iv, m.partial[off:off+m.segSize], out[off:off+m.segSize])
	}
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out
}

// FinishEncrypt/FinishDecrypt flush a final partial segment, treating it
// as a short final block — CFB needs no padding since it is self
// synchronizing keystream XOR.
func (m *CFB) FinishEncrypt() []byte {
	defer func() { m.iv = append(m.iv[:0], m.initialIV...) }()
	if len(m.partial) == 0 {
		return nil
	}
	out := make([]byte, len(m.partial))
	ks := make([]byte, m.blockSize)
	m.cipher.EncryptBlock(ks, m.iv)
	xorInto(out, m.partial, ks[:len(m.partial)])
	m.partial = m.partial[:0]
	return out
}

func (m *CFB) FinishDecrypt() []byte {
	defer func() { m.iv = append(m.iv[:0], m.initialIV...) }()
	if len(m.partial) == 0 {
		return nil
	}
	out := make([]byte, len(m.partial))
	ks := make([]byte, m.blockSize)
	m.cipher.EncryptBlock(ks, m.iv)
	xorInto(out, m.partial, ks[:len(m.partial)])
	m.partial = m.partial[:0]
	return out
}

func (m *CFB) Reset() { m.resetStream(); m.partial = m.partial[:0] }
