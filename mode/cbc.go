package mode

import "github.com/coldforge/gocrypto"

// CBC is cipher block chaining: each plaintext block is xored with the
// previous ciphertext block (or the IV) before encryption.
type CBC struct {
	*base
	partial   []byte
	heldPlain []byte // last decrypted block, withheld until confirmed non-final
}

func NewCBC(cipher gocrypto.BlockCipher, padding gocrypto.Padding, ivSource gocrypto.IVSource) (*CBC, error) {
	b, err := newBase(cipher, padding, ivSource)
	if err != nil {
		return nil, err
	}
	return &CBC{base: b}, nil
}

func (m *CBC) Encrypt(dst, plain []byte) ([]byte, error) {
	in := plain
	if m.padding != nil {
		in = m.padding.Pad(append([]byte(nil), plain...), m.blockSize)
	} else if len(plain)%m.blockSize != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cbc input not block aligned")
	}
	out := make([]byte, len(in))
	prev := m.workingIV()
	buf := make([]byte, m.blockSize)
	for off := 0; off < len(in); off += m.blockSize {
		xorInto(buf, in[off:off+m.blockSize], prev)
		m.cipher.EncryptBlock(out[off:off+m.blockSize], buf)
		prev = out[off : off+m.blockSize]
	}
	return out, nil
}

func (m *CBC) Decrypt(dst, cipher []byte) ([]byte, error) {
	if len(cipher)%m.blockSize != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cbc ciphertext not block aligned")
	}
	out := make([]byte, len(cipher))
	prev := m.workingIV()
	buf := make([]byte, m.blockSize)
	for off := 0; off < len(cipher); off += m.blockSize {
		m.cipher.DecryptBlock(buf, cipher[off:off+m.blockSize])
		xorInto(out[off:off+m.blockSize], buf, prev)
		prev = cipher[off : off+m.blockSize]
	}
	if m.padding != nil {
		return m.padding.Unpad(out)
	}
	return out, nil
}

// WriteEncrypt feeds plaintext into an encrypting CBC stream, returning
// any whole blocks of ciphertext that are now available.
func (m *CBC) WriteEncrypt(p []byte) ([]byte, error) {
	m.partial = append(m.partial, p...)
	n := (len(m.partial) / m.blockSize) * m.blockSize
	out := make([]byte, n)
	buf := make([]byte, m.blockSize)
	for off := 0; off < n; off += m.blockSize {
		xorInto(buf, m.partial[off:off+m.blockSize], m.iv)
		m.cipher.EncryptBlock(out[off:off+m.blockSize], buf)
		copy(m.iv, out[off:off+m.blockSize])
	}
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out, nil
}

// FinishEncrypt pads and encrypts whatever plaintext remains buffered,
// then restores the feedback register to the initial IV so the stream is
// immediately ready for another message.
func (m *CBC) FinishEncrypt() ([]byte, error) {
	tail := m.partial
	if m.padding != nil {
		tail = m.padding.Pad(append([]byte(nil), tail...), m.blockSize)
	} else if len(tail) != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cbc stream left a partial block with no padding")
	}
	out := make([]byte, len(tail))
	buf := make([]byte, m.blockSize)
	for off := 0; off < len(tail); off += m.blockSize {
		xorInto(buf, tail[off:off+m.blockSize], m.iv)
		m.cipher.EncryptBlock(out[off:off+m.blockSize], buf)
		copy(m.iv, out[off:off+m.blockSize])
	}
	m.partial = m.partial[:0]
	m.iv = append(m.iv[:0], m.initialIV...)
	return out, nil
}

// WriteDecrypt feeds ciphertext into a decrypting CBC stream. The most
// recently decrypted block is always withheld (not returned) until a
// later call or Finish confirms whether it needs unpadding, since CBC's
// padding lives in the final block only.
func (m *CBC) WriteDecrypt(p []byte) ([]byte, error) {
	m.partial = append(m.partial, p...)
	n := (len(m.partial) / m.blockSize) * m.blockSize
	if n == 0 {
		return nil, nil
	}
	var out []byte
	if len(m.heldPlain) > 0 {
		out = append(out, m.heldPlain...)
		m.heldPlain = m.heldPlain[:0]
	}
	nBlocks := n / m.blockSize
	buf := make([]byte, m.blockSize)
	for i := 0; i < nBlocks-1; i++ {
		off := i * m.blockSize
		ct := m.partial[off : off+m.blockSize]
		m.cipher.DecryptBlock(buf, ct)
		xorInto(buf, buf, m.iv)
		out = append(out, buf...)
		copy(m.iv, ct)
	}
	last := n - m.blockSize
	ctLast := m.partial[last:n]
	held := make([]byte, m.blockSize)
	m.cipher.DecryptBlock(held, ctLast)
	xorInto(held, held, m.iv)
	copy(m.iv, ctLast)
	m.heldPlain = held
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out, nil
}

// FinishDecrypt releases the withheld final block, unpads it, and
// restores the feedback register to the initial IV so the stream is
// immediately ready for another message.
func (m *CBC) FinishDecrypt() ([]byte, error) {
	defer func() { m.iv = append(m.iv[:0], m.initialIV...) }()
	if len(m.partial) != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cbc ciphertext not block aligned")
	}
	out := append([]byte(nil), m.heldPlain...)
	m.heldPlain = m.heldPlain[:0]
	if m.padding != nil {
		return m.padding.Unpad(out)
	}
	return out, nil
}

func (m *CBC) Reset() { m.resetStream(); m.partial = m.partial[:0]; m.heldPlain = m.heldPlain[:0] }
