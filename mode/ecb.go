package mode

import "github.com/coldforge/gocrypto"

// ECB is electronic codebook mode: every block is transformed
// independently, with no feedback and no IV.
type ECB struct {
	cipher    gocrypto.BlockCipher
	padding   gocrypto.Padding
	blockSize int

	pond      []byte
	partial   []byte
	heldPlain []byte // last decrypted block, withheld until confirmed non-final
}

func NewECB(cipher gocrypto.BlockCipher, padding gocrypto.Padding) (*ECB, error) {
	if cipher == nil {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: cipher must not be nil")
	}
	return &ECB{cipher: cipher, padding: padding, blockSize: cipher.BlockSize()}, nil
}

func (m *ECB) Encrypt(dst, plain []byte) ([]byte, error) {
	in := plain
	if m.padding != nil {
		in = m.padding.Pad(append([]byte(nil), plain...), m.blockSize)
	} else if len(plain)%m.blockSize != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: ecb input not block aligned")
	}
	out := make([]byte, len(in))
	for off := 0; off < len(in); off += m.blockSize {
		m.cipher.EncryptBlock(out[off:off+m.blockSize], in[off:off+m.blockSize])
	}
	return out, nil
}

func (m *ECB) Decrypt(dst, cipher []byte) ([]byte, error) {
	if len(cipher)%m.blockSize != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: ecb ciphertext not block aligned")
	}
	out := make([]byte, len(cipher))
	for off := 0; off < len(cipher); off += m.blockSize {
		m.cipher.DecryptBlock(out[off:off+m.blockSize], cipher[off:off+m.blockSize])
	}
	if m.padding != nil {
		return m.padding.Unpad(out)
	}
	return out, nil
}

func (m *ECB) Reset() {
	m.pond = m.pond[:0]
	m.partial = m.partial[:0]
	m.heldPlain = m.heldPlain[:0]
}

// WriteEncrypt feeds plaintext into an encrypting ECB stream, returning
// any whole blocks of ciphertext that are now available.
func (m *ECB) WriteEncrypt(p []byte) ([]byte, error) {
	m.partial = append(m.partial, p...)
	n := (len(m.partial) / m.blockSize) * m.blockSize
	out := make([]byte, n)
	for off := 0; off < n; off += m.blockSize {
		m.cipher.EncryptBlock(out[off:off+m.blockSize], m.partial[off:off+m.blockSize])
	}
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out, nil
}

// FinishEncrypt pads and encrypts whatever plaintext remains buffered.
func (m *ECB) FinishEncrypt() ([]byte, error) {
	tail := m.partial
	if m.padding != nil {
		tail = m.padding.Pad(append([]byte(nil), tail...), m.blockSize)
	} else if len(tail) != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: ecb stream left a partial block with no padding")
	}
	out := make([]byte, len(tail))
	for off := 0; off < len(tail); off += m.blockSize {
		m.cipher.EncryptBlock(out[off:off+m.blockSize], tail[off:off+m.blockSize])
	}
	m.partial = m.partial[:0]
	return out, nil
}

// WriteDecrypt feeds ciphertext into a decrypting ECB stream. The most
// recently decrypted block is always withheld (not returned) until a
// later call or Finish confirms whether it needs unpadding, since ECB's
// padding lives in the final block only.
func (m *ECB) WriteDecrypt(p []byte) ([]byte, error) {
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
		m.cipher.DecryptBlock(buf, m.partial[off:off+m.blockSize])
		out = append(out, buf...)
	}
	held := make([]byte, m.blockSize)
	m.cipher.DecryptBlock(held, m.partial[n-m.blockSize:n])
	m.heldPlain = held
	m.partial = append(m.partial[:0], m.partial[n:]...)
	return out, nil
}

// FinishDecrypt releases the withheld final block and unpads it.
func (m *ECB) FinishDecrypt() ([]byte, error) {
	if len(m.partial) != 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "mode: ecb ciphertext not block aligned")
	}
	out := append([]byte(nil), m.heldPlain...)
	m.heldPlain = m.heldPlain[:0]
	if m.padding != nil {
		return m.padding.Unpad(out)
	}
	return out, nil
}
