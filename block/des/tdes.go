package des

import "github.com/coldforge/gocrypto"

// TripleCipher is DES-EDE3 (three independent 8-byte keys). Encryption is
// E_k3(D_k2(E_k1(p))); decryption is the inverse, D_k1(E_k2(D_k3(c))).
type TripleCipher struct {
	k1, k2, k3 *Cipher
}

// NewTripleCipher builds a TDES cipher from three 8-byte keys.
func NewTripleCipher(key1, key2, key3 []byte) (*TripleCipher, error) {
	k1, err := NewCipher(key1)
	if err != nil {
		return nil, err
	}
	k2, err := NewCipher(key2)
	if err != nil {
		return nil, err
	}
	k3, err := NewCipher(key3)
	if err != nil {
		return nil, err
	}
	return &TripleCipher{k1: k1, k2: k2, k3: k3}, nil
}

// NewTripleCipher24 splits a 24-byte concatenated key into k1||k2||k3.
func NewTripleCipher24(key []byte) (*TripleCipher, error) {
	if len(key) != 24 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "des: triple-DES key must be 24 bytes, got %d", len(key))
	}
	return NewTripleCipher(key[0:8], key[8:16], key[16:24])
}

func (t *TripleCipher) BlockSize() int { return BlockSize }

func (t *TripleCipher) EncryptBlock(dst, plain []byte) {
	var tmp1, tmp2 [BlockSize]byte
	t.k1.EncryptBlock(tmp1[:], plain)
	t.k2.DecryptBlock(tmp2[:], tmp1[:])
	t.k3.EncryptBlock(dst, tmp2[:])
}

func (t *TripleCipher) DecryptBlock(dst, cipher []byte) {
	var tmp1, tmp2 [BlockSize]byte
	t.k3.DecryptBlock(tmp1[:], cipher)
	t.k2.EncryptBlock(tmp2[:], tmp1[:])
	t.k1.DecryptBlock(dst, tmp2[:])
}
