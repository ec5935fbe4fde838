package ecdsa

import (
	"github.com/coldforge/gocrypto/block/aes"
	"github.com/coldforge/gocrypto/mode"
)

// csprng is a deterministic pseudorandom byte source built from AES-128 in
// CTR mode, seeded once from a 16-byte key and IV. Sign uses it to draw
// the per-signature nonce from hash-derived seed material rather than
// straight from the system RNG, so a weak system RNG degrades to "as
// strong as SHA-512 and the private key" instead of leaking the nonce
// directly.
type csprng struct {
	ctr *mode.CTR
	buf []byte
}

func newCSPRNG(key, iv []byte) (*csprng, error) {
	cipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	ctr, err := mode.NewCTR(cipher, nil, mode.NewStdCounter(cipher.BlockSize()))
	if err != nil {
		return nil, err
	}
	ctr.SetSeed(iv, cipher.BlockSize()*8)
	return &csprng{ctr: ctr}, nil
}

// Read fills dst by encrypting an all-zero buffer under the running CTR
// keystream, i.e. the keystream bytes themselves.
func (c *csprng) Read(dst []byte) (int, error) {
	if len(c.buf) < len(dst) {
		c.buf = make([]byte, len(dst))
	}
	for i := range dst[:len(dst)] {
		c.buf[i] = 0
	}
	out, err := c.ctr.Encrypt(nil, c.buf[:len(dst)])
	if err != nil {
		return 0, err
	}
	copy(dst, out)
	return len(dst), nil
}
