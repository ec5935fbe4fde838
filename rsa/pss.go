package rsa

import (
	"io"
	"math/big"

	"github.com/coldforge/gocrypto"
)

// PSS is RSASSA-PSS (PKCS#1 v2.2 section 8.1): probabilistic signing with
// EMSA-PSS encoding. SaltLength fixes the salt length used by both Sign
// and Verify; unlike the encrypt/decrypt schemes, a PSS verifier must know
// (or be told out of band) the salt length the signer used.
type PSS struct {
	Hash       func() gocrypto.Digest
	SaltLength int
}

// NewPSS builds a PSS scheme. A saltLen of 0 defaults to the hash's output
// length, the conventional choice; pub, if non-nil, is used to derive the
// maximum possible salt length instead (modulus size - 2 - hash length).
func NewPSS(hash func() gocrypto.Digest, saltLen int, pub *PublicKey) *PSS {
	p := &PSS{Hash: hash, SaltLength: saltLen}
	if saltLen == 0 {
		h := hash()
		hLen := h.Size() / 8
		if pub != nil {
			p.SaltLength = pub.Size() - 2 - hLen
		} else {
			p.SaltLength = hLen
		}
	}
	return p
}

func emsaPSSEncode(mHash []byte, emBits int, salt []byte, hash gocrypto.Digest) ([]byte, error) {
	hLen := hash.Size() / 8
	sLen := len(salt)
	emLen := (emBits + 7) / 8
	if len(mHash) != hLen {
		return nil, gocrypto.New(gocrypto.InnerErr, "rsa: input must be hashed with the given hash")
	}
	if emLen < hLen+sLen+2 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: key size too small for PSS signature")
	}

	em := make([]byte, emLen)
	psLen := emLen - sLen - hLen - 2
	db := em[:psLen+1+sLen]
	h := em[psLen+1+sLen : emLen-1]

	db[psLen] = 0x01
	copy(db[psLen+1:], salt)

	var prefix [8]byte
	hash.Reset()
	hash.Write(prefix[:])
	hash.Write(mHash)
	hash.Write(salt)
	hsum := hash.Checksum(nil)
	copy(h, hsum)

	mgf1XOR(db, hash, h)
	db[0] &= 0xff >> uint(8*emLen-emBits)

	em[emLen-1] = 0xbc
	return em, nil
}

func emsaPSSVerify(mHash, em []byte, emBits, sLen int, hash gocrypto.Digest) error {
	verr := gocrypto.New(gocrypto.VerificationFailed, "rsa: verification error")

	hLen := hash.Size() / 8
	if len(mHash) != hLen {
		return verr
	}
	emLen := (emBits + 7) / 8
	if emLen != len(em) || emLen < hLen+sLen+2 {
		return verr
	}
	if em[emLen-1] != 0xbc {
		return verr
	}

	db := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	bitMask := byte(0xff >> uint(8*emLen-emBits))
	if em[0]&^bitMask != 0 {
		return verr
	}

	mgf1XOR(db, hash, h)
	db[0] &= bitMask

	psLen := emLen - sLen - hLen - 2
	for _, e := range db[:psLen] {
		if e != 0 {
			return verr
		}
	}
	if db[psLen] != 0x01 {
		return verr
	}

	salt := db[psLen+1:]
	var prefix [8]byte
	hash.Reset()
	hash.Write(prefix[:])
	hash.Write(mHash)
	hash.Write(salt)
	h0 := hash.Checksum(nil)

	if len(h0) != len(h) {
		return verr
	}
	diff := byte(0)
	for i := range h0 {
		diff |= h0[i] ^ h[i]
	}
	if diff != 0 {
		return verr
	}
	return nil
}

// Sign produces a PSS signature over a hashed message, drawing a fresh
// salt of p.SaltLength bytes from random for each call. random is also
// used to blind the private exponentiation.
func (p *PSS) Sign(random io.Reader, priv *PrivateKey, hashed []byte) ([]byte, error) {
	salt := make([]byte, p.SaltLength)
	if err := gocrypto.RandBytes(random, salt); err != nil {
		return nil, err
	}

	hash := p.Hash()
	emBits := priv.N.BitLen() - 1
	em, err := emsaPSSEncode(hashed, emBits, salt, hash)
	if err != nil {
		return nil, err
	}

	m := new(big.Int).SetBytes(em)
	c, err := DecryptAndCheck(random, priv, m)
	if err != nil {
		return nil, err
	}

	k := priv.Size()
	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// Verify checks a PSS signature against a hashed message under pub.
func (p *PSS) Verify(pub *PublicKey, hashed, sig []byte) error {
	k := pub.Size()
	if len(sig) != k {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: signature length mismatch")
	}

	c := new(big.Int).SetBytes(sig)
	if c.Cmp(pub.N) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: verification error")
	}
	m := Encrypt(pub, c)

	emBits := pub.N.BitLen() - 1
	emLen := (emBits + 7) / 8
	em := make([]byte, emLen)
	emBytes := m.Bytes()
	if len(emBytes) > emLen {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: verification error")
	}
	copy(em[emLen-len(emBytes):], emBytes)

	hash := p.Hash()
	return emsaPSSVerify(hashed, em, emBits, p.SaltLength, hash)
}
