package rsa

import (
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/coldforge/gocrypto"
)

// OAEP is RSAES-OAEP (PKCS#1 v2.2 section 7.1): RSA encryption with
// Optimal Asymmetric Encryption Padding, built from a hash and its MGF1
// mask generation function.
type OAEP struct {
	Hash  func() gocrypto.Digest
	Label []byte
}

// NewOAEP builds an OAEP scheme from the given hash constructor with an
// empty label.
func NewOAEP(hash func() gocrypto.Digest) *OAEP {
	return &OAEP{Hash: hash}
}

// Encrypt pads msg per EME-OAEP and encrypts it under pub.
func (o *OAEP) Encrypt(random io.Reader, pub *PublicKey, msg []byte) ([]byte, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}

	hash := o.Hash()
	hLen := hash.Size() / 8
	k := pub.Size()
	if len(msg) > k-2*hLen-2 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: message too long for OAEP")
	}

	hash.Reset()
	hash.Write(o.Label)
	lHash := hash.Checksum(nil)

	em := make([]byte, k)
	seed := em[1 : 1+hLen]
	db := em[1+hLen:]

	copy(db[:hLen], lHash)
	db[len(db)-len(msg)-1] = 0x01
	copy(db[len(db)-len(msg):], msg)

	if err := gocrypto.RandBytes(random, seed); err != nil {
		return nil, err
	}

	mgf1XOR(db, hash, seed)
	mgf1XOR(seed, hash, db)

	m := new(big.Int).SetBytes(em)
	c := Encrypt(pub, m)

	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// Decrypt reverses Encrypt. On any padding failure it returns a single
// VerificationFailed error without revealing which check failed, following
// the Bleichenbacher-resistant discipline of PKCS#1 v2.2 section 7.1.2: an
// attacker who can distinguish failure reasons can use the oracle to
// recover plaintext one byte at a time.
func (o *OAEP) Decrypt(random io.Reader, priv *PrivateKey, ciphertext []byte) ([]byte, error) {
	if err := priv.PublicKey.Validate(); err != nil {
		return nil, err
	}

	hash := o.Hash()
	hLen := hash.Size() / 8
	k := priv.Size()
	if len(ciphertext) != k || k < 2*hLen+2 {
		return nil, gocrypto.New(gocrypto.VerificationFailed, "rsa: decryption error")
	}

	c := new(big.Int).SetBytes(ciphertext)
	m, err := Decrypt(random, priv, c)
	if err != nil {
		return nil, err
	}

	hash.Reset()
	hash.Write(o.Label)
	lHash := hash.Checksum(nil)

	em := make([]byte, k)
	m.FillBytes(em)

	firstByteIsZero := subtle.ConstantTimeByteEq(em[0], 0)

	seed := em[1 : 1+hLen]
	db := em[1+hLen:]

	mgf1XOR(seed, hash, db)
	mgf1XOR(db, hash, seed)

	lHash2 := db[:hLen]
	lHashGood := subtle.ConstantTimeCompare(lHash, lHash2)

	// Find the 0x01 marker in db[hLen:] without leaking its position via
	// branching: scan every byte, tracking whether we're still in the
	// all-zero run and whether we've already found the marker.
	rest := db[hLen:]
	var lookingForIndex, index, invalid int
	lookingForIndex = 1
	for i := 0; i < len(rest); i++ {
		equals0 := subtle.ConstantTimeByteEq(rest[i], 0)
		equals1 := subtle.ConstantTimeByteEq(rest[i], 1)
		index = subtle.ConstantTimeSelect(lookingForIndex&equals1, i, index)
		lookingForIndex = subtle.ConstantTimeSelect(equals1, 0, lookingForIndex)
		invalid = subtle.ConstantTimeSelect(lookingForIndex&^equals0, 1, invalid)
	}

	if firstByteIsZero&lHashGood&^invalid&^lookingForIndex != 1 {
		return nil, gocrypto.New(gocrypto.VerificationFailed, "rsa: decryption error")
	}

	return rest[index+1:], nil
}
