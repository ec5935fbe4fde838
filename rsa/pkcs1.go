package rsa

import (
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/coldforge/gocrypto"
)

// HashFunc identifies the digest algorithm used by a PKCS#1 v1.5
// signature, selecting the DigestInfo DER prefix and digest size to use.
// PSS (pss.go) takes a digest constructor instead and does not use it.
type HashFunc int

const (
	MD5 HashFunc = iota
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

// hashPrefixes are the ASN.1 DER encodings of the DigestInfo structure
// without the digest itself, as listed in PKCS#1 v2.2 section 9.2 note 1.
var hashPrefixes = map[HashFunc][]byte{
	MD5:    {0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10},
	SHA1:   {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14},
	SHA224: {0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c},
	SHA256: {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
	SHA384: {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30},
	SHA512: {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40},
}

var hashLengths = map[HashFunc]int{
	MD5:    16,
	SHA1:   20,
	SHA224: 28,
	SHA256: 32,
	SHA384: 48,
	SHA512: 64,
}

func pkcs1v15HashInfo(hash HashFunc, inLen int) (prefix []byte, hashLen int, err error) {
	hashLen, ok := hashLengths[hash]
	if !ok {
		return nil, 0, gocrypto.New(gocrypto.InvalidParameter, "rsa: unsupported hash function")
	}
	if inLen != hashLen {
		return nil, 0, gocrypto.New(gocrypto.InvalidParameter, "rsa: input must be hashed message")
	}
	prefix, ok = hashPrefixes[hash]
	if !ok {
		return nil, 0, gocrypto.New(gocrypto.InvalidParameter, "rsa: unsupported hash function")
	}
	return prefix, hashLen, nil
}

// EncryptPKCS1v15 encrypts msg per RSAES-PKCS1-v1_5 (PKCS#1 v2.2 section
// 7.2.1), padding it as 0x00 0x02 PS 0x00 msg with PS a run of non-zero
// random bytes.
func EncryptPKCS1v15(random io.Reader, pub *PublicKey, msg []byte) ([]byte, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	k := pub.Size()
	if len(msg) > k-11 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: message too long for PKCS#1 v1.5")
	}

	em := make([]byte, k)
	em[0] = 0
	em[1] = 2
	ps := em[2 : k-len(msg)-1]
	if err := nonZeroRandomBytes(ps, random); err != nil {
		return nil, err
	}
	em[k-len(msg)-1] = 0
	copy(em[k-len(msg):], msg)

	m := new(big.Int).SetBytes(em)
	c := Encrypt(pub, m)
	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// DecryptPKCS1v15 reverses EncryptPKCS1v15. It requires at least 8 bytes of
// padding (PKCS#1 v2.2 section 7.2.2 step 3) before accepting the message.
func DecryptPKCS1v15(random io.Reader, priv *PrivateKey, ciphertext []byte) ([]byte, error) {
	k := priv.Size()
	if len(ciphertext) != k || k < 11 {
		return nil, gocrypto.New(gocrypto.VerificationFailed, "rsa: decryption error")
	}
	if err := priv.PublicKey.Validate(); err != nil {
		return nil, err
	}

	c := new(big.Int).SetBytes(ciphertext)
	m, err := Decrypt(random, priv, c)
	if err != nil {
		return nil, err
	}

	em := make([]byte, k)
	m.FillBytes(em)

	if em[0] != 0 || em[1] != 2 {
		return nil, gocrypto.New(gocrypto.VerificationFailed, "rsa: decryption error")
	}

	idx := 2
	for idx < len(em) && em[idx] != 0 {
		idx++
	}
	if idx == len(em) || idx < 2+8 {
		return nil, gocrypto.New(gocrypto.VerificationFailed, "rsa: decryption error")
	}
	return em[idx+1:], nil
}

// nonZeroRandomBytes fills b with non-zero random bytes, resampling any
// zero byte drawn.
func nonZeroRandomBytes(b []byte, random io.Reader) error {
	if err := gocrypto.RandBytes(random, b); err != nil {
		return err
	}
	for i, v := range b {
		for v == 0 {
			if err := gocrypto.RandBytes(random, b[i:i+1]); err != nil {
				return err
			}
			v = b[i]
		}
	}
	return nil
}

// SignPKCS1v15 signs a hashed message per RSASSA-PKCS1-v1_5 (PKCS#1 v2.2
// section 8.2.1): the signature is the private-key operation over
// 0x00 0x01 0xFF...FF 0x00 DigestInfo(hash, hashed). random, when non-nil,
// blinds the private exponentiation.
func SignPKCS1v15(random io.Reader, priv *PrivateKey, hash HashFunc, hashed []byte) ([]byte, error) {
	prefix, hashLen, err := pkcs1v15HashInfo(hash, len(hashed))
	if err != nil {
		return nil, err
	}

	tLen := len(prefix) + hashLen
	k := priv.Size()
	if k < tLen+11 {
		return nil, gocrypto.New(gocrypto.InvalidPrivateKey, "rsa: private modulus too short")
	}

	em := make([]byte, k)
	em[0] = 0
	em[1] = 1
	for i := 2; i < k-tLen-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-tLen:k-hashLen], prefix)
	copy(em[k-hashLen:], hashed)

	m := new(big.Int).SetBytes(em)
	c, err := DecryptAndCheck(random, priv, m)
	if err != nil {
		return nil, err
	}

	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// VerifyPKCS1v15 checks sig against hashed under pub, comparing the full
// encoded message in constant time.
func VerifyPKCS1v15(pub *PublicKey, hash HashFunc, hashed, sig []byte) error {
	prefix, hashLen, err := pkcs1v15HashInfo(hash, len(hashed))
	if err != nil {
		return err
	}

	tLen := len(prefix) + hashLen
	k := pub.Size()
	if k < tLen+11 {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: public modulus too short")
	}
	if len(sig) != k {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: signature length mismatch")
	}

	c := new(big.Int).SetBytes(sig)
	if c.Cmp(pub.N) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: verification error")
	}
	m := Encrypt(pub, c)

	em := make([]byte, k)
	m.FillBytes(em)

	ok := subtle.ConstantTimeByteEq(em[0], 0)
	ok &= subtle.ConstantTimeByteEq(em[1], 1)
	for i := 2; i < k-tLen-1; i++ {
		ok &= subtle.ConstantTimeByteEq(em[i], 0xff)
	}
	ok &= subtle.ConstantTimeByteEq(em[k-tLen-1], 0)
	ok &= subtle.ConstantTimeCompare(em[k-tLen:k-hashLen], prefix)
	ok &= subtle.ConstantTimeCompare(em[k-hashLen:], hashed)

	if ok != 1 {
		return gocrypto.New(gocrypto.VerificationFailed, "rsa: verification error")
	}
	return nil
}
