// Package ecdsa implements the Elliptic Curve Digital Signature Algorithm
// over the generic curves in package elliptic.
package ecdsa

import (
	"io"
	"math/big"

	"github.com/coldforge/gocrypto"
	"github.com/coldforge/gocrypto/digest/sha2"
	"github.com/coldforge/gocrypto/elliptic"
)

// PublicKey is an ECDSA public key: the curve and the point Q = d*G.
type PublicKey struct {
	Curve *elliptic.CurveParams
	X, Y  *big.Int
}

// PrivateKey is an ECDSA private key: the public key and the scalar D.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// Signature is an ECDSA signature (r, s).
type Signature struct {
	R, S *big.Int
}

// GenerateKey draws a private scalar uniformly from [1, N) using random
// and returns the corresponding key pair.
func GenerateKey(curve *elliptic.CurveParams, random io.Reader) (*PrivateKey, error) {
	d, x, y, err := curve.GenerateKey(func(b []byte) error {
		return gocrypto.RandBytes(random, b)
	})
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PublicKey: PublicKey{Curve: curve, X: x, Y: y}, D: d}, nil
}

// fermatInverse computes k^-1 mod p for prime p via Fermat's little
// theorem (k^(p-2) ≡ k^-1 mod p), trading the branchless modular
// exponentiation already needed elsewhere for the branches of the
// extended Euclidean algorithm.
func fermatInverse(k, p *big.Int) *big.Int {
	pMinus2 := new(big.Int).Sub(p, big.NewInt(2))
	return new(big.Int).Exp(k, pMinus2, p)
}

// hashToInt truncates (and, for short curves, right-shifts) hash to the
// bit length of the curve order, per SEC1 4.1.3 step 5 / FIPS 186-4.
func hashToInt(hash []byte, c *elliptic.CurveParams) *big.Int {
	orderBits := c.N.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}

	ret := new(big.Int).SetBytes(hash)
	excess := len(hash)*8 - orderBits
	if excess > 0 {
		ret.Rsh(ret, uint(excess))
	}
	return ret
}

// nonceCSPRNG seeds a deterministic AES-128-CTR generator from the
// private key, an entropy draw from random, and the message hash, so a
// per-signature nonce can be derived reproducibly from that single
// stream instead of drawing k straight from random. A compromised
// system RNG then only degrades nonce unpredictability to whatever
// SHA-512 and the private scalar still provide, rather than exposing k
// directly.
func nonceCSPRNG(priv *PrivateKey, random io.Reader, hash []byte) (*csprng, error) {
	fieldBytes := (priv.Curve.BitSize + 7) / 8
	entropyLen := 32
	if half := (priv.Curve.BitSize + 7) / 16; half < entropyLen {
		entropyLen = half
	}

	entropy := make([]byte, entropyLen)
	if err := gocrypto.RandBytes(random, entropy); err != nil {
		return nil, err
	}

	dBytes := make([]byte, fieldBytes)
	priv.D.FillBytes(dBytes)

	h := sha2.New512()
	h.Write(dBytes)
	h.Write(entropy)
	h.Write(hash)
	seed := h.Checksum(nil)[:32]

	key := seed[:16]
	iv := []byte("IV for ECDSA CTR")
	return newCSPRNG(key, iv)
}

func randFieldElement(c *elliptic.CurveParams, rng *csprng) (*big.Int, error) {
	byteLen := (c.BitSize+7)/8 + 8
	buf := make([]byte, byteLen)
	if _, err := rng.Read(buf); err != nil {
		return nil, err
	}
	k := new(big.Int).SetBytes(buf)
	nMinus1 := new(big.Int).Sub(c.N, big.NewInt(1))
	k.Mod(k, nMinus1)
	k.Add(k, big.NewInt(1))
	return k, nil
}

// Sign produces an ECDSA signature over a pre-hashed message. random
// seeds both the nonce-derivation CSPRNG and the entropy input hashed
// into it; it need not itself be uniform, only unpredictable.
func Sign(random io.Reader, priv *PrivateKey, hash []byte) (*Signature, error) {
	c := priv.Curve
	e := hashToInt(hash, c)

	for attempts := 0; attempts < 10; attempts++ {
		rng, err := nonceCSPRNG(priv, random, hash)
		if err != nil {
			return nil, err
		}

		k, err := randFieldElement(c, rng)
		if err != nil {
			return nil, err
		}
		kInv := fermatInverse(k, c.N)

		r, _ := c.ScalarBaseMult(k.Bytes())
		r.Mod(r, c.N)
		if r.Sign() == 0 {
			continue
		}

		s := new(big.Int).Mul(priv.D, r)
		s.Add(s, e)
		s.Mul(s, kInv)
		s.Mod(s, c.N)
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}
	return nil, gocrypto.New(gocrypto.InvalidPrivateKey, "ecdsa: failed to produce a non-degenerate signature after 10 attempts")
}

// Verify checks sig against the given pre-hashed message under pub.
func Verify(pub *PublicKey, hash []byte, sig *Signature) error {
	c := pub.Curve
	if sig.R.Sign() <= 0 || sig.R.Cmp(c.N) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "ecdsa: r out of range")
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(c.N) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "ecdsa: s out of range")
	}

	e := hashToInt(hash, c)
	w := new(big.Int).ModInverse(sig.S, c.N)
	if w == nil {
		return gocrypto.New(gocrypto.VerificationFailed, "ecdsa: s has no inverse mod n")
	}

	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, c.N)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, c.N)

	x1, y1 := c.ScalarBaseMult(u1.Bytes())
	x2, y2 := c.Scalar(pub.X, pub.Y, u2.Bytes())
	x, y := c.Add(x1, y1, x2, y2)

	if x == nil || y == nil || (x.Sign() == 0 && y.Sign() == 0) {
		return gocrypto.New(gocrypto.VerificationFailed, "ecdsa: verification error")
	}

	x.Mod(x, c.N)
	if x.Cmp(sig.R) != 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "ecdsa: verification error")
	}
	return nil
}
