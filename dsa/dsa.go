// Package dsa implements the Digital Signature Algorithm (FIPS 186-4).
//
// Domain parameter generation here follows the probable-prime
// construction: draw a prime q of bit length N, then search random
// L-bit candidates p ≡ 1 (mod 2q) until one is prime, rather than the
// seeded, publicly-verifiable counter construction of FIPS 186-4 Appendix
// A.1.1.2. Both produce mathematically valid (p, q, g) triples; the
// seeded construction exists so a third party can audit that p wasn't
// chosen adversarially, which this library has no mechanism to surface
// to a caller anyway.
package dsa

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/coldforge/gocrypto"
)

// ParameterSizes names the four (L, N) pairs FIPS 186-4 Table 1 permits.
type ParameterSizes int

const (
	L1024N160 ParameterSizes = iota
	L2048N224
	L2048N256
	L3072N256
)

func (ps ParameterSizes) bits() (l, n int, err error) {
	switch ps {
	case L1024N160:
		return 1024, 160, nil
	case L2048N224:
		return 2048, 224, nil
	case L2048N256:
		return 2048, 256, nil
	case L3072N256:
		return 3072, 256, nil
	default:
		return 0, 0, gocrypto.New(gocrypto.InvalidParameter, "dsa: unsupported parameter size")
	}
}

// primeTestRounds is FIPS 186-4 Table C.1's recommended Miller-Rabin
// round count for the largest supported L.
const primeTestRounds = 64

// DomainParameters is the (p, q, g) triple shared by every key pair
// generated under it.
type DomainParameters struct {
	P, Q, G *big.Int
}

// PublicKey is a DSA public key: the domain parameters and Y = g^x mod p.
type PublicKey struct {
	DomainParameters
	Y *big.Int
}

// PrivateKey is a DSA private key: the public key and the secret scalar X.
type PrivateKey struct {
	PublicKey
	X *big.Int
}

// Signature is a DSA signature (r, s).
type Signature struct {
	R, S *big.Int
}

var bigOne = big.NewInt(1)
var bigTwo = big.NewInt(2)

// GenerateParameters generates domain parameters for one of the four
// supported (L, N) pairs.
func GenerateParameters(random io.Reader, sizes ParameterSizes) (*DomainParameters, error) {
	l, n, err := sizes.bits()
	if err != nil {
		return nil, err
	}

	q, err := rand.Prime(random, n)
	if err != nil {
		return nil, gocrypto.Wrap(gocrypto.RandError, err, "dsa: generating q")
	}

	twoQ := new(big.Int).Mul(q, bigTwo)
	byteLen := (l + 7) / 8
	topMask := byte(1) << uint((l-1)%8)

	var p *big.Int
	for {
		buf := make([]byte, byteLen)
		if err := gocrypto.RandBytes(random, buf); err != nil {
			return nil, err
		}
		buf[0] |= topMask
		x := new(big.Int).SetBytes(buf)

		// Round x down so p ≡ 1 (mod 2q), which guarantees q | (p-1).
		c := new(big.Int).Mod(x, twoQ)
		candidate := new(big.Int).Sub(x, c)
		candidate.Add(candidate, bigOne)
		if candidate.BitLen() != l {
			continue
		}
		if !candidate.ProbablyPrime(primeTestRounds) {
			continue
		}
		p = candidate
		break
	}

	e := new(big.Int).Sub(p, bigOne)
	e.Div(e, q)

	var g *big.Int
	for h := big.NewInt(2); ; h.Add(h, bigOne) {
		g = new(big.Int).Exp(h, e, p)
		if g.Cmp(bigOne) != 0 {
			break
		}
	}

	return &DomainParameters{P: p, Q: q, G: g}, nil
}

// GenerateKey draws a uniform private scalar X in [1, q-1] and computes
// the matching public Y = g^X mod p.
func GenerateKey(random io.Reader, params *DomainParameters) (*PrivateKey, error) {
	qMinus1 := new(big.Int).Sub(params.Q, bigOne)

	var x *big.Int
	for {
		k, err := rand.Int(random, qMinus1)
		if err != nil {
			return nil, gocrypto.Wrap(gocrypto.RandError, err, "dsa: drawing private key")
		}
		x = k.Add(k, bigOne)
		if x.Sign() != 0 {
			break
		}
	}

	y := new(big.Int).Exp(params.G, x, params.P)
	return &PrivateKey{
		PublicKey: PublicKey{DomainParameters: *params, Y: y},
		X:         x,
	}, nil
}

// fermatInverse computes k^-1 mod q for prime q via Fermat's little
// theorem, matching the exponentiation-based inverse this package's
// sibling ecdsa package uses for the same purpose.
func fermatInverse(k, q *big.Int) *big.Int {
	qMinus2 := new(big.Int).Sub(q, bigTwo)
	return new(big.Int).Exp(k, qMinus2, q)
}

// truncateHash reduces a hash to an integer z of at most q's bit length,
// per FIPS 186-4 section 4.2: take the leftmost min(outlen, N) bits.
func truncateHash(hash []byte, q *big.Int) *big.Int {
	qBytes := (q.BitLen() + 7) / 8
	if len(hash) > qBytes {
		hash = hash[:qBytes]
	}
	z := new(big.Int).SetBytes(hash)
	excess := len(hash)*8 - q.BitLen()
	if excess > 0 {
		z.Rsh(z, uint(excess))
	}
	return z
}

// Sign produces a DSA signature over a pre-hashed message.
func Sign(random io.Reader, priv *PrivateKey, hash []byte) (*Signature, error) {
	q := priv.Q
	z := truncateHash(hash, q)
	qMinus1 := new(big.Int).Sub(q, bigOne)

	for attempts := 0; attempts < 10; attempts++ {
		kk, err := rand.Int(random, qMinus1)
		if err != nil {
			return nil, gocrypto.Wrap(gocrypto.RandError, err, "dsa: drawing nonce")
		}
		k := new(big.Int).Add(kk, bigOne)

		r := new(big.Int).Exp(priv.G, k, priv.P)
		r.Mod(r, q)
		if r.Sign() == 0 {
			continue
		}

		kInv := fermatInverse(k, q)

		s := new(big.Int).Mul(priv.X, r)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, q)
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}
	return nil, gocrypto.New(gocrypto.InvalidPrivateKey, "dsa: degenerate signature after 10 attempts")
}

// Verify checks sig against a pre-hashed message under pub.
func Verify(pub *PublicKey, hash []byte, sig *Signature) error {
	q := pub.Q
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "dsa: r out of range")
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "dsa: s out of range")
	}

	w := new(big.Int).ModInverse(sig.S, q)
	if w == nil {
		return gocrypto.New(gocrypto.VerificationFailed, "dsa: s has no inverse mod q")
	}

	z := truncateHash(hash, q)

	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	v1 := new(big.Int).Exp(pub.G, u1, pub.P)
	v2 := new(big.Int).Exp(pub.Y, u2, pub.P)
	v := v1.Mul(v1, v2)
	v.Mod(v, pub.P)
	v.Mod(v, q)

	if v.Cmp(sig.R) != 0 {
		return gocrypto.New(gocrypto.VerificationFailed, "dsa: verification error")
	}
	return nil
}
