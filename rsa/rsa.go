// Package rsa implements the RSA primitives from PKCS#1 v2.2: the RSAEP/
// RSADP exponentiation primitives with CRT and blinding, multi-prime key
// generation, and the OAEP/PKCS#1-v1.5/PSS encoding schemes built on top of
// them (see oaep.go, pkcs1.go, pss.go).
//
// The big-integer arithmetic and Miller-Rabin prime generation named as an
// external collaborator in this module's design are satisfied by math/big
// and crypto/rand directly: both are named as consumed capabilities rather
// than primitives this package owns, and math/big is the one "big integer
// library" the wider Go ecosystem and ecosystem examples agree on.
package rsa

import (
	"crypto/rand"
	"io"
	"math"
	"math/big"

	"github.com/coldforge/gocrypto"
)

var bigOne = big.NewInt(1)

// PublicKey is an RSA public key: modulus N and public exponent E.
type PublicKey struct {
	N *big.Int
	E int
}

// Size returns the modulus size in bytes.
func (pub *PublicKey) Size() int {
	return (pub.N.BitLen() + 7) / 8
}

// Validate checks the public key's domain constraints (1 < e < n, e >= 3).
func (pub *PublicKey) Validate() error {
	if pub.N == nil || pub.N.Sign() <= 0 {
		return gocrypto.New(gocrypto.InvalidPublicKey, "rsa: modulus is missing or non-positive")
	}
	if pub.E < 3 {
		return gocrypto.New(gocrypto.InvalidPublicKey, "rsa: public exponent too small")
	}
	if pub.E > 1<<31-1 || big.NewInt(int64(pub.E)).Cmp(pub.N) >= 0 {
		return gocrypto.New(gocrypto.InvalidPublicKey, "rsa: public exponent too large")
	}
	return nil
}

// Encrypt is RSAEP: c = m^e mod n.
func Encrypt(pub *PublicKey, m *big.Int) *big.Int {
	e := big.NewInt(int64(pub.E))
	return new(big.Int).Exp(m, e, pub.N)
}

// CRTValue is the precomputed triple (exp, coeff, r) used for the third and
// later primes of a multi-prime key; see PrecomputedValues.
type CRTValue struct {
	Exp   *big.Int // d mod (prime-1)
	Coeff *big.Int // R*Coeff ≡ 1 mod prime
	R     *big.Int // product of primes before this one
}

// PrecomputedValues speeds up PrivateKey.Decrypt via the Chinese Remainder
// Theorem. Dp/Dq/Qinv handle the first two primes directly, for historical
// compatibility with two-prime RSA; CRTValues handles the third prime and
// beyond.
type PrecomputedValues struct {
	Dp, Dq, Qinv *big.Int
	CRTValues    []CRTValue
}

// PrivateKey is an RSA private key: the public key, the private exponent,
// the (>=2) prime factors of N, and precomputed CRT values.
type PrivateKey struct {
	PublicKey
	D           *big.Int
	Primes      []*big.Int
	Precomputed PrecomputedValues
}

// Precompute fills in PrivateKey.Precomputed from D and Primes. It is
// called automatically by the key-generation functions; callers that build
// a PrivateKey from raw components must call it themselves before using
// the CRT decryption path.
func (priv *PrivateKey) Precompute() {
	if priv.Precomputed.Dp != nil {
		return
	}

	priv.Precomputed.Dp = new(big.Int).Sub(priv.Primes[0], bigOne)
	priv.Precomputed.Dp.Mod(priv.D, priv.Precomputed.Dp)

	priv.Precomputed.Dq = new(big.Int).Sub(priv.Primes[1], bigOne)
	priv.Precomputed.Dq.Mod(priv.D, priv.Precomputed.Dq)

	priv.Precomputed.Qinv = new(big.Int).ModInverse(priv.Primes[1], priv.Primes[0])

	r := new(big.Int).Mul(priv.Primes[0], priv.Primes[1])
	priv.Precomputed.CRTValues = make([]CRTValue, len(priv.Primes)-2)
	for i := 2; i < len(priv.Primes); i++ {
		prime := priv.Primes[i]
		values := &priv.Precomputed.CRTValues[i-2]

		values.Exp = new(big.Int).Sub(prime, bigOne)
		values.Exp.Mod(priv.D, values.Exp)

		values.R = new(big.Int).Set(r)
		values.Coeff = new(big.Int).ModInverse(r, prime)

		r.Mul(r, prime)
	}
}

// Validate checks that d*e ≡ 1 mod (p_i - 1) for every prime, which implies
// e is coprime to lcm(p_i - 1) and that the key's primes multiply back to N.
func (priv *PrivateKey) Validate() error {
	if err := priv.PublicKey.Validate(); err != nil {
		return err
	}

	modulus := new(big.Int).Set(bigOne)
	for _, prime := range priv.Primes {
		if prime.Cmp(bigOne) <= 0 {
			return gocrypto.New(gocrypto.InvalidPrivateKey, "rsa: invalid prime value")
		}
		modulus.Mul(modulus, prime)
	}
	if modulus.Cmp(priv.N) != 0 {
		return gocrypto.New(gocrypto.InvalidPrivateKey, "rsa: invalid modulus")
	}

	congruence := new(big.Int)
	de := new(big.Int).Mul(priv.D, big.NewInt(int64(priv.E)))
	for _, prime := range priv.Primes {
		pminus1 := new(big.Int).Sub(prime, bigOne)
		congruence.Mod(de, pminus1)
		if congruence.Cmp(bigOne) != 0 {
			return gocrypto.New(gocrypto.InvalidPrivateKey, "rsa: invalid exponent")
		}
	}
	return nil
}

// Decrypt is RSADP: m = c^d mod n, using the CRT representation when
// precomputed values are available. If random is non-nil, the private
// operation is blinded: c is multiplied by a random r^e before the
// exponentiation and the result is divided back out, randomising the
// timing of the exponentiation. Use blinding for signing and private
// decryption, never for operations whose timing is already public.
func Decrypt(random io.Reader, priv *PrivateKey, c *big.Int) (*big.Int, error) {
	if c.Cmp(priv.N) > 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: ciphertext integer is too large")
	}
	if priv.N.Sign() == 0 {
		return nil, gocrypto.New(gocrypto.InvalidPrivateKey, "rsa: invalid modulus")
	}

	var ir *big.Int
	cc := c
	if random != nil {
		var r *big.Int
		for {
			var err error
			r, err = rand.Int(random, priv.N)
			if err != nil {
				return nil, gocrypto.Wrap(gocrypto.RandError, err, "rsa: drawing blinding factor")
			}
			if r.Sign() == 0 {
				r = big.NewInt(1)
			}
			ir = new(big.Int).ModInverse(r, priv.N)
			if ir != nil {
				break
			}
		}
		rpowe := new(big.Int).Exp(r, big.NewInt(int64(priv.E)), priv.N)
		cc = new(big.Int).Mul(c, rpowe)
		cc.Mod(cc, priv.N)
	}

	var m *big.Int
	if priv.Precomputed.Dp == nil {
		m = new(big.Int).Exp(cc, priv.D, priv.N)
	} else {
		p, q := priv.Primes[0], priv.Primes[1]

		m1 := new(big.Int).Exp(cc, priv.Precomputed.Dp, p)
		m2 := new(big.Int).Exp(cc, priv.Precomputed.Dq, q)
		m1.Sub(m1, m2)
		if m1.Sign() < 0 {
			m1.Add(m1, p)
		}
		m1.Mul(m1, priv.Precomputed.Qinv)
		m1.Mod(m1, p)
		m1.Mul(m1, q)
		m1.Add(m1, m2)

		for i, values := range priv.Precomputed.CRTValues {
			prime := priv.Primes[i+2]
			mi := new(big.Int).Exp(cc, values.Exp, prime)
			mi.Sub(mi, m1)
			mi.Mul(mi, values.Coeff)
			mi.Mod(mi, prime)
			if mi.Sign() < 0 {
				mi.Add(mi, prime)
			}
			mi.Mul(mi, values.R)
			m1.Add(m1, mi)
		}
		m = m1
	}

	if ir != nil {
		m.Mul(m, ir)
		m.Mod(m, priv.N)
	}
	return m, nil
}

// DecryptAndCheck decrypts c and re-encrypts the result, failing with
// InnerErr if the round trip doesn't reproduce c. Signing callers use this
// to detect CRT computation faults before releasing a signature.
func DecryptAndCheck(random io.Reader, priv *PrivateKey, c *big.Int) (*big.Int, error) {
	m, err := Decrypt(random, priv, c)
	if err != nil {
		return nil, err
	}
	check := Encrypt(&priv.PublicKey, m)
	if check.Cmp(c) != 0 {
		return nil, gocrypto.New(gocrypto.InnerErr, "rsa: internal error")
	}
	return m, nil
}

// GenerateKey generates a 2-prime RSA key pair of the given bit size.
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	return GenerateMultiPrimeKey(random, 2, bits)
}

// GenerateMultiPrimeKey generates a multi-prime RSA key pair, fixing the
// public exponent to 65537. Table 1 of the CACR multi-prime RSA technical
// report bounds practical nprimes for a given bit size; this function
// trusts the caller to have made a sane choice.
func GenerateMultiPrimeKey(random io.Reader, nprimes, bits int) (*PrivateKey, error) {
	if nprimes < 2 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: nprimes must be >= 2")
	}

	if bits < 64 {
		primeLimit := float64(uint64(1) << uint(bits/nprimes))
		// pi approximates the number of primes less than primeLimit.
		pi := primeLimit / (math.Log(primeLimit) - 1)
		// Generated primes start with 11 (in binary) so only a quarter of
		// them are useable; halve again so key generation terminates in a
		// reasonable time.
		pi /= 4
		pi /= 2
		if pi <= float64(nprimes) {
			return nil, gocrypto.New(gocrypto.InvalidParameter, "rsa: too few primes of given length to generate an RSA key")
		}
	}

	priv := new(PrivateKey)
	priv.E = 65537
	primes := make([]*big.Int, nprimes)

NextSetOfPrimes:
	for {
		todo := bits
		// Each prime has the form p_i = 2^bitlen(p_i) × 0.11...; if
		// nprimes >= 7 the accumulated loss needs a compensating shift.
		if nprimes >= 7 {
			todo += (nprimes - 2) / 5
		}

		for i := 0; i < nprimes; i++ {
			var err error
			primes[i], err = rand.Prime(random, todo/(nprimes-i))
			if err != nil {
				return nil, gocrypto.Wrap(gocrypto.RandError, err, "rsa: generating prime")
			}
			todo -= primes[i].BitLen()
		}

		// Primes must be pairwise distinct.
		for i, prime := range primes {
			for j := 0; j < i; j++ {
				if primes[j].Cmp(prime) == 0 {
					continue NextSetOfPrimes
				}
			}
		}

		n := new(big.Int).Set(bigOne)
		totient := new(big.Int).Set(bigOne)
		pminus1 := new(big.Int)
		for _, prime := range primes {
			n.Mul(n, prime)
			pminus1.Sub(prime, bigOne)
			totient.Mul(totient, pminus1)
		}
		if n.BitLen() != bits {
			// Should not happen for nprimes == 2; possible for more.
			continue NextSetOfPrimes
		}

		d := new(big.Int).ModInverse(big.NewInt(int64(priv.E)), totient)
		if d == nil {
			continue NextSetOfPrimes
		}

		priv.D = d
		priv.Primes = primes
		priv.N = n
		break
	}

	priv.Precompute()
	return priv, nil
}
