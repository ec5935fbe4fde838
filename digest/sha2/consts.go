package sha2

import (
	"math"
	"math/big"
)

// The SHA-2 family's constants are the fractional bits of square and cube
// roots of small primes (FIPS 180-4 §4.2.2/§4.2.3). Rather than
// transcribing the 64- and 80-entry hex tables by hand, they are derived
// here to arbitrary precision with math/big, the same "derive, don't
// transcribe" approach block/aes uses for its S-box.

func smallPrimes(n int) []int64 {
	primes := make([]int64, 0, n)
	candidate := int64(2)
	for len(primes) < n {
		isPrime := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
		candidate++
	}
	return primes
}

// fracTopBits returns the top nbits of the fractional part of r.
func fracTopBits(r *big.Float, nbits uint, prec uint) uint64 {
	ip, _ := r.Int(nil)
	ipf := new(big.Float).SetPrec(prec).SetInt(ip)
	frac := new(big.Float).SetPrec(prec).Sub(r, ipf)
	scale := new(big.Float).SetPrec(prec).SetMantExp(big.NewFloat(1), int(nbits))
	scaled := new(big.Float).SetPrec(prec).Mul(frac, scale)
	bi, _ := scaled.Int(nil)
	return bi.Uint64()
}

func sqrtFracBits(p int64, nbits uint) uint64 {
	prec := nbits + 64
	x := new(big.Float).SetPrec(prec).SetInt64(p)
	r := new(big.Float).SetPrec(prec).Sqrt(x)
	return fracTopBits(r, nbits, prec)
}

// cbrtFracBits computes the fractional bits of the cube root of p via
// Newton's method on big.Float, seeded from math.Cbrt.
func cbrtFracBits(p int64, nbits uint) uint64 {
	prec := nbits + 64
	a := new(big.Float).SetPrec(prec).SetInt64(p)
	x := new(big.Float).SetPrec(prec).SetFloat64(math.Cbrt(float64(p)))
	three := new(big.Float).SetPrec(prec).SetInt64(3)
	for i := 0; i < 80; i++ {
		x2 := new(big.Float).SetPrec(prec).Mul(x, x)
		x3 := new(big.Float).SetPrec(prec).Mul(x2, x)
		num := new(big.Float).SetPrec(prec).Sub(x3, a)
		den := new(big.Float).SetPrec(prec).Mul(three, x2)
		delta := new(big.Float).SetPrec(prec).Quo(num, den)
		x.Sub(x, delta)
	}
	return fracTopBits(x, nbits, prec)
}

var primes80 = smallPrimes(80)

var k256 [64]uint32
var k512 [80]uint64
var h256Init [8]uint32
var h384Init [8]uint64
var h512Init [8]uint64

// h224Init is kept as a literal rather than derived here. Its words are
// the low 32 bits of the corresponding h384Init words (square roots of
// the 9th through 16th primes), not a transformation of the SHA-256 IV.
var h224Init = [8]uint32{
	0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
	0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
}

func init() {
	for i := 0; i < 64; i++ {
		k256[i] = uint32(cbrtFracBits(primes80[i], 32))
	}
	for i := 0; i < 80; i++ {
		k512[i] = cbrtFracBits(primes80[i], 64)
	}
	for i := 0; i < 8; i++ {
		h256Init[i] = uint32(sqrtFracBits(primes80[i], 32))
	}
	for i := 0; i < 8; i++ {
		h512Init[i] = sqrtFracBits(primes80[i], 64)
	}
	for i := 0; i < 8; i++ {
		h384Init[i] = sqrtFracBits(primes80[8+i], 64)
	}
}
