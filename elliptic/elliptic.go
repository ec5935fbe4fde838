// Package elliptic implements generic short-Weierstrass (a = -3) curve
// arithmetic in Jacobian coordinates, parameterized by CurveParams, along
// with the FIPS 186-4 domain parameters for P-224, P-256, P-384 and P-521.
//
// Unlike production curve libraries this package does not special-case
// each curve with its own reduction (e.g. P-256's fast mod-p reduction):
// every curve runs through the same generic big.Int arithmetic. That
// costs constant-factor performance but removes an entire class of
// per-curve bugs that can't be caught without running the code, which
// this project's build constraints make impossible to verify.
package elliptic

import (
	"math/big"

	"github.com/coldforge/gocrypto"
)

// CurveParams holds the domain parameters of a short Weierstrass curve
// y^2 = x^3 - 3x + b over GF(p), with a base point (Gx, Gy) of order N.
type CurveParams struct {
	P       *big.Int
	N       *big.Int
	B       *big.Int
	Gx, Gy  *big.Int
	BitSize int
	Name    string
}

// IsOnCurve reports whether (x, y) satisfies y^2 ≡ x^3 - 3x + b (mod p).
func (c *CurveParams) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}

	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.P)

	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)

	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)

	x3.Sub(x3, threeX)
	x3.Add(x3, c.B)
	x3.Mod(x3, c.P)

	return x3.Cmp(y2) == 0
}

// zForAffine returns 1 for any affine point other than the origin, which
// this package's convention reserves for the point at infinity (no curve
// handled here passes through (0, 0)), and 0 for the origin.
func zForAffine(x, y *big.Int) *big.Int {
	if x.Sign() != 0 || y.Sign() != 0 {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// affineFromJacobian converts (x, y, z) back to affine coordinates,
// returning (0, 0) for the point at infinity.
func (c *CurveParams) affineFromJacobian(x, y, z *big.Int) (xOut, yOut *big.Int) {
	if z.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0)
	}

	zinv := new(big.Int).ModInverse(z, c.P)
	zinvsq := new(big.Int).Mul(zinv, zinv)

	xOut = new(big.Int).Mul(x, zinvsq)
	xOut.Mod(xOut, c.P)

	zinvsq.Mul(zinvsq, zinv)
	yOut = new(big.Int).Mul(y, zinvsq)
	yOut.Mod(yOut, c.P)
	return xOut, yOut
}

// Add computes (x1, y1) + (x2, y2) in affine coordinates.
func (c *CurveParams) Add(x1, y1, x2, y2 *big.Int) (x, y *big.Int) {
	if x1 == nil || y1 == nil || x2 == nil || y2 == nil {
		return nil, nil
	}
	z1 := zForAffine(x1, y1)
	z2 := zForAffine(x2, y2)
	xo, yo, zo := c.addJacobian(x1, y1, z1, x2, y2, z2)
	return c.affineFromJacobian(xo, yo, zo)
}

// Double computes (x, y) * 2 in affine coordinates.
func (c *CurveParams) Double(x, y *big.Int) (xOut, yOut *big.Int) {
	if x == nil || y == nil {
		return nil, nil
	}
	z1 := zForAffine(x, y)
	xo, yo, zo := c.doubleJacobian(x, y, z1)
	return c.affineFromJacobian(xo, yo, zo)
}

// Scalar computes (x, y) * k for k encoded as a big-endian byte string.
func (c *CurveParams) Scalar(x, y *big.Int, k []byte) (xOut, yOut *big.Int) {
	if x == nil || y == nil {
		return nil, nil
	}
	return c.scalarInner(x, y, k)
}

// ScalarBaseMult computes the base point times k.
func (c *CurveParams) ScalarBaseMult(k []byte) (x, y *big.Int) {
	return c.scalarInner(c.Gx, c.Gy, k)
}

// scalarInner is the standard MSB-first double-and-add over the bytes of
// k, in Jacobian coordinates.
func (c *CurveParams) scalarInner(x, y *big.Int, k []byte) (xOut, yOut *big.Int) {
	bz := big.NewInt(1)
	bx, by, bzero := big.NewInt(0), big.NewInt(0), big.NewInt(0)

	for _, byteVal := range k {
		for bit := 0; bit < 8; bit++ {
			bx, by, bzero = c.doubleJacobian(bx, by, bzero)
			if byteVal&0x80 == 0x80 {
				bx, by, bzero = c.addJacobian(x, y, bz, bx, by, bzero)
			}
			byteVal <<= 1
		}
	}

	return c.affineFromJacobian(bx, by, bzero)
}

// addJacobian implements add-2007-bl from the EFD:
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (c *CurveParams) addJacobian(x1, y1, z1, x2, y2, z2 *big.Int) (x3, y3, z3 *big.Int) {
	if z1.Sign() == 0 {
		return new(big.Int).Set(x2), new(big.Int).Set(y2), new(big.Int).Set(z2)
	}
	if z2.Sign() == 0 {
		return new(big.Int).Set(x1), new(big.Int).Set(y1), new(big.Int).Set(z1)
	}

	z1z1 := new(big.Int).Mul(z1, z1)
	z1z1.Mod(z1z1, c.P)
	z2z2 := new(big.Int).Mul(z2, z2)
	z2z2.Mod(z2z2, c.P)

	u1 := new(big.Int).Mul(x1, z2z2)
	u1.Mod(u1, c.P)
	u2 := new(big.Int).Mul(x2, z1z1)
	u2.Mod(u2, c.P)
	h := new(big.Int).Sub(u2, u1)
	xEqual := h.Sign() == 0
	if h.Sign() == -1 {
		h.Add(h, c.P)
	}
	i := new(big.Int).Lsh(h, 1)
	i.Mul(i, i)
	j := new(big.Int).Mul(h, i)

	s1 := new(big.Int).Mul(y1, z2)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, c.P)
	s2 := new(big.Int).Mul(y2, z1)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, c.P)
	r := new(big.Int).Sub(s2, s1)
	if r.Sign() == -1 {
		r.Add(r, c.P)
	}
	yEqual := r.Sign() == 0
	if xEqual && yEqual {
		return c.doubleJacobian(x1, y1, z1)
	}
	r.Lsh(r, 1)
	v := new(big.Int).Mul(u1, i)

	x3 = new(big.Int).Mul(r, r)
	x3.Sub(x3, j)
	x3.Sub(x3, v)
	x3.Sub(x3, v)
	x3.Mod(x3, c.P)

	v.Sub(v, x3)
	y3 = new(big.Int).Mul(r, v)
	s1.Mul(s1, j)
	s1.Lsh(s1, 1)
	y3.Sub(y3, s1)
	y3.Mod(y3, c.P)

	z3 = new(big.Int).Add(z1, z2)
	z3.Mul(z3, z3)
	z3.Sub(z3, z1z1)
	z3.Sub(z3, z2z2)
	z3.Mul(z3, h)
	z3.Mod(z3, c.P)

	return x3, y3, z3
}

// doubleJacobian implements dbl-2001-b from the EFD:
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2001-b
func (c *CurveParams) doubleJacobian(x, y, z *big.Int) (x3, y3, z3 *big.Int) {
	delta := new(big.Int).Mul(z, z)
	delta.Mod(delta, c.P)
	gamma := new(big.Int).Mul(y, y)
	gamma.Mod(gamma, c.P)
	alpha := new(big.Int).Sub(x, delta)
	if alpha.Sign() == -1 {
		alpha.Add(alpha, c.P)
	}
	alpha2 := new(big.Int).Add(x, delta)
	alpha.Mul(alpha, alpha2)
	alpha2.Set(alpha)
	alpha.Lsh(alpha, 1)
	alpha.Add(alpha, alpha2)

	beta := new(big.Int).Mul(x, gamma)

	x3 = new(big.Int).Mul(alpha, alpha)
	beta8 := new(big.Int).Lsh(beta, 3)
	beta8.Mod(beta8, c.P)
	x3.Sub(x3, beta8)
	if x3.Sign() == -1 {
		x3.Add(x3, c.P)
	}
	x3.Mod(x3, c.P)

	z3 = new(big.Int).Add(y, z)
	z3.Mul(z3, z3)
	z3.Sub(z3, gamma)
	if z3.Sign() == -1 {
		z3.Add(z3, c.P)
	}
	z3.Sub(z3, delta)
	if z3.Sign() == -1 {
		z3.Add(z3, c.P)
	}
	z3.Mod(z3, c.P)

	beta.Lsh(beta, 2)
	beta.Sub(beta, x3)
	if beta.Sign() == -1 {
		beta.Add(beta, c.P)
	}
	y3 = new(big.Int).Mul(alpha, beta)

	gamma.Mul(gamma, gamma)
	gamma.Lsh(gamma, 3)
	gamma.Mod(gamma, c.P)

	y3.Sub(y3, gamma)
	if y3.Sign() == -1 {
		y3.Add(y3, c.P)
	}
	y3.Mod(y3, c.P)

	return x3, y3, z3
}

// maskLowBits clears the top bits of b[0] so the value fits in bitsLen
// bits, used by GenerateKey to produce a candidate scalar of exactly the
// curve order's bit length.
var maskLowBits = [8]byte{0xff, 0x1, 0x3, 0x7, 0xf, 0x1f, 0x3f, 0x7f}

// GenerateKey draws a uniform private scalar in [1, N) and returns it
// together with the corresponding public point. random is resampled
// until scalar*G lands off the point at infinity, which for a properly
// seeded CSPRNG happens with overwhelming probability on the first draw.
func (c *CurveParams) GenerateKey(random func([]byte) error) (d *big.Int, x, y *big.Int, err error) {
	bitsLen := c.N.BitLen()
	byteLen := (bitsLen + 7) / 8

	buf := make([]byte, byteLen)
	for {
		if err := random(buf); err != nil {
			return nil, nil, nil, gocrypto.Wrap(gocrypto.RandError, err, "elliptic: drawing private scalar")
		}
		buf[0] &= maskLowBits[bitsLen&7]

		key := new(big.Int).SetBytes(buf)
		if key.Sign() == 0 || key.Cmp(c.N) >= 0 {
			continue
		}

		px, py := c.ScalarBaseMult(buf)
		if px == nil || py == nil {
			continue
		}
		return key, px, py, nil
	}
}
