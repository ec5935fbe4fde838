package elliptic

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestBasePointsOnCurve(t *testing.T) {
	for _, c := range []*CurveParams{P224(), P256(), P384(), P521()} {
		t.Run(c.Name, func(t *testing.T) {
			if !c.IsOnCurve(c.Gx, c.Gy) {
				t.Fatalf("%s: base point does not satisfy the curve equation", c.Name)
			}
			if c.BitSize != c.N.BitLen() && c.BitSize != c.P.BitLen() {
				t.Fatalf("%s: BitSize %d matches neither N nor P bit length", c.Name, c.BitSize)
			}
		})
	}
}

func TestDoubleMatchesAdd(t *testing.T) {
	c := P256()
	x1, y1 := c.Double(c.Gx, c.Gy)
	x2, y2 := c.Add(c.Gx, c.Gy, c.Gx, c.Gy)
	if x1.Cmp(x2) != 0 || y1.Cmp(y2) != 0 {
		t.Fatal("Double(G) != Add(G, G)")
	}
	if !c.IsOnCurve(x1, y1) {
		t.Fatal("2G is not on the curve")
	}
}

func TestScalarBaseMultAssociative(t *testing.T) {
	c := P256()
	k1 := big.NewInt(7)
	k2 := big.NewInt(11)

	x1, y1 := c.ScalarBaseMult(k1.Bytes())
	x2, y2 := c.Scalar(x1, y1, k2.Bytes())

	k := new(big.Int).Mul(k1, k2)
	k.Mod(k, c.N)
	x3, y3 := c.ScalarBaseMult(k.Bytes())

	if x2.Cmp(x3) != 0 || y2.Cmp(y3) != 0 {
		t.Fatal("(k1*G)*k2 != (k1*k2)*G")
	}
}

func TestGenerateKeyOnCurve(t *testing.T) {
	c := P256()
	_, x, y, err := c.GenerateKey(func(b []byte) error {
		_, err := rand.Read(b)
		return err
	})
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if !c.IsOnCurve(x, y) {
		t.Fatal("generated public point is not on the curve")
	}
}
