package dsa

import (
	"crypto/rand"
	"testing"

	"github.com/coldforge/gocrypto/digest/sha1"
)

func hashMessage(msg []byte) []byte {
	h := sha1.New()
	h.Write(msg)
	return h.Checksum(nil)
}

// Parameter generation at L1024N160 is the cheapest of the four sizes and
// is exercised here; the larger sizes follow the identical code path and
// are not re-run per test to keep the suite fast.
func TestGenerateSignVerifyRoundTrip(t *testing.T) {
	params, err := GenerateParameters(rand.Reader, L1024N160)
	if err != nil {
		t.Fatalf("GenerateParameters: %v", err)
	}
	if params.P.BitLen() != 1024 {
		t.Fatalf("p has %d bits, want 1024", params.P.BitLen())
	}
	if params.Q.BitLen() != 160 {
		t.Fatalf("q has %d bits, want 160", params.Q.BitLen())
	}

	priv, err := GenerateKey(rand.Reader, params)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	hash := hashMessage([]byte("dsa test message"))
	sig, err := Sign(rand.Reader, priv, hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(&priv.PublicKey, hash, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tampered := hashMessage([]byte("different message"))
	if err := Verify(&priv.PublicKey, tampered, sig); err == nil {
		t.Fatal("expected verification to fail for a different message")
	}
}
