package ecdsa

import (
	"crypto/rand"
	"testing"

	"github.com/coldforge/gocrypto/digest/sha2"
	"github.com/coldforge/gocrypto/elliptic"
)

func hashMessage(msg []byte) []byte {
	h := sha2.New256()
	h.Write(msg)
	return h.Checksum(nil)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, curve := range []*elliptic.CurveParams{elliptic.P224(), elliptic.P256(), elliptic.P384(), elliptic.P521()} {
		t.Run(curve.Name, func(t *testing.T) {
			priv, err := GenerateKey(curve, rand.Reader)
			if err != nil {
				t.Fatalf("GenerateKey: %v", err)
			}

			hash := hashMessage([]byte("ecdsa test message"))
			sig, err := Sign(rand.Reader, priv, hash)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			if err := Verify(&priv.PublicKey, hash, sig); err != nil {
				t.Fatalf("Verify: %v", err)
			}
		})
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	curve := elliptic.P256()
	priv, err := GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	hash := hashMessage([]byte("original message"))
	sig, err := Sign(rand.Reader, priv, hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := hashMessage([]byte("different message"))
	if err := Verify(&priv.PublicKey, tampered, sig); err == nil {
		t.Fatal("expected verification to fail for a different message")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	curve := elliptic.P256()
	priv1, err := GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	priv2, err := GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	hash := hashMessage([]byte("message"))
	sig, err := Sign(rand.Reader, priv1, hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(&priv2.PublicKey, hash, sig); err == nil {
		t.Fatal("expected verification to fail under the wrong public key")
	}
}
