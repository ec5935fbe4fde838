package rsa

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/coldforge/gocrypto"
	"github.com/coldforge/gocrypto/digest/sha1"
	"github.com/coldforge/gocrypto/digest/sha2"
)

func testKey(t *testing.T) *PrivateKey {
	t.Helper()
	priv, err := GenerateKey(rand.Reader, 512)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if err := priv.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return priv
}

func TestMultiPrimeKeyValidates(t *testing.T) {
	priv, err := GenerateMultiPrimeKey(rand.Reader, 3, 600)
	if err != nil {
		t.Fatalf("GenerateMultiPrimeKey: %v", err)
	}
	if len(priv.Primes) != 3 {
		t.Fatalf("got %d primes, want 3", len(priv.Primes))
	}
	if err := priv.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(priv.Precomputed.CRTValues) != 1 {
		t.Fatalf("got %d CRT values, want 1", len(priv.Precomputed.CRTValues))
	}
}

func TestPKCS1v15RoundTrip(t *testing.T) {
	priv := testKey(t)

	msg := []byte("hello rsa")
	ct, err := EncryptPKCS1v15(rand.Reader, &priv.PublicKey, msg)
	if err != nil {
		t.Fatalf("EncryptPKCS1v15: %v", err)
	}
	pt, err := DecryptPKCS1v15(rand.Reader, priv, ct)
	if err != nil {
		t.Fatalf("DecryptPKCS1v15: %v", err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("round trip mismatch: got %q want %q", pt, msg)
	}

	ct[len(ct)-1] ^= 0xff
	if _, err := DecryptPKCS1v15(rand.Reader, priv, ct); err == nil {
		t.Fatal("expected decryption error for tampered ciphertext")
	}
}

func TestPKCS1v15SignVerify(t *testing.T) {
	priv := testKey(t)

	h := sha1.New()
	h.Write([]byte("sign me"))
	hashed := h.Checksum(nil)

	sig, err := SignPKCS1v15(rand.Reader, priv, SHA1, hashed)
	if err != nil {
		t.Fatalf("SignPKCS1v15: %v", err)
	}
	if err := VerifyPKCS1v15(&priv.PublicKey, SHA1, hashed, sig); err != nil {
		t.Fatalf("VerifyPKCS1v15: %v", err)
	}

	hashed[0] ^= 0xff
	if err := VerifyPKCS1v15(&priv.PublicKey, SHA1, hashed, sig); err == nil {
		t.Fatal("expected verification error for tampered hash")
	}
}

func TestOAEPRoundTrip(t *testing.T) {
	priv := testKey(t)
	oaep := NewOAEP(func() gocrypto.Digest { return sha1.New() })

	msg := []byte("oaep payload")
	ct, err := oaep.Encrypt(rand.Reader, &priv.PublicKey, msg)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := oaep.Decrypt(rand.Reader, priv, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("round trip mismatch: got %q want %q", pt, msg)
	}

	ct[len(ct)-1] ^= 0xff
	if _, err := oaep.Decrypt(rand.Reader, priv, ct); err == nil {
		t.Fatal("expected decryption error for tampered ciphertext")
	}
}

func TestPSSSignVerify(t *testing.T) {
	priv := testKey(t)

	h := sha2.New256()
	h.Write([]byte("pss message"))
	hashed := h.Checksum(nil)

	pss := NewPSS(func() gocrypto.Digest { return sha2.New256() }, 0, &priv.PublicKey)
	sig, err := pss.Sign(rand.Reader, priv, hashed)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := pss.Verify(&priv.PublicKey, hashed, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	hashed[0] ^= 0xff
	if err := pss.Verify(&priv.PublicKey, hashed, sig); err == nil {
		t.Fatal("expected verification error for tampered hash")
	}
}
