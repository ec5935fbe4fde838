package hmac

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coldforge/gocrypto"
	"github.com/coldforge/gocrypto/digest/sha2"
)

func sha256Digest() gocrypto.Digest { return sha2.New256() }

func TestHMACSHA256ReferenceVector(t *testing.T) {
	h, err := New(sha256Digest, []byte("key"))
	if err != nil {
		t.Fatal(err)
	}
	h.Write([]byte("The quick brown fox jumps over the lazy dog"))
	got := h.Checksum(nil)
	want, _ := hex.DecodeString("f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8")
	if !bytes.Equal(got, want) {
		t.Errorf("hmac-sha256 = %x, want %x", got, want)
	}
}

func TestLongKeyIsHashedFirst(t *testing.T) {
	longKey := bytes.Repeat([]byte{0x0b}, 200)
	h, err := New(sha256Digest, longKey)
	if err != nil {
		t.Fatal(err)
	}
	h.Write([]byte("msg"))
	got1 := h.Checksum(nil)

	h.Reset()
	h.Write([]byte("msg"))
	got2 := h.Checksum(nil)

	if !bytes.Equal(got1, got2) {
		t.Errorf("reset did not reproduce the same MAC: %x vs %x", got1, got2)
	}

	sum := sha2.Sum256(longKey)
	hk, err := New(sha256Digest, sum[:])
	if err != nil {
		t.Fatal(err)
	}
	hk.Write([]byte("msg"))
	if want := hk.Checksum(nil); !bytes.Equal(got1, want) {
		t.Errorf("long-key MAC = %x, want MAC under SHA-256(key) %x", got1, want)
	}
}

func TestDifferentKeysDiffer(t *testing.T) {
	h1, _ := New(sha256Digest, []byte("key1"))
	h2, _ := New(sha256Digest, []byte("key2"))
	h1.Write([]byte("same message"))
	h2.Write([]byte("same message"))
	if bytes.Equal(h1.Checksum(nil), h2.Checksum(nil)) {
		t.Errorf("different keys produced the same MAC")
	}
}
