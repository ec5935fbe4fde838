package aes

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func hexb(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestFIPS197Vectors(t *testing.T) {
	tests := []struct {
		name       string
		key, plain, cipher string
	}{
		{
			name:   "AES-128",
			key:    "2b7e151628aed2a6abf7158809cf4f3c",
			plain:  "3243f6a8885a308d313198a2e0370734",
			cipher: "3925841d02dc09fbdc118597196a0b32",
		},
		{
			name:   "AES-256",
			key:    "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "8ea2b7ca516745bfeafc49904b496089",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(hexb(t, tt.key))
			if err != nil {
				t.Fatalf("NewCipher: %v", err)
			}

			plain := hexb(t, tt.plain)
			want := hexb(t, tt.cipher)

			got := make([]byte, BlockSize)
			c.EncryptBlock(got, plain)
			if !bytes.Equal(got, want) {
				t.Errorf("encrypt = %x, want %x", got, want)
			}

			back := make([]byte, BlockSize)
			c.DecryptBlock(back, got)
			if !bytes.Equal(back, plain) {
				t.Errorf("decrypt(encrypt(p)) = %x, want %x", back, plain)
			}
		})
	}
}

func TestRoundTripAllSizes(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		key := bytes.Repeat([]byte{0x42}, n)
		c, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher(%d): %v", n, err)
		}
		plain := []byte("0123456789abcdef")
		ct := make([]byte, BlockSize)
		c.EncryptBlock(ct, plain)
		pt := make([]byte, BlockSize)
		c.DecryptBlock(pt, ct)
		if !bytes.Equal(pt, plain) {
			t.Errorf("key size %d: round trip mismatch: got %x want %x", n, pt, plain)
		}
	}
}

func TestInvalidKeySize(t *testing.T) {
	if _, err := NewCipher(make([]byte, 10)); err == nil {
		t.Fatal("expected error for invalid key size")
	}
}

// TestHWScheduleMatchesPortable proves the key-assist recurrence used by
// the AES-NI dispatch path (capability.go) derives the same round keys as
// the portable table-driven expansion, for every supported key size.
func TestHWScheduleMatchesPortable(t *testing.T) {
	for _, tc := range []struct {
		nk, nr int
		keyLen int
	}{
		{4, 10, 16},
		{6, 12, 24},
		{8, 14, 32},
	} {
		key := bytes.Repeat([]byte{0x5a, 0x11, 0xc3}, tc.keyLen)[:tc.keyLen]
		portable := expandKey(key, tc.nk, tc.nr)
		hw := keyAssistSchedule(key, tc.nk, tc.nr)
		if !equalWords(portable, hw) {
			t.Errorf("key size %d: hw schedule diverges from portable schedule", tc.keyLen)
		}
	}
}

func equalWords(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
