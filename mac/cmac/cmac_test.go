package cmac

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coldforge/gocrypto/block/aes"
)

func hexb(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestAES128CMACReferenceVectors(t *testing.T) {
	key := hexb(t, "2b7e151628aed2a6abf7158809cf4f3c")
	c, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}

	m, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Checksum(nil)
	want := hexb(t, "bb1d6929e95937287fa37d129b756746")
	if !bytes.Equal(got, want) {
		t.Errorf("CMAC(empty) = %x, want %x", got, want)
	}

	m2, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	m2.Write(hexb(t, "6bc1bee22e409f96e93d7e117393172a"))
	got2 := m2.Checksum(nil)
	want2 := hexb(t, "070a16b46b4d4144f79bdd9dd04a287c")
	if !bytes.Equal(got2, want2) {
		t.Errorf("CMAC(16 bytes) = %x, want %x", got2, want2)
	}
}

func TestStreamedWriteMatchesSingleWrite(t *testing.T) {
	key := hexb(t, "2b7e151628aed2a6abf7158809cf4f3c")
	c, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	data := hexb(t, "6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	whole, _ := New(c)
	whole.Write(data)
	wantSum := whole.Checksum(nil)

	streamed, _ := New(c)
	streamed.Write(data[:10])
	streamed.Write(data[10:])
	gotSum := streamed.Checksum(nil)

	if !bytes.Equal(gotSum, wantSum) {
		t.Errorf("streamed = %x, want %x", gotSum, wantSum)
	}
}
