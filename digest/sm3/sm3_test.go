package sm3

import (
	"encoding/hex"
	"testing"
)

func TestReferenceVector(t *testing.T) {
	got := Sum([]byte("abc"))
	want := "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("SM3(abc) = %x, want %s", got, want)
	}
}

func TestWriteInChunksMatchesOneShot(t *testing.T) {
	data := []byte("abcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd")
	whole := Sum(data)

	d := New()
	for i := 0; i < len(data); i += 5 {
		end := i + 5
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	var chunked [DigestSize]byte
	copy(chunked[:], d.Checksum(nil))
	if chunked != whole {
		t.Errorf("chunked = %x, want %x", chunked, whole)
	}
}
