package sha1

import (
	"encoding/hex"
	"testing"
)

func TestFIPSVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	}
	for _, c := range cases {
		got := Sum([]byte(c.in))
		if hex.EncodeToString(got[:]) != c.want {
			t.Errorf("SHA1(%q) = %x, want %s", c.in, got, c.want)
		}
	}
}

func TestWriteInChunksMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, many times over indeed")
	whole := Sum(data)

	d := New()
	for i := 0; i < len(data); i += 9 {
		end := i + 9
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
