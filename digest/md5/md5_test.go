package md5

import (
	"encoding/hex"
	"testing"
)

func TestRFC1321Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"a", "0cc175b9c0f1b6a831c399e269772661"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	}
	for _, c := range cases {
		got := Sum([]byte(c.in))
		if hex.EncodeToString(got[:]) != c.want {
			t.Errorf("MD5(%q) = %x, want %s", c.in, got, c.want)
		}
	}
}

func TestWriteInChunksMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, and does so many times over")
	whole := Sum(data)

	d := New()
	for i := 0; i < len(data); i += 7 {
		end := i + 7
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
