package sha2

import (
	"encoding/hex"
	"testing"
)

func TestSHA256Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, c := range cases {
		got := Sum256([]byte(c.in))
		if hex.EncodeToString(got[:]) != c.want {
			t.Errorf("SHA256(%q) = %x, want %s", c.in, got, c.want)
		}
	}
}

func TestSHA224Vector(t *testing.T) {
	got := Sum224([]byte("abc"))
	want := "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("SHA224(abc) = %x, want %s", got, want)
	}
}

func TestSHA384And512Vectors(t *testing.T) {
	got384 := Sum384([]byte("abc"))
	want384 := "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"
	if hex.EncodeToString(got384[:]) != want384 {
		t.Errorf("SHA384(abc) = %x, want %s", got384, want384)
	}

	got512 := Sum512([]byte("abc"))
	want512 := "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	if hex.EncodeToString(got512[:]) != want512 {
		t.Errorf("SHA512(abc) = %x, want %s", got512, want512)
	}
}

func TestWriteInChunksMatchesOneShot256(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, and does so many many times over and over")
	whole := Sum256(data)

	d := New256()
	for i := 0; i < len(data); i += 11 {
		end := i + 11
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	var chunked [32]byte
	copy(chunked[:], d.Checksum(nil))
	if chunked != whole {
		t.Errorf("chunked = %x, want %x", chunked, whole)
	}
}

func TestWriteInChunksMatchesOneShot512(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated a few times for a multi-block message")
	whole := Sum512(data)

	d := New512()
	for i := 0; i < len(data); i += 13 {
		end := i + 13
		if end > len(data) {
			end = len(data)
		}
		d.Write(data[i:end])
	}
	var chunked [64]byte
	copy(chunked[:], d.Checksum(nil))
	if chunked != whole {
		t.Errorf("chunked = %x, want %x", chunked, whole)
	}
}

func TestSHA512TMatchesNamedVariants(t *testing.T) {
	d224, err := New512T(224)
	if err != nil {
		t.Fatal(err)
	}
	d224.Write([]byte("abc"))
	got224 := d224.Sum()

	want224 := New512_224()
	want224.Write([]byte("abc"))
	wantSum := want224.Sum()

	if hex.EncodeToString(got224) != hex.EncodeToString(wantSum) {
		t.Errorf("SHA-512/224 via New512T = %x, want %x", got224, wantSum)
	}
}

func TestInvalidSHA512TLength(t *testing.T) {
	if _, err := New512T(384); err == nil {
		t.Fatal("expected error reserving 384 for the fixed SHA-384 IV")
	}
	if _, err := New512T(7); err == nil {
		t.Fatal("expected error for non-byte-aligned t")
	}
}
