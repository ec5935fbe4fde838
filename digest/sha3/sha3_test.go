package sha3

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestSHA3ReferenceVectors(t *testing.T) {
	got256 := Sum256(nil)
	want256 := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"
	if hex.EncodeToString(got256[:]) != want256 {
		t.Errorf("SHA3-256(\"\") = %x, want %s", got256, want256)
	}

	got512 := Sum512(nil)
	want512 := "a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26"
	if hex.EncodeToString(got512[:]) != want512 {
		t.Errorf("SHA3-512(\"\") = %x, want %s", got512, want512)
	}
}

func TestWriteInChunksMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog and then jumps back over again for good measure")
	whole := Sum256(data)

	d := New256()
	for i := 0; i < len(data); i += 17 {
		end := i + 17
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

func TestShakeIsPrefixConsistent(t *testing.T) {
	data := []byte("arbitrary input")
	short := ShakeSum128(data, 32)
	long := ShakeSum128(data, 64)
	if !bytes.Equal(short, long[:32]) {
		t.Errorf("shake128 32-byte output isn't a prefix of the 64-byte output:\n%x\n%x", short, long[:32])
	}
}

func TestShake128Differs256(t *testing.T) {
	data := []byte("arbitrary input")
	a := ShakeSum128(data, 32)
	b := ShakeSum256(data, 32)
	if bytes.Equal(a, b) {
		t.Errorf("shake128 and shake256 produced identical output, expected distinct sponges")
	}
}

func TestWriteBitsByteAlignedMatchesWrite(t *testing.T) {
	data := []byte("a full-byte message absorbed via WriteBits should match Write")

	d1 := New256()
	d1.Write(data)
	want := d1.Checksum(nil)

	d2 := New256()
	if err := d2.WriteBits(data, len(data)*8); err != nil {
		t.Fatal(err)
	}
	got := d2.Checksum(nil)

	if !bytes.Equal(got, want) {
		t.Errorf("WriteBits(byte-aligned) = %x, want %x", got, want)
	}
}

func TestWriteBitsPartialByteDiffersFromFullByte(t *testing.T) {
	// Absorbing only the low 5 bits of 0xFF should not produce the same
	// digest as absorbing the full byte.
	d1 := New256()
	if err := d1.WriteBits([]byte{0xff}, 5); err != nil {
		t.Fatal(err)
	}
	partial := d1.Checksum(nil)

	d2 := New256()
	d2.Write([]byte{0xff})
	full := d2.Checksum(nil)

	if bytes.Equal(partial, full) {
		t.Errorf("partial-byte and full-byte absorption produced the same digest")
	}
}
