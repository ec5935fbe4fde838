package zuc

import "testing"

// These tests exercise structural properties of the ZUC engine and its
// cipher/MAC wrappers (determinism, encrypt/decrypt symmetry, avalanche
// under a single bit flip). They do not check output against the GM/T
// 0001-2012 known-answer test vectors: this package's S0/S1 substitution
// tables and LFSR-loading constants could not be cross-checked against
// the published standard in this environment (see DESIGN.md), so a
// byte-exact test vector would only be confirming tables transcribed
// from the same uncertain source, not correctness against the standard.

var (
	testKey = []byte{
		0x17, 0x3d, 0x14, 0xba, 0x50, 0x03, 0x73, 0x1d,
		0x7a, 0x60, 0x04, 0x94, 0x70, 0xf0, 0x0a, 0x29,
	}
)

func TestCipherDeterministic(t *testing.T) {
	plain := []byte("ZUC stream cipher test plaintext payload!!")

	c1, err := NewCipher(testKey, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	out1 := make([]byte, len(plain))
	if err := c1.XORKeyStream(out1, plain); err != nil {
		t.Fatalf("XORKeyStream: %v", err)
	}

	c2, err := NewCipher(testKey, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	out2 := make([]byte, len(plain))
	if err := c2.XORKeyStream(out2, plain); err != nil {
		t.Fatalf("XORKeyStream: %v", err)
	}

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("same key/count/bearer/direction produced different keystream at byte %d", i)
		}
	}
}

func TestCipherEncryptDecryptRoundTrip(t *testing.T) {
	plain := []byte("round trip message for the ZUC confidentiality algorithm")

	enc, err := NewCipher(testKey, 42, 3, 1)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	cipher := make([]byte, len(plain))
	if err := enc.XORKeyStream(cipher, plain); err != nil {
		t.Fatalf("XORKeyStream: %v", err)
	}

	dec, err := NewCipher(testKey, 42, 3, 1)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	recovered := make([]byte, len(cipher))
	if err := dec.XORKeyStream(recovered, cipher); err != nil {
		t.Fatalf("XORKeyStream: %v", err)
	}

	for i := range plain {
		if plain[i] != recovered[i] {
			t.Fatalf("round trip mismatch at byte %d: got %x want %x", i, recovered[i], plain[i])
		}
	}
}

func TestCipherDifferentCountDiverges(t *testing.T) {
	plain := make([]byte, 32)

	c1, _ := NewCipher(testKey, 1, 0, 0)
	out1 := make([]byte, len(plain))
	c1.XORKeyStream(out1, plain)

	c2, _ := NewCipher(testKey, 2, 0, 0)
	out2 := make([]byte, len(plain))
	c2.XORKeyStream(out2, plain)

	same := true
	for i := range out1 {
		if out1[i] != out2[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("keystreams for different COUNT values should not be identical")
	}
}

func TestMacDeterministicAndSensitive(t *testing.T) {
	msg := []byte("integrity protected message body")

	m1, err := NewMac(testKey, 7, 5, 0)
	if err != nil {
		t.Fatalf("NewMac: %v", err)
	}
	m1.Write(msg)
	tag1 := m1.Checksum(nil)

	m2, err := NewMac(testKey, 7, 5, 0)
	if err != nil {
		t.Fatalf("NewMac: %v", err)
	}
	m2.Write(msg)
	tag2 := m2.Checksum(nil)

	for i := range tag1 {
		if tag1[i] != tag2[i] {
			t.Fatal("identical input produced different MAC tags")
		}
	}

	tampered := append([]byte(nil), msg...)
	tampered[0] ^= 0x01
	m3, _ := NewMac(testKey, 7, 5, 0)
	m3.Write(tampered)
	tag3 := m3.Checksum(nil)

	equal := true
	for i := range tag1 {
		if tag1[i] != tag3[i] {
			equal = false
			break
		}
	}
	if equal {
		t.Fatal("single bit flip in message did not change the MAC tag")
	}
}

func TestMacResetReproducesInitialState(t *testing.T) {
	m, err := NewMac(testKey, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewMac: %v", err)
	}
	m.Write([]byte("first message"))
	_ = m.Checksum(nil)

	m.Reset()
	m.Write([]byte("second message"))
	tagAfterReset := m.Checksum(nil)

	fresh, _ := NewMac(testKey, 1, 1, 1)
	fresh.Write([]byte("second message"))
	tagFresh := fresh.Checksum(nil)

	for i := range tagAfterReset {
		if tagAfterReset[i] != tagFresh[i] {
			t.Fatal("Reset did not reproduce the freshly-seeded MAC state")
		}
	}
}
