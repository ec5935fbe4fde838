package mode

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coldforge/gocrypto"
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

// fixedIV hands back a constant value, letting tests drive known vectors.
type fixedIV struct{ v []byte }

func (f fixedIV) Draw(out []byte) error { copy(out, f.v); return nil }

func nistKey(t *testing.T) []byte { return hexb(t, "2b7e151628aed2a6abf7158809cf4f3c") }
func nistIV(t *testing.T) []byte  { return hexb(t, "000102030405060708090a0b0c0d0e0f") }

func nistPlain(t *testing.T) []byte {
	return hexb(t,
		"6bc1bee22e409f96e93d7e117393172a"+
			"ae2d8a571e03ac9c9eb76fac45af8e51"+
			"30c81c46a35ce411e5fbc1191a0a52ef"+
			"f69f2445df4f9b17ad2b417be66c3710")
}

func TestECBReferenceFirstBlock(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewECB(c, gocrypto.EmptyPadding{})
	if err != nil {
		t.Fatal(err)
	}
	ct, err := m.Encrypt(nil, nistPlain(t))
	if err != nil {
		t.Fatal(err)
	}
	want := hexb(t, "3ad77bb40d7a3660a89ecaf32466ef97")
	if !bytes.Equal(ct[:16], want) {
		t.Errorf("ecb block1 = %x, want %x", ct[:16], want)
	}
	pt, err := m.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, nistPlain(t)) {
		t.Errorf("round trip mismatch")
	}
}

func TestCBCReferenceFirstBlock(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewCBC(c, gocrypto.EmptyPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	ct, err := m.Encrypt(nil, nistPlain(t))
	if err != nil {
		t.Fatal(err)
	}
	want := hexb(t, "7649abac8119b246cee98e9b12e9197d")
	if !bytes.Equal(ct[:16], want) {
		t.Errorf("cbc block1 = %x, want %x", ct[:16], want)
	}

	m2, err := NewCBC(c, gocrypto.EmptyPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	pt, err := m2.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, nistPlain(t)) {
		t.Errorf("round trip mismatch")
	}
}

func TestCBCStreamMatchesOneShot(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	plain := append(nistPlain(t), 0x01, 0x02, 0x03)
	oneShot, err := m.Encrypt(nil, plain)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	var streamed []byte
	part, err := s.WriteEncrypt(plain[:20])
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)
	part, err = s.WriteEncrypt(plain[20:])
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)
	part, err = s.FinishEncrypt()
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)

	if !bytes.Equal(streamed, oneShot) {
		t.Errorf("streamed = %x, want %x", streamed, oneShot)
	}
}

func TestCBCStreamDecryptMatchesOneShot(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	plain := append(nistPlain(t), 0x01, 0x02, 0x03)
	ct, err := m.Encrypt(nil, plain)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	var streamed []byte
	part, err := s.WriteDecrypt(ct[:20])
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)
	part, err = s.WriteDecrypt(ct[20:])
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)
	part, err = s.FinishDecrypt()
	if err != nil {
		t.Fatal(err)
	}
	streamed = append(streamed, part...)

	if !bytes.Equal(streamed, plain) {
		t.Errorf("streamed = %x, want %x", streamed, plain)
	}
}

func TestECBStreamRoundTripArbitraryChunking(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	plain := append(nistPlain(t), 0x01, 0x02, 0x03, 0x04, 0x05)

	enc, err := NewECB(c, gocrypto.BitPadding{})
	if err != nil {
		t.Fatal(err)
	}
	var ct []byte
	chunks := [][]byte{plain[:7], plain[7:30], plain[30:]}
	for _, chunk := range chunks {
		part, err := enc.WriteEncrypt(chunk)
		if err != nil {
			t.Fatal(err)
		}
		ct = append(ct, part...)
	}
	part, err := enc.FinishEncrypt()
	if err != nil {
		t.Fatal(err)
	}
	ct = append(ct, part...)

	oneShotMode, err := NewECB(c, gocrypto.BitPadding{})
	if err != nil {
		t.Fatal(err)
	}
	oneShot, err := oneShotMode.Encrypt(nil, plain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct, oneShot) {
		t.Fatalf("streamed encrypt = %x, want %x", ct, oneShot)
	}

	dec, err := NewECB(c, gocrypto.BitPadding{})
	if err != nil {
		t.Fatal(err)
	}
	var pt []byte
	for off := 0; off < len(ct); off += 9 {
		end := off + 9
		if end > len(ct) {
			end = len(ct)
		}
		part, err := dec.WriteDecrypt(ct[off:end])
		if err != nil {
			t.Fatal(err)
		}
		pt = append(pt, part...)
	}
	part, err = dec.FinishDecrypt()
	if err != nil {
		t.Fatal(err)
	}
	pt = append(pt, part...)

	if !bytes.Equal(pt, plain) {
		t.Errorf("streamed decrypt = %x, want %x", pt, plain)
	}
}

// TestFinishRestoresFeedbackForReuse exercises spec.md §4.1's reuse
// guarantee directly: Finish alone (with no explicit Reset call) must
// leave every mode ready to process a second, independent message with
// the same initial IV/counter.
func TestFinishRestoresFeedbackForReuse(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("CBC", func(t *testing.T) {
		m, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
		if err != nil {
			t.Fatal(err)
		}
		first, err := m.Encrypt(nil, nistPlain(t))
		if err != nil {
			t.Fatal(err)
		}

		// Stream and finish one message first, then stream a second
		// message with no explicit Reset.
		if _, err := m.WriteEncrypt(nistPlain(t)); err != nil {
			t.Fatal(err)
		}
		if _, err := m.FinishEncrypt(); err != nil {
			t.Fatal(err)
		}
		streamed, err := m.WriteEncrypt(nistPlain(t))
		if err != nil {
			t.Fatal(err)
		}
		tail, err := m.FinishEncrypt()
		if err != nil {
			t.Fatal(err)
		}
		streamed = append(streamed, tail...)
		if !bytes.Equal(streamed, first) {
			t.Errorf("cbc after finish, without Reset: = %x, want %x", streamed, first)
		}
	})

	t.Run("OFB", func(t *testing.T) {
		m, err := NewOFB(c, fixedIV{nistIV(t)})
		if err != nil {
			t.Fatal(err)
		}
		first, err := m.Encrypt(nil, nistPlain(t))
		if err != nil {
			t.Fatal(err)
		}

		_ = m.Write(nistPlain(t))
		m.Finish()
		streamed := m.Write(nistPlain(t))
		m.Finish()
		if !bytes.Equal(streamed, first) {
			t.Errorf("ofb after finish, without Reset: = %x, want %x", streamed, first)
		}
	})

	t.Run("CTR", func(t *testing.T) {
		seed := hexb(t, "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")
		ref, err := NewCTR(c, fixedIV{seed}, nil)
		if err != nil {
			t.Fatal(err)
		}
		first, err := ref.Encrypt(nil, nistPlain(t))
		if err != nil {
			t.Fatal(err)
		}

		m, err := NewCTR(c, fixedIV{seed}, nil)
		if err != nil {
			t.Fatal(err)
		}
		// Consume a message via the streaming path, Finish, then stream a
		// second message with no explicit Reset: it must reproduce the
		// first message's counter sequence exactly.
		_ = m.Write(nistPlain(t))
		m.Finish()
		streamed := m.Write(nistPlain(t))
		m.Finish()
		if !bytes.Equal(streamed, first) {
			t.Errorf("ctr after finish, without Reset: = %x, want %x", streamed, first)
		}
	})

	t.Run("CFB", func(t *testing.T) {
		m, err := NewCFB(c, fixedIV{nistIV(t)}, 0)
		if err != nil {
			t.Fatal(err)
		}
		first, err := m.Encrypt(nil, nistPlain(t))
		if err != nil {
			t.Fatal(err)
		}

		_ = m.WriteEncrypt(nistPlain(t))
		_ = m.FinishEncrypt()
		streamed := m.WriteEncrypt(nistPlain(t))
		streamed = append(streamed, m.FinishEncrypt()...)
		if !bytes.Equal(streamed, first) {
			t.Errorf("cfb after finish, without Reset: = %x, want %x", streamed, first)
		}
	})
}

func TestCFBReferenceFirstBlock(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewCFB(c, fixedIV{nistIV(t)}, 0)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := m.Encrypt(nil, nistPlain(t))
	if err != nil {
		t.Fatal(err)
	}
	want := hexb(t, "3b3fd92eb72dad20333449f8e83cfb4a")
	if !bytes.Equal(ct[:16], want) {
		t.Errorf("cfb block1 = %x, want %x", ct[:16], want)
	}

	m2, err := NewCFB(c, fixedIV{nistIV(t)}, 0)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := m2.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, nistPlain(t)) {
		t.Errorf("round trip mismatch")
	}
}

func TestOFBReferenceFirstBlock(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewOFB(c, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	ct, err := m.Encrypt(nil, nistPlain(t))
	if err != nil {
		t.Fatal(err)
	}
	want := hexb(t, "3b3fd92eb72dad20333449f8e83cfb4a")
	if !bytes.Equal(ct[:16], want) {
		t.Errorf("ofb block1 = %x, want %x", ct[:16], want)
	}

	m2, err := NewOFB(c, fixedIV{nistIV(t)})
	if err != nil {
		t.Fatal(err)
	}
	pt, err := m2.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, nistPlain(t)) {
		t.Errorf("round trip mismatch")
	}
}

func TestCTRReferenceFirstBlock(t *testing.T) {
	c, err := aes.NewCipher(nistKey(t))
	if err != nil {
		t.Fatal(err)
	}
	seed := hexb(t, "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")
	m, err := NewCTR(c, fixedIV{seed}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := m.Encrypt(nil, nistPlain(t))
	if err != nil {
		t.Fatal(err)
	}
	want := hexb(t, "874d6191b620e3261bef6864990db6ce")
	if !bytes.Equal(ct[:16], want) {
		t.Errorf("ctr block1 = %x, want %x", ct[:16], want)
	}

	m2, err := NewCTR(c, fixedIV{seed}, nil)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := m2.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, nistPlain(t)) {
		t.Errorf("round trip mismatch")
	}
}

func TestStdCounterWraps(t *testing.T) {
	c := NewStdCounter(4)
	c.Reset([]byte{0, 0, 0, 0xff}, 8)
	first := c.Next()
	second := c.Next()
	if !bytes.Equal(first, []byte{0, 0, 0, 0xff}) {
		t.Fatalf("first = %x", first)
	}
	if !bytes.Equal(second, []byte{0, 0, 0, 0x00}) {
		t.Fatalf("second = %x, want low byte to wrap to 0", second)
	}
}
