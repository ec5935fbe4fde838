package zuc

import "github.com/coldforge/gocrypto"

// integrityIV builds the 128-bit IV for the ZUC-based integrity
// algorithm (128-EIA3 style), which differs from confidentialityIV only
// in where the direction bit is folded in (bytes 8 and 14, rather than
// being part of byte 4).
func integrityIV(count uint32, bearer, direction byte) []byte {
	iv := make([]byte, IVSize)
	iv[0] = byte(count >> 24)
	iv[1] = byte(count >> 16)
	iv[2] = byte(count >> 8)
	iv[3] = byte(count)
	iv[4] = bearer << 3
	iv[5], iv[6], iv[7] = 0, 0, 0
	iv[8] = iv[0] ^ (direction << 7)
	iv[9] = iv[1]
	iv[10] = iv[2]
	iv[11] = iv[3]
	iv[12] = iv[4]
	iv[13] = iv[5]
	iv[14] = iv[6] ^ (direction << 7)
	iv[15] = iv[7]
	return iv
}

// Mac computes the ZUC-based integrity MAC (128-EIA3 style): a bit-level
// accumulator folding in a sliding 32-bit window of keystream for every
// set bit of the message.
type Mac struct {
	key       []byte
	count     uint32
	bearer    byte
	direction byte

	eng        *engine
	key0, key1 uint32
	length     int
	t          uint32
}

// NewMac builds a ZUC integrity MAC from a 128-bit key, a COUNT value, a
// 5-bit radio bearer identity and a 1-bit direction flag.
func NewMac(key []byte, count uint32, bearer, direction byte) (*Mac, error) {
	m := &Mac{key: append([]byte(nil), key...), count: count, bearer: bearer, direction: direction}
	if err := m.reseed(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mac) reseed() error {
	eng, err := newEngine(m.key, integrityIV(m.count, m.bearer, m.direction))
	if err != nil {
		return err
	}
	m.eng = eng
	m.key0 = eng.next()
	m.key1 = eng.next()
	m.length = 0
	m.t = 0
	return nil
}

func (m *Mac) Reset() {
	if err := m.reseed(); err != nil {
		panic(err)
	}
}

func (m *Mac) BlockSize() int { return 4 }
func (m *Mac) Size() int      { return 32 }

func isOne(data []byte, idx int) bool {
	return data[idx>>3]&(1<<uint(7-(idx&7))) != 0
}

func window(key0, key1 uint32, rem uint) uint32 {
	if rem == 0 {
		return key0
	}
	return (key0 << rem) | (key1 >> (32 - rem))
}

// Write folds each set bit of p into the running accumulator, advancing
// the two-word keystream window every 32 bits.
func (m *Mac) Write(p []byte) (int, error) {
	nbits := len(p) * 8
	for i := 0; i < nbits; i++ {
		rem := uint(m.length & 31)
		if isOne(p, i) {
			m.t ^= window(m.key0, m.key1, rem)
		}
		m.length++
		if m.length&31 == 0 {
			m.key0 = m.key1
			m.key1 = m.eng.next()
		}
	}
	return len(p), nil
}

// Checksum finalizes the MAC by XORing in one more keystream window
// aligned to the current bit position.
func (m *Mac) Checksum(out []byte) []byte {
	rem := uint(m.length & 31)
	mac := m.t ^ window(m.key0, m.key1, rem)

	if out == nil {
		out = make([]byte, 4)
	}
	out[0] = byte(mac >> 24)
	out[1] = byte(mac >> 16)
	out[2] = byte(mac >> 8)
	out[3] = byte(mac)
	return out
}

var (
	_ gocrypto.Digest = (*Mac)(nil)
)
