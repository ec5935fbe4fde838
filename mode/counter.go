package mode

import "github.com/coldforge/gocrypto"

// StdCounter is the default gocrypto.Counter: a big-endian counter block
// that increments only its low bitsLen bits, wrapping the rest fixed, as
// used by CTR mode.
type StdCounter struct {
	block   []byte
	bitsLen int
}

// NewStdCounter builds a zero counter sized to blockSize bytes.
func NewStdCounter(blockSize int) *StdCounter {
	return &StdCounter{block: make([]byte, blockSize), bitsLen: blockSize * 8}
}

func (c *StdCounter) Reset(seed []byte, bits int) {
	if bits <= 0 || bits > len(seed)*8 {
		bits = len(seed) * 8
	}
	if len(c.block) != len(seed) {
		c.block = make([]byte, len(seed))
	}
	copy(c.block, seed)
	c.bitsLen = bits
}

// Next returns the current counter block and advances it by one.
func (c *StdCounter) Next() []byte {
	out := append([]byte(nil), c.block...)
	c.increment()
	return out
}

func (c *StdCounter) BitsLen() int { return c.bitsLen }

// increment adds one to the low bitsLen bits of the counter block,
// treating it as a big-endian integer, and wraps on overflow.
func (c *StdCounter) increment() {
	nbytes := (c.bitsLen + 7) / 8
	start := len(c.block) - nbytes
	// Partial top byte of the counter region, if bitsLen isn't byte aligned.
	topMask := byte(0xff)
	if r := c.bitsLen % 8; r != 0 {
		topMask = byte(1<<uint(r)) - 1
	}
	for i := len(c.block) - 1; i >= start; i-- {
		if i == start && topMask != 0xff {
			masked := (c.block[i] & topMask) + 1
			c.block[i] = (c.block[i] &^ topMask) | (masked & topMask)
			if masked&^topMask == 0 {
				return
			}
			continue
		}
		c.block[i]++
		if c.block[i] != 0 {
			return
		}
	}
}

func validateCounter(counter gocrypto.Counter, blockSize int) (gocrypto.Counter, error) {
	if counter != nil {
		return counter, nil
	}
	return NewStdCounter(blockSize), nil
}
