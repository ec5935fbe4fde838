package gocrypto

// BlockCipher is a keyed permutation on fixed-size blocks. BlockSize
// reports the block size in bytes; ciphers with no natural block size
// (stream-like constructions) report 1.
//
// EncryptBlock and DecryptBlock must fully overwrite dst, and plain/cipher
// must be exactly one block when BlockSize() > 1.
type BlockCipher interface {
	BlockSize() int
	EncryptBlock(dst, plain []byte)
	DecryptBlock(dst, cipher []byte)
}

// Digest is a hash function that can be fed data incrementally.
//
// Write must be associative: writing "ab" in two calls or one call must
// produce the same Checksum. Checksum is idempotent until the next Write
// or Reset. After Reset the digest behaves like a freshly constructed one.
//
// BlockSize reports the input block size in bytes, or 0 if the
// construction has no natural block size (e.g. a sponge). Size reports
// the output size in bits.
type Digest interface {
	BlockSize() int
	Size() int
	Write(p []byte) (n int, err error)
	Checksum(out []byte) []byte
	Reset()
}

// DigestXOF is a Digest whose output length is chosen by the caller
// instead of being fixed by the construction.
type DigestXOF interface {
	Digest
	// SetDigestLen sets the desired output length in bits and implicitly
	// resets all absorbed state.
	SetDigestLen(bits int)
}

// Padding grows a buffer to a multiple of a block size in a way that
// Unpad can reverse unambiguously.
type Padding interface {
	// Pad appends padding to buf so len(buf) becomes a multiple of
	// blockSize, and returns the grown slice.
	Pad(buf []byte, blockSize int) []byte
	// Unpad removes padding previously added by Pad, or reports an
	// UnpaddingNotMatch error.
	Unpad(buf []byte) ([]byte, error)
}

// IVSource supplies fresh initialization vectors.
type IVSource interface {
	// Draw fills out with a fresh IV. len(out) equals the mode's block
	// size.
	Draw(out []byte) error
}

// Counter produces the successive big-endian counter blocks consumed by
// CTR mode. Overflow wraps silently.
type Counter interface {
	// Reset seeds the counter from seed (big-endian), using the low
	// bits bits of it as the incrementing portion.
	Reset(seed []byte, bits int)
	// Next returns the next counter block; the returned slice is owned
	// by the Counter and is overwritten by the following call.
	Next() []byte
	// BitsLen reports the width, in bits, of the incrementing portion.
	BitsLen() int
}
