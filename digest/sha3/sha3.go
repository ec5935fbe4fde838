package sha3

// New224 returns a fresh SHA3-224 digest.
func New224() *State { return newState(144, dsSHA3, dsSHA3Bits, 224) }

// New256 returns a fresh SHA3-256 digest.
func New256() *State { return newState(136, dsSHA3, dsSHA3Bits, 256) }

// New384 returns a fresh SHA3-384 digest.
func New384() *State { return newState(104, dsSHA3, dsSHA3Bits, 384) }

// New512 returns a fresh SHA3-512 digest.
func New512() *State { return newState(72, dsSHA3, dsSHA3Bits, 512) }

// NewShake128 returns a SHAKE128 XOF; call SetDigestLen before Checksum.
func NewShake128() *State { return newState(168, dsSHAKE, dsSHAKEBits, 0) }

// NewShake256 returns a SHAKE256 XOF; call SetDigestLen before Checksum.
func NewShake256() *State { return newState(136, dsSHAKE, dsSHAKEBits, 0) }

// NewRawShake128 returns a RawSHAKE128 XOF, whose domain separation is
// "11" (FIPS 202 §6.2) rather than SHAKE's "1111".
func NewRawShake128() *State { return newState(168, 0x07, 3, 0) }

// NewRawShake256 returns a RawSHAKE256 XOF.
func NewRawShake256() *State { return newState(136, 0x07, 3, 0) }

func sum(d *State, data []byte, outBytes int) []byte {
	d.Write(data)
	return d.Checksum(make([]byte, outBytes))
}

// Sum224 returns the SHA3-224 checksum of data in one call.
func Sum224(data []byte) [28]byte {
	var out [28]byte
	copy(out[:], sum(New224(), data, 28))
	return out
}

// Sum256 returns the SHA3-256 checksum of data in one call.
func Sum256(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], sum(New256(), data, 32))
	return out
}

// Sum384 returns the SHA3-384 checksum of data in one call.
func Sum384(data []byte) [48]byte {
	var out [48]byte
	copy(out[:], sum(New384(), data, 48))
	return out
}

// Sum512 returns the SHA3-512 checksum of data in one call.
func Sum512(data []byte) [64]byte {
	var out [64]byte
	copy(out[:], sum(New512(), data, 64))
	return out
}

// ShakeSum128 squeezes outBytes of SHAKE128 output from data in one call.
func ShakeSum128(data []byte, outBytes int) []byte {
	d := NewShake128()
	d.SetDigestLen(outBytes * 8)
	d.Write(data)
	return d.Checksum(nil)
}

// ShakeSum256 squeezes outBytes of SHAKE256 output from data in one call.
func ShakeSum256(data []byte, outBytes int) []byte {
	d := NewShake256()
	d.SetDigestLen(outBytes * 8)
	d.Write(data)
	return d.Checksum(nil)
}
