// Package hmac implements HMAC (RFC 2104 / FIPS 198-1) over any
// gocrypto.Digest.
package hmac

import "github.com/coldforge/gocrypto"

// NewDigest returns a fresh instance of the underlying hash; each HMAC
// needs two independent ones (inner and outer) plus a third that New uses
// to hash a key longer than the block size.
type NewDigest func() gocrypto.Digest

// HMAC computes a keyed message authentication code from any digest.
type HMAC struct {
	newDigest NewDigest
	inner     gocrypto.Digest
	outer     gocrypto.Digest
	ipad      []byte
	opad      []byte
}

const (
	ipadByte = 0x36
	opadByte = 0x5c
)

// New builds an HMAC over key using newDigest as the underlying hash.
func New(newDigest NewDigest, key []byte) (*HMAC, error) {
	if newDigest == nil {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "hmac: newDigest must not be nil")
	}
	probe := newDigest()
	blockSize := probe.BlockSize()
	if blockSize <= 0 {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "hmac: digest reports no block size")
	}

	k := key
	if len(k) > blockSize {
		probe.Write(k)
		k = probe.Checksum(nil)
		probe.Reset()
	}
	h := &HMAC{
		newDigest: newDigest,
		ipad:      make([]byte, blockSize),
		opad:      make([]byte, blockSize),
	}
	copy(h.ipad, k)
	copy(h.opad, k)
	for i := range h.ipad {
		h.ipad[i] ^= ipadByte
		h.opad[i] ^= opadByte
	}

	h.inner = newDigest()
	h.outer = newDigest()
	h.inner.Write(h.ipad)
	return h, nil
}

func (h *HMAC) BlockSize() int { return h.inner.BlockSize() }
func (h *HMAC) Size() int      { return h.inner.Size() }

func (h *HMAC) Write(p []byte) (int, error) { return h.inner.Write(p) }

// Checksum returns HMAC_K(m) = H((K' xor opad) || H((K' xor ipad) || m)).
func (h *HMAC) Checksum(out []byte) []byte {
	innerSum := h.inner.Checksum(nil)
	h.outer.Reset()
	h.outer.Write(h.opad)
	h.outer.Write(innerSum)
	return h.outer.Checksum(out)
}

func (h *HMAC) Reset() {
	h.inner.Reset()
	h.inner.Write(h.ipad)
}

var _ gocrypto.Digest = (*HMAC)(nil)
