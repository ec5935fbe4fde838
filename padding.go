package gocrypto

// EmptyPadding is a no-op Padding. Pad requires the buffer to already be
// block-aligned; Unpad is the identity. Use it only when the caller
// guarantees aligned plaintext (e.g. CTR/OFB streams, or a protocol with
// its own length framing).
type EmptyPadding struct{}

func (EmptyPadding) Pad(buf []byte, blockSize int) []byte {
	return buf
}

func (EmptyPadding) Unpad(buf []byte) ([]byte, error) {
	return buf, nil
}

// BitPadding appends a single 1-bit followed by 0-bits up to the next
// block boundary. If the input is already aligned, a whole extra block of
// padding is appended, so Unpad can always find the 0x80 marker.
type BitPadding struct{}

func (BitPadding) Pad(buf []byte, blockSize int) []byte {
	if blockSize <= 0 {
		blockSize = 1
	}
	padLen := blockSize - len(buf)%blockSize
	out := append(buf, 0x80)
	out = append(out, make([]byte, padLen-1)...)
	return out
}

func (BitPadding) Unpad(buf []byte) ([]byte, error) {
	for i := len(buf) - 1; i >= 0; i-- {
		switch buf[i] {
		case 0x00:
			continue
		case 0x80:
			return buf[:i], nil
		default:
			return nil, New(UnpaddingNotMatch, "bit padding: unexpected byte in padding")
		}
	}
	return nil, New(UnpaddingNotMatch, "bit padding: no 0x80 marker found")
}
