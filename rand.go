package gocrypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// RandReader is an io.Reader of uniformly-distributed bytes, defaulting to
// crypto/rand.Reader; it is a package variable so tests can substitute a
// deterministic source. The functions of this module take their random
// source as a parameter and do not read RandReader themselves.
var RandReader io.Reader = rand.Reader

// RandUint32 draws one uniformly-distributed 32-bit word from r, the
// "iterator of uniform 32-bit words" collaborator named in spec.md §6.
func RandUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, Wrap(RandError, err, "reading random word")
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// RandBytes fills buf from r, wrapping any failure as RandError.
func RandBytes(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return Wrap(RandError, err, "reading %d random bytes", len(buf))
	}
	return nil
}
