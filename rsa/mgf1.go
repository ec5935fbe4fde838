package rsa

import "github.com/coldforge/gocrypto"

// mgf1XOR XORs MGF1(seed, len(out)), as defined in PKCS#1 v2.2 Appendix B.2,
// into out. hash is reset before use and left in an undefined state
// afterwards.
func mgf1XOR(out []byte, hash gocrypto.Digest, seed []byte) {
	var counter [4]byte
	digest := make([]byte, hash.Size()/8)

	done := 0
	for done < len(out) {
		hash.Reset()
		hash.Write(seed)
		hash.Write(counter[:])
		digest = hash.Checksum(digest)

		for i := 0; i < len(digest) && done < len(out); i++ {
			out[done] ^= digest[i]
			done++
		}
		incCounter(&counter)
	}
}

func incCounter(c *[4]byte) {
	if c[3]++; c[3] != 0 {
		return
	}
	if c[2]++; c[2] != 0 {
		return
	}
	if c[1]++; c[1] != 0 {
		return
	}
	c[0]++
}
