// Package sha3 implements the Keccak-p[1600,24] permutation and the SHA-3
// sponge construction built on it: the four fixed SHA3-n digests and the
// two SHAKE extendable-output functions (FIPS 202).
package sha3

import "math/bits"

// rotation offsets r[x][y] from the Keccak specification, indexed x+5*y.
var rotation = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

var roundConstants [24]uint64

// lfsrBit implements FIPS 202 Algorithm 5 (rc(t)): an 8-bit LFSR over
// GF(2) with feedback polynomial x^8+x^6+x^5+x^4+1, used to derive the
// round constants instead of transcribing 24 64-bit hex literals.
func lfsrBit(t int) byte {
	t = t % 255
	if t == 0 {
		return 1
	}
	reg := make([]byte, 8)
	reg[0] = 1
	for i := 1; i <= t; i++ {
		reg = append([]byte{0}, reg...)
		reg[0] ^= reg[8]
		reg[4] ^= reg[8]
		reg[5] ^= reg[8]
		reg[6] ^= reg[8]
		reg = reg[:8]
	}
	return reg[0]
}

func init() {
	for round := 0; round < 24; round++ {
		var rc uint64
		for j := 0; j <= 6; j++ {
			if lfsrBit(j+7*round) == 1 {
				rc |= 1 << uint((1<<uint(j))-1)
			}
		}
		roundConstants[round] = rc
	}
}

// keccakF1600 applies the 24-round Keccak-p permutation in place to a
// 25-lane (1600-bit) state, indexed a[x+5*y].
func keccakF1600(a *[25]uint64) {
	var b [25]uint64
	var c, d [5]uint64

	for round := 0; round < 24; round++ {
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				nx := y
				ny := (2*x + 3*y) % 5
				b[nx+5*ny] = bits.RotateLeft64(a[x+5*y], rotation[x+5*y])
			}
		}

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		a[0] ^= roundConstants[round]
	}
}
