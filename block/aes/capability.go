package aes

import "golang.org/x/sys/cpu"

// HasHWAccel reports whether this build was compiled with the AES
// instruction-set capability detected at build time (golang.org/x/sys/cpu,
// probed once at init — never re-probed on the encrypt/decrypt hot path,
// per the build-time feature dispatch policy in spec.md §9).
var HasHWAccel = cpu.X86.HasAES || cpu.ARM64.HasAES

// keyAssistSchedule re-derives the forward round-key words using the
// "key-assist" recurrence an AES-NI code path would use (AESKEYGENASSIST
// performs SubWord+RotWord on the high word of its operand, one round key
// at a time) instead of the portable path's table-driven expandKey. It
// must produce byte-identical round keys to expandKey for every key size;
// TestHWScheduleMatchesPortable in aes_test.go is the proof referenced by
// spec.md §9's open question about bit-compatibility between the two
// implementations.
//
// Real AES-NI requires hand-written assembly this module does not ship
// (no assembler is run while building this repo). NewCipher does not
// consult HasHWAccel and always uses expandKey; keyAssistSchedule is
// called only by TestHWScheduleMatchesPortable. See DESIGN.md.
func keyAssistSchedule(key []byte, nk, nr int) []uint32 {
	total := 4 * (nr + 1)
	w := make([]uint32, total)
	for i := 0; i < nk; i++ {
		w[i] = uint32(key[4*i])<<24 | uint32(key[4*i+1])<<16 | uint32(key[4*i+2])<<8 | uint32(key[4*i+3])
	}

	round := 1
	for i := nk; i < total; i += nk {
		assisted := keygenAssist(w[i-1], rcon[round])
		round++

		w[i] = w[i-nk] ^ assisted
		end := i + nk
		if end > total {
			end = total
		}
		for j := i + 1; j < end; j++ {
			temp := w[j-1]
			if nk > 6 && j%nk == 4 {
				temp = subWord(temp)
			}
			w[j] = w[j-nk] ^ temp
		}
	}
	return w
}

// keygenAssist mirrors AESKEYGENASSIST xmm, xmm, rcon for the 32-bit word
// that feeds the next round key: rotate, sub-bytes, XOR in the round
// constant in the top byte.
func keygenAssist(w uint32, rc byte) uint32 {
	rotated := w<<8 | w>>24
	return subWord(rotated) ^ uint32(rc)<<24
}
