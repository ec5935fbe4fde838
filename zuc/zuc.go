// Package zuc implements the ZUC stream cipher (GM/T 0001-2012), its
// confidentiality wrapper (128-EEA3-style keystream XOR) and integrity
// wrapper (128-EIA3-style bit-level MAC).
package zuc

import "github.com/coldforge/gocrypto"

const (
	lfsrMask  = 0x7fffffff
	KeySize   = 16
	IVSize    = 16
	blockBits = 32
)

// engine is the ZUC keystream generator: a 16-cell LFSR over GF(2^31-1)
// feeding a nonlinear function F through two 32-bit memory registers.
type engine struct {
	lfsr   [16]uint32
	r1, r2 uint32
}

// addm computes (a+b) mod (2^31-1).
func addm(a, b uint32) uint32 {
	c := a + b
	return (c & lfsrMask) + (c >> 31)
}

// mulPow2 computes (a * 2^k) mod (2^31-1); since 2^31 ≡ 1 (mod 2^31-1),
// this is a 31-bit cyclic left rotation.
func mulPow2(a uint32, k uint) uint32 {
	return ((a << k) | (a >> (31 - k))) & lfsrMask
}

func newEngine(key, iv []byte) (*engine, error) {
	if len(key) != KeySize {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "zuc: key must be 16 bytes")
	}
	if len(iv) != IVSize {
		return nil, gocrypto.New(gocrypto.InvalidParameter, "zuc: iv must be 16 bytes")
	}

	e := &engine{}
	for i := 0; i < 16; i++ {
		e.lfsr[i] = uint32(key[i])<<23 | uint32(d[i])<<8 | uint32(iv[i])
	}
	e.initialize()
	return e, nil
}

func (e *engine) lfsrShift(f uint32) {
	if f == 0 {
		f = lfsrMask
	}
	copy(e.lfsr[0:15], e.lfsr[1:16])
	e.lfsr[15] = f
}

func (e *engine) lfsrWithInitialMode(u uint32) {
	f := addm(mulPow2(e.lfsr[0], 8), e.lfsr[0])
	f = addm(f, mulPow2(e.lfsr[4], 20))
	f = addm(f, mulPow2(e.lfsr[10], 21))
	f = addm(f, mulPow2(e.lfsr[13], 17))
	f = addm(f, mulPow2(e.lfsr[15], 15))
	f = addm(f, u)
	e.lfsrShift(f)
}

func (e *engine) lfsrWithWorkMode() {
	f := addm(mulPow2(e.lfsr[0], 8), e.lfsr[0])
	f = addm(f, mulPow2(e.lfsr[4], 20))
	f = addm(f, mulPow2(e.lfsr[10], 21))
	f = addm(f, mulPow2(e.lfsr[13], 17))
	f = addm(f, mulPow2(e.lfsr[15], 15))
	e.lfsrShift(f)
}

func (e *engine) bitReconstruction() (x0, x1, x2, x3 uint32) {
	x0 = ((e.lfsr[15] & 0x7fff8000) << 1) | (e.lfsr[14] & 0xffff)
	x1 = ((e.lfsr[11] & 0xffff) << 16) | (e.lfsr[9] >> 15)
	x2 = ((e.lfsr[7] & 0xffff) << 16) | (e.lfsr[5] >> 15)
	x3 = ((e.lfsr[2] & 0xffff) << 16) | (e.lfsr[0] >> 15)
	return
}

func rotl32(x uint32, k uint) uint32 { return (x << k) | (x >> (32 - k)) }

func l1(x uint32) uint32 {
	return x ^ rotl32(x, 2) ^ rotl32(x, 10) ^ rotl32(x, 18) ^ rotl32(x, 24)
}

func l2(x uint32) uint32 {
	return x ^ rotl32(x, 8) ^ rotl32(x, 14) ^ rotl32(x, 22) ^ rotl32(x, 30)
}

func (e *engine) nonlinearF(x0, x1, x2 uint32) uint32 {
	w := (x0 ^ e.r1) + e.r2
	w1 := e.r1 + x1
	w2 := e.r2 ^ x2
	u := l1(w1<<16 | w2>>16)
	v := l2(w2<<16 | w1>>16)
	e.r1 = sbox(u)
	e.r2 = sbox(v)
	return w
}

// initialize runs the standard 32-round initialization mode followed by
// one work-mode step with the nonlinear function's output discarded,
// bringing the engine to the state from which the first real keystream
// word is produced.
func (e *engine) initialize() {
	for i := 0; i < 32; i++ {
		x0, x1, x2, _ := e.bitReconstruction()
		w := e.nonlinearF(x0, x1, x2)
		e.lfsrWithInitialMode(w >> 1)
	}
	x0, x1, x2, _ := e.bitReconstruction()
	e.nonlinearF(x0, x1, x2)
	e.lfsrWithWorkMode()
}

// next produces one 32-bit keystream word and advances the engine.
func (e *engine) next() uint32 {
	x0, x1, x2, x3 := e.bitReconstruction()
	z := e.nonlinearF(x0, x1, x2) ^ x3
	e.lfsrWithWorkMode()
	return z
}
