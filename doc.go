// Package gocrypto defines the contracts shared by every primitive in this
// module: a block cipher, a digest (with an extendable-output variant), and
// the padding/IV/counter abstractions the mode engine in package mode is
// built from.
//
// Concrete algorithms live in subpackages (block/aes, digest/sha3, rsa, dsa,
// ecdsa, ...); this package has no algorithm of its own so that modes, MACs
// and signature schemes can depend on the contracts without depending on any
// particular cipher or hash.
package gocrypto
