package mode

import (
	"bytes"
	"sync"
	"testing"

	"github.com/coldforge/gocrypto"
	"github.com/coldforge/gocrypto/block/aes"
)

// TestParallelIndependentInstances exercises the one supported concurrency
// pattern for this package: each goroutine builds its own cipher and
// CBC instance from a shared key and drives it to completion without ever
// touching another goroutine's *CBC. Grounded on absfs-encryptfs/parallel.go's
// worker-pool shape, adapted from chunk-level file parallelism to
// independent-instance parallelism, since a single *CBC (or any other mode
// here) is not safe for concurrent use by multiple goroutines.
func TestParallelIndependentInstances(t *testing.T) {
	key := nistKey(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	plains := make([][]byte, workers)
	cts := make([][]byte, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			c, err := aes.NewCipher(key)
			if err != nil {
				errs[idx] = err
				return
			}
			m, err := NewCBC(c, gocrypto.BitPadding{}, fixedIV{nistIV(t)})
			if err != nil {
				errs[idx] = err
				return
			}

			plain := append([]byte(nil), nistPlain(t)...)
			plain = append(plain, byte(idx))
			plains[idx] = plain

			ct, err := m.Encrypt(nil, plain)
			if err != nil {
				errs[idx] = err
				return
			}
			cts[idx] = ct

			pt, err := m.Decrypt(nil, ct)
			if err != nil {
				errs[idx] = err
				return
			}
			if !bytes.Equal(pt, plain) {
				t.Errorf("worker %d: round trip mismatch", idx)
			}
		}(w)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}
	for i := 0; i < workers; i++ {
		for j := i + 1; j < workers; j++ {
			if bytes.Equal(cts[i], cts[j]) {
				t.Errorf("workers %d and %d produced identical ciphertext for distinct plaintext", i, j)
			}
		}
	}
}
