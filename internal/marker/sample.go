package marker

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
)

// SubSeed derives the sampling seed for one label from the run seed. Each
// label gets its own deterministic stream, so a label's sample is the same
// no matter how many other labels are analyzed or in what order.
func SubSeed(seed int64, label string) int64 {
	h := fnv.New32a()
	h.Write([]byte(label))
	return seed + int64(h.Sum32()%10000)
}

// SampleFrom draws min(n, len(seqs)) sequences uniformly at random without
// replacement, seeded by seed. The pool is sorted before drawing so the
// sample is stable regardless of the order the store enumerated members in.
// If the whole pool fits within n it is returned in full, unsampled.
func SampleFrom(seqs []string, n int, seed int64) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample size %d, must be positive", ErrInvalidArgument, n)
	}

	pool := make([]string, len(seqs))
	copy(pool, seqs)
	sort.Strings(pool)

	if len(pool) <= n {
		return pool, nil
	}

	// partial Fisher-Yates: only the first n positions need shuffling
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}
