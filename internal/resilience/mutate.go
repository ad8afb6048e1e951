package resilience

import (
	"fmt"
	"math/rand"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// substitutions[b] lists the three bases a sequencing error can turn b into.
// A substituted position never keeps its original base.
var substitutions = map[byte][]byte{
	'A': {'C', 'G', 'T'},
	'C': {'A', 'G', 'T'},
	'G': {'A', 'C', 'T'},
	'T': {'A', 'C', 'G'},
}

// checkSequence verifies a marker is non-empty ACGT. Samples are checked
// once during load so Mutate cannot fail inside a worker.
func checkSequence(seq string) error {
	if seq == "" {
		return fmt.Errorf("%w: empty sequence", marker.ErrInvalidArgument)
	}
	for i := 0; i < len(seq); i++ {
		if _, ok := substitutions[seq[i]]; !ok {
			return fmt.Errorf("%w: non-ACGT base %q at position %d", marker.ErrInvalidArgument, seq[i], i)
		}
	}
	return nil
}

// Mutate runs one marker through the per-base sequencing error model: every
// position independently picks up a substitution with probability rate, and a
// substituted base becomes one of the three other bases, chosen uniformly.
// The model is substitution-only (no indels), so length is preserved.
//
// The realized error count is a Binomial(len(seq), rate) draw and is returned
// alongside the mutated sequence. Zero is a common and valid result: with
// probability (1-rate)^len(seq) the sequence comes back unchanged.
func Mutate(seq string, rate float64, rng *rand.Rand) (string, int, error) {
	if rate < 0 || rate > 1 {
		return "", 0, fmt.Errorf("%w: error rate %v outside [0,1]", marker.ErrInvalidArgument, rate)
	}
	if seq == "" {
		return "", 0, fmt.Errorf("%w: empty sequence", marker.ErrInvalidArgument)
	}

	// copy lazily: most trials at realistic rates have no errors at all
	var mutated []byte
	errs := 0
	for i := 0; i < len(seq); i++ {
		if rng.Float64() >= rate {
			continue
		}

		alts, ok := substitutions[seq[i]]
		if !ok {
			return "", 0, fmt.Errorf("%w: non-ACGT base %q at position %d", marker.ErrInvalidArgument, seq[i], i)
		}
		if mutated == nil {
			mutated = []byte(seq)
		}
		mutated[i] = alts[rng.Intn(len(alts))]
		errs++
	}

	if mutated == nil {
		return seq, 0, nil
	}
	return string(mutated), errs, nil
}
