package resilience

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

func Test_Mutate_rateZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, seq := range []string{"A", "ACGT", strings.Repeat("ACGT", 10)} {
		mutated, errs, err := Mutate(seq, 0, rng)
		require.NoError(t, err)
		assert.Equal(t, seq, mutated, "rate 0 must return the sequence unchanged")
		assert.Equal(t, 0, errs, "rate 0 must report zero errors")
	}
}

func Test_Mutate_rateOne(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seq := "AAAACCCCGGGGTTTT"

	for trial := 0; trial < 50; trial++ {
		mutated, errs, err := Mutate(seq, 1, rng)
		require.NoError(t, err)
		assert.Equal(t, len(seq), errs, "rate 1 must mutate every base")
		assert.Len(t, mutated, len(seq))
		for i := 0; i < len(seq); i++ {
			assert.NotEqual(t, seq[i], mutated[i], "position %d kept its base", i)
		}
	}
}

func Test_Mutate_substitutionValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seq := strings.Repeat("ACGT", 8)

	for trial := 0; trial < 200; trial++ {
		mutated, errs, err := Mutate(seq, 0.5, rng)
		require.NoError(t, err)
		require.Len(t, mutated, len(seq), "length must be preserved")

		changed := 0
		for i := 0; i < len(seq); i++ {
			if mutated[i] == seq[i] {
				continue
			}
			changed++
			assert.Contains(t, string(marker.Bases), string(mutated[i]),
				"substituted base must stay in the ACGT alphabet")
		}
		assert.Equal(t, errs, changed, "error count must equal changed positions")
	}
}

func Test_Mutate_deterministic(t *testing.T) {
	seq := strings.Repeat("GATTACA", 3)

	a, aErrs, err := Mutate(seq, 0.3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, bErrs, err := Mutate(seq, 0.3, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical RNG seeds must give identical mutants")
	assert.Equal(t, aErrs, bErrs)
}

func Test_Mutate_invalidArguments(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	tests := []struct {
		name string
		seq  string
		rate float64
	}{
		{"negative rate", "ACGT", -0.1},
		{"rate above one", "ACGT", 1.1},
		{"empty sequence", "", 0.5},
		{"non-ACGT base", "ACNT", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Mutate(tt.seq, tt.rate, rng)
			assert.ErrorIs(t, err, marker.ErrInvalidArgument)
		})
	}
}

func Test_checkSequence(t *testing.T) {
	assert.NoError(t, checkSequence("ACGTACGT"))
	assert.ErrorIs(t, checkSequence(""), marker.ErrInvalidArgument)
	assert.ErrorIs(t, checkSequence("ACGU"), marker.ErrInvalidArgument)
	assert.ErrorIs(t, checkSequence("acgt"), marker.ErrInvalidArgument)
}
