package resilience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// testSequences generates n distinct k-mers by writing consecutive integers
// in base 4 over the ACGT alphabet, offset apart so sets stay disjoint.
func testSequences(n, k, offset int) []string {
	seqs := make([]string, n)
	for i := 0; i < n; i++ {
		b := make([]byte, k)
		x := i + offset
		for j := k - 1; j >= 0; j-- {
			b[j] = marker.Bases[x%4]
			x /= 4
		}
		seqs[i] = string(b)
	}
	return seqs
}

func testStore() marker.MapStore {
	return marker.MapStore{
		"geno1_ARMS_Chr1": testSequences(100, 8, 0),
		"geno1_CEN_Chr1":  testSequences(100, 8, 5000),
	}
}

func Test_Run_deterministic(t *testing.T) {
	params := Params{SampleSize: 50, ErrorRate: 0.3, Seed: 11, Workers: 1}

	first, err := New(testStore()).Run(params)
	require.NoError(t, err)

	// same seed, different worker count: byte-identical results
	params.Workers = 4
	second, err := New(testStore()).Run(params)
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Events, second.Events)
}

func Test_Run_percentageClosure(t *testing.T) {
	res, err := New(testStore()).Run(Params{SampleSize: 100, ErrorRate: 0.5, Seed: 3, Workers: 2})
	require.NoError(t, err)

	for label, s := range res.Stats {
		require.Greater(t, s.NWithErrors, 0, "expected errors at rate 0.5 in %s", label)

		sum := s.PctErrorTolerant() + s.PctNovel() + s.PctWrongSet() + s.PctAmbiguous()
		assert.InDelta(t, 100, sum, 1e-6, "outcome percentages of %s must close", label)

		noErrors := float64(s.NNoErrors) / float64(s.NTested) * 100
		assert.InDelta(t, 100, s.PctWithErrors()+noErrors, 1e-6)
	}
}

// At rate 0 nothing mutates: the event log stays empty and no trial counts
// toward the error subpopulation.
func Test_Run_rateZero(t *testing.T) {
	res, err := New(testStore()).Run(Params{SampleSize: 100, ErrorRate: 0, Seed: 5, Workers: 3})
	require.NoError(t, err)

	assert.Empty(t, res.Events)
	for label, s := range res.Stats {
		assert.Equal(t, 100, s.NTested, label)
		assert.Equal(t, 0, s.NWithErrors, label)
		assert.Zero(t, s.PctWithErrors(), label)
		assert.Zero(t, s.MeanErrorsPerTrial(), label)
		assert.Zero(t, s.NWrongSet, label)
		assert.Zero(t, s.NAmbiguous, label)
	}
}

// At rate 1 every base of every marker mutates, so no mutant can equal its
// original and the only reachable outcomes are Novel and WrongSet.
func Test_Run_guaranteedMutation(t *testing.T) {
	store := marker.MapStore{
		"a_set": {"AAAA", "CCCC"},
		"b_set": {"GGGG"},
	}

	res, err := New(store).Run(Params{SampleSize: 10, ErrorRate: 1, Seed: 9, Workers: 1})
	require.NoError(t, err)

	require.Len(t, res.Events, 3)
	for _, e := range res.Events {
		assert.Equal(t, 4, e.Errors, "rate 1 must mutate all 4 bases")
		assert.NotEqual(t, e.Original, e.Mutated)

		// a mutant can still be error tolerant, but only by landing on
		// another member of its own set (AAAA -> CCCC)
		if e.Outcome == ErrorTolerant {
			assert.True(t, marker.NewSet(store[e.Label]).Has(e.Mutated))
		} else {
			assert.Contains(t, []Outcome{Novel, WrongSet}, e.Outcome)
		}
	}

	for label, s := range res.Stats {
		assert.InDelta(t, 100, s.PctWithErrors(), 1e-6, label)
		assert.InDelta(t, 4, s.MeanErrorsPerTrial(), 1e-6, label)
		assert.Zero(t, s.NAmbiguous, label)
	}
}

// With a single labeled set there is no other set to match, so wrong-set and
// ambiguous counts are structurally zero.
func Test_Run_singleSetUniverse(t *testing.T) {
	store := marker.MapStore{"only": testSequences(200, 6, 0)}

	res, err := New(store).Run(Params{SampleSize: 200, ErrorRate: 0.8, Seed: 17, Workers: 2})
	require.NoError(t, err)

	s := res.Stats["only"]
	require.NotNil(t, s)
	assert.Zero(t, s.NWrongSet)
	assert.Zero(t, s.NAmbiguous)
	assert.Equal(t, s.NWithErrors, s.NErrorTolerant+s.NNovel)
}

func Test_Run_sampleCap(t *testing.T) {
	res, err := New(testStore()).Run(Params{SampleSize: 10, ErrorRate: 0.1, Seed: 2, Workers: 1})
	require.NoError(t, err)

	for label, s := range res.Stats {
		assert.Equal(t, 10, s.NTested, "sample size must cap trials for %s", label)
	}
}

func Test_Run_failures(t *testing.T) {
	t.Run("missing label aborts the run", func(t *testing.T) {
		_, err := New(testStore()).Run(Params{
			Labels:     []string{"geno1_ARMS_Chr1", "no_such_set"},
			SampleSize: 10,
			ErrorRate:  0.1,
		})
		assert.ErrorIs(t, err, marker.ErrNotFound)
	})

	t.Run("non-positive sample size", func(t *testing.T) {
		_, err := New(testStore()).Run(Params{SampleSize: 0, ErrorRate: 0.1})
		assert.ErrorIs(t, err, marker.ErrInvalidArgument)
	})

	t.Run("error rate outside [0,1]", func(t *testing.T) {
		_, err := New(testStore()).Run(Params{SampleSize: 10, ErrorRate: 1.5})
		assert.ErrorIs(t, err, marker.ErrInvalidArgument)
	})

	t.Run("markers outside the alphabet are caught at load", func(t *testing.T) {
		store := marker.MapStore{"bad": {"ACGT", "ACNT"}}
		_, err := New(store).Run(Params{SampleSize: 10, ErrorRate: 0.1})
		assert.ErrorIs(t, err, marker.ErrInvalidArgument)
	})
}

func Test_Load_idempotent(t *testing.T) {
	sim := New(testStore())
	labels := []string{"geno1_ARMS_Chr1", "geno1_CEN_Chr1"}

	firstSamples, firstSets, err := sim.Load(labels, 30, 42)
	require.NoError(t, err)
	secondSamples, secondSets, err := sim.Load(labels, 30, 42)
	require.NoError(t, err)

	assert.Equal(t, firstSamples, secondSamples)
	assert.Equal(t, firstSets, secondSets)

	// sets smaller than the sample size come back in full
	fullSamples, _, err := sim.Load(labels, 100000, 42)
	require.NoError(t, err)
	for _, label := range labels {
		assert.Len(t, fullSamples[label], 100)
	}
}
