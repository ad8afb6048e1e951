// Package resilience quantifies how well cenhapmer marker sets hold up under
// realistic sequencing errors. It samples markers from each labeled set, runs
// every sampled marker through an iid per-base substitution model, and checks
// whether the mutated marker still maps uniquely back to its origin set when
// looked up across all sets in the run.
package resilience

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// stderr is for progress logging (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// Params configures one resilience run.
type Params struct {
	// Labels of the sets to analyze. Empty means every label in the store.
	Labels []string

	// SampleSize is the number of markers drawn per set. Sets smaller than
	// this are used in full.
	SampleSize int

	// ErrorRate is the iid per-base substitution probability, in [0,1].
	// 0.01 approximates ONT-like sequencing.
	ErrorRate float64

	// Seed makes the run reproducible: the same seed always draws the same
	// samples and the same mutations.
	Seed int64

	// Workers is the number of goroutines per set during the trial phase.
	// Values < 1 mean one per CPU.
	Workers int
}

func (p Params) validate() error {
	if p.SampleSize <= 0 {
		return fmt.Errorf("%w: sample size %d, must be positive", marker.ErrInvalidArgument, p.SampleSize)
	}
	if p.ErrorRate < 0 || p.ErrorRate > 1 {
		return fmt.Errorf("%w: error rate %v outside [0,1]", marker.ErrInvalidArgument, p.ErrorRate)
	}
	return nil
}

// Event records one trial whose marker picked up at least one error.
// Zero-error trials are deliberately absent from the event log.
type Event struct {
	// Label of the set the original marker was sampled from.
	Label string `json:"label"`

	// Original marker sequence as sampled.
	Original string `json:"original"`

	// Mutated sequence after the error model ran.
	Mutated string `json:"mutated"`

	// Errors is the number of bases actually changed.
	Errors int `json:"errors"`

	// Outcome of classifying the mutated sequence against all sets.
	Outcome Outcome `json:"outcome"`

	// Matches lists every label whose set contains the mutated sequence.
	Matches []string `json:"matches"`
}

// Result is the full product of one run: per-label statistics plus the event
// log, in sample order per label.
type Result struct {
	Stats  map[string]*Stats
	Events []Event
}

// Simulator runs the Monte-Carlo error-resilience analysis against a marker
// store. The store is only read during the load phase; the trial phase works
// entirely on in-memory sets.
type Simulator struct {
	store marker.Store
}

// New returns a Simulator reading labeled marker sets from store.
func New(store marker.Store) *Simulator {
	return &Simulator{store: store}
}

// Load draws each label's sample and builds each label's complete membership
// set. Every set must load before any trial runs: classification needs
// visibility into all sets, so any failure here aborts the whole run rather
// than degrading to a partial label universe.
func (s *Simulator) Load(labels []string, sampleSize int, seed int64) (map[string][]string, map[string]marker.Set, error) {
	samples := make(map[string][]string, len(labels))
	sets := make(map[string]marker.Set, len(labels))

	for _, label := range labels {
		seqs, err := s.store.ListSequences(label)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list markers for %s: %w", label, err)
		}

		sample, err := marker.SampleFrom(seqs, sampleSize, marker.SubSeed(seed, label))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to sample markers for %s: %w", label, err)
		}
		for _, seq := range sample {
			if err := checkSequence(seq); err != nil {
				return nil, nil, fmt.Errorf("bad marker in %s: %w", label, err)
			}
		}

		sets[label] = marker.NewSet(seqs)
		samples[label] = sample
		stderr.Printf("loaded %s: %d markers, sampled %d", label, sets[label].Len(), len(sample))
	}

	return samples, sets, nil
}

// Run orchestrates a full analysis: load every set, then for each sampled
// marker mutate it and, if it picked up errors, classify it against all sets.
func (s *Simulator) Run(p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	labels := p.Labels
	if len(labels) == 0 {
		var err error
		if labels, err = s.store.Labels(); err != nil {
			return nil, fmt.Errorf("failed to list store labels: %w", err)
		}
	} else {
		labels = append([]string(nil), labels...)
		sort.Strings(labels)
	}

	samples, sets, err := s.Load(labels, p.SampleSize, p.Seed)
	if err != nil {
		return nil, err
	}

	// every membership set is now in place; the trial phase below only
	// reads them
	res := &Result{Stats: make(map[string]*Stats, len(labels))}
	for _, label := range labels {
		st, events := simulateSet(label, samples[label], sets, p)
		res.Stats[label] = st
		res.Events = append(res.Events, events...)

		stderr.Printf(
			"%s: %d/%d with errors (%.2f%%), %.2f%% error-tolerant, %.3f mean errors",
			label, st.NWithErrors, st.NTested, st.PctWithErrors(),
			st.PctErrorTolerant(), st.MeanErrorsPerTrial(),
		)
	}

	return res, nil
}

// simulateSet runs all of one label's trials, split into contiguous chunks
// across workers. Each trial seeds its own RNG from (label, trial index), so
// the outcome of a trial does not depend on which worker ran it or when.
func simulateSet(label string, sample []string, sets map[string]marker.Set, p Params) (*Stats, []Event) {
	if len(sample) == 0 {
		return newStats(label), nil
	}

	workers := p.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(sample) {
		workers = len(sample)
	}

	base := marker.SubSeed(p.Seed, label)
	partStats := make([]*Stats, workers)
	partEvents := make([][]Event, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * len(sample) / workers
		hi := (w + 1) * len(sample) / workers

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()

			st := newStats(label)
			var events []Event
			for i := lo; i < hi; i++ {
				rng := rand.New(rand.NewSource(trialSeed(base, i)))

				mutated, errs, err := Mutate(sample[i], p.ErrorRate, rng)
				if err != nil {
					// inputs were validated during load; a failure here is a bug
					panic(err)
				}

				st.record(errs)
				if errs == 0 {
					continue
				}

				outcome, matches := Classify(mutated, label, sets)
				st.count(outcome)
				events = append(events, Event{
					Label:    label,
					Original: sample[i],
					Mutated:  mutated,
					Errors:   errs,
					Outcome:  outcome,
					Matches:  matches,
				})
			}

			partStats[w] = st
			partEvents[w] = events
		}(w, lo, hi)
	}
	wg.Wait()

	// merging in chunk order keeps the event log in sample order
	st := newStats(label)
	var events []Event
	for w := range partStats {
		st.merge(partStats[w])
		events = append(events, partEvents[w]...)
	}
	return st, events
}

// trialSeed mixes a label's base seed with the trial index (splitmix64
// finalizer). Plain base+index would hand math/rand correlated sources for
// neighboring trials.
func trialSeed(base int64, trial int) int64 {
	z := uint64(base) + uint64(trial)*0x9E3779B97F4A7C15
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
