package resilience

// Stats aggregates the outcomes of every trial run against one labeled set.
// Counts are accumulated during the run; the Pct* methods derive percentages
// on demand.
//
// Trials that picked up zero errors are counted in NNoErrors only. They never
// enter the event log and never contribute to the four outcome tallies: an
// unmutated marker trivially matches its own set, so mixing it into the
// outcome percentages would inflate apparent tolerance.
type Stats struct {
	// Label of the set the trials were drawn from.
	Label string `json:"label"`

	// NTested is the total number of trials, with and without errors.
	NTested int `json:"nTested"`

	// NWithErrors is the number of trials whose marker picked up >= 1 error.
	NWithErrors int `json:"nWithErrors"`

	// NNoErrors is the number of trials that came through unmutated.
	NNoErrors int `json:"nNoErrors"`

	// outcome counts, within the NWithErrors subpopulation only
	NErrorTolerant int `json:"nErrorTolerant"`
	NNovel         int `json:"nNovel"`
	NWrongSet      int `json:"nWrongSet"`
	NAmbiguous     int `json:"nAmbiguous"`

	// TotalErrors is the sum of per-trial error counts across all trials.
	TotalErrors int `json:"totalErrors"`

	// ErrorCounts is the distribution of per-trial error counts, including
	// the zero bucket.
	ErrorCounts map[int]int `json:"errorCounts"`
}

func newStats(label string) *Stats {
	return &Stats{Label: label, ErrorCounts: make(map[int]int)}
}

// record accounts for one trial's realized error count.
func (s *Stats) record(errs int) {
	s.NTested++
	s.TotalErrors += errs
	s.ErrorCounts[errs]++
	if errs == 0 {
		s.NNoErrors++
	} else {
		s.NWithErrors++
	}
}

// count accounts for the classification of one error-affected trial.
func (s *Stats) count(o Outcome) {
	switch o {
	case ErrorTolerant:
		s.NErrorTolerant++
	case Novel:
		s.NNovel++
	case WrongSet:
		s.NWrongSet++
	case Ambiguous:
		s.NAmbiguous++
	}
}

// merge folds a worker's partial counts into s.
func (s *Stats) merge(other *Stats) {
	s.NTested += other.NTested
	s.NWithErrors += other.NWithErrors
	s.NNoErrors += other.NNoErrors
	s.NErrorTolerant += other.NErrorTolerant
	s.NNovel += other.NNovel
	s.NWrongSet += other.NWrongSet
	s.NAmbiguous += other.NAmbiguous
	s.TotalErrors += other.TotalErrors
	for errs, n := range other.ErrorCounts {
		s.ErrorCounts[errs] += n
	}
}

// PctWithErrors is the share of all trials that picked up >= 1 error.
// Its complement is the share of markers that survive sequencing untouched.
func (s *Stats) PctWithErrors() float64 {
	if s.NTested == 0 {
		return 0
	}
	return float64(s.NWithErrors) / float64(s.NTested) * 100
}

// MeanErrorsPerTrial averages realized error counts across all trials,
// zero-error trials included.
func (s *Stats) MeanErrorsPerTrial() float64 {
	if s.NTested == 0 {
		return 0
	}
	return float64(s.TotalErrors) / float64(s.NTested)
}

// pctOfErrored converts an outcome count into a percentage of the
// error-affected subpopulation. The four outcome percentages sum to 100
// whenever NWithErrors > 0.
func (s *Stats) pctOfErrored(n int) float64 {
	if s.NWithErrors == 0 {
		return 0
	}
	return float64(n) / float64(s.NWithErrors) * 100
}

// PctErrorTolerant is the share of error-affected trials that still matched
// only their origin set.
func (s *Stats) PctErrorTolerant() float64 { return s.pctOfErrored(s.NErrorTolerant) }

// PctNovel is the share of error-affected trials that matched no set.
func (s *Stats) PctNovel() float64 { return s.pctOfErrored(s.NNovel) }

// PctWrongSet is the share of error-affected trials that matched exactly one
// non-origin set.
func (s *Stats) PctWrongSet() float64 { return s.pctOfErrored(s.NWrongSet) }

// PctAmbiguous is the share of error-affected trials that matched two or more
// sets.
func (s *Stats) PctAmbiguous() float64 { return s.pctOfErrored(s.NAmbiguous) }

// FalsePositiveRate is the absolute false-positive rate over all trials:
// the probability that a sequenced marker both picks up an error and ends up
// attributed to the wrong set.
func (s *Stats) FalsePositiveRate() float64 {
	return s.PctWithErrors() / 100 * s.PctWrongSet() / 100 * 100
}

// Retention is the share of all trials that remain correctly classifiable:
// the error-free markers plus the error-tolerant fraction of the rest.
func (s *Stats) Retention() float64 {
	return (100 - s.PctWithErrors()) + s.PctWithErrors()*s.PctErrorTolerant()/100
}
