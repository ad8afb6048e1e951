package resilience

import (
	"sort"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// Outcome buckets where a mutated marker lands when looked up across every
// labeled set in the run.
type Outcome int

const (
	// ErrorTolerant: the mutated marker still matches only its origin set.
	// The sequencing error did not change how a read would be classified.
	ErrorTolerant Outcome = iota

	// Novel: the mutated marker matches no set at all. The read is lost to
	// classification (information loss, not misclassification).
	Novel

	// WrongSet: the mutated marker matches exactly one set and it is not the
	// origin set. This is the cross-contamination / false-positive case.
	WrongSet

	// Ambiguous: the mutated marker is a legitimate member of two or more
	// sets at once. Crosstalk, tracked separately from WrongSet.
	Ambiguous
)

// String returns the outcome tag used in event logs and CSVs.
func (o Outcome) String() string {
	switch o {
	case ErrorTolerant:
		return "error_tolerant"
	case Novel:
		return "novel"
	case WrongSet:
		return "wrong_set"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Classify looks mutated up in every labeled set and buckets the result by
// how many sets claim it. It also returns the matched labels, sorted, for the
// event log. Classification is a pure function of set membership.
func Classify(mutated, origin string, sets map[string]marker.Set) (Outcome, []string) {
	var matches []string
	for label, set := range sets {
		if set.Has(mutated) {
			matches = append(matches, label)
		}
	}
	sort.Strings(matches)

	switch {
	case len(matches) == 0:
		return Novel, nil
	case len(matches) > 1:
		return Ambiguous, matches
	case matches[0] == origin:
		return ErrorTolerant, matches
	default:
		return WrongSet, matches
	}
}
