package marker

import (
	"fmt"
	"sort"
)

// MapStore is an in-memory Store backed by a plain map from label to member
// sequences. It backs the simulation tests and small ad hoc analyses where
// the marker sets are already in memory.
type MapStore map[string][]string

// Labels returns the store's labels, sorted.
func (m MapStore) Labels() ([]string, error) {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// ListSequences returns the members of the named set.
func (m MapStore) ListSequences(label string) ([]string, error) {
	seqs, ok := m[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	return seqs, nil
}

// Count returns the number of distinct members of the named set.
func (m MapStore) Count(label string) (int, error) {
	seqs, ok := m[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	return NewSet(seqs).Len(), nil
}
