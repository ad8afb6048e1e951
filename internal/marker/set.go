package marker

// Set is the complete membership of one labeled marker set, keyed by sequence
// content for O(1) lookup. Holding every member in memory is the dominant
// memory cost of a run and is required: classification needs exact lookups
// against every set, not just the origin set.
type Set map[string]struct{}

// NewSet builds a Set from a sequence listing, dropping duplicates.
func NewSet(seqs []string) Set {
	s := make(Set, len(seqs))
	for _, seq := range seqs {
		s[seq] = struct{}{}
	}
	return s
}

// Has reports whether seq is a member of the set. The lookup is exact and
// case sensitive.
func (s Set) Has(seq string) bool {
	_, ok := s[seq]
	return ok
}

// Len returns the number of members in the set.
func (s Set) Len() int {
	return len(s)
}
