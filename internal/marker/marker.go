// Package marker holds the data model shared by the cenhapmer analyses:
// fixed-length nucleotide marker sequences grouped into labeled sets, the
// Store interface the analyses read those sets through, and deterministic
// sampling of set members.
//
// A label identifies one marker database. By convention it is a
// "genotype_region_chromosome" triple, but nothing in this package (or in the
// simulation built on it) parses labels; they are opaque identifiers here.
package marker

import "errors"

// Bases is the nucleotide alphabet markers are drawn from. Sequence identity
// is literal and orientation sensitive: no reverse-complement folding, no
// case folding.
var Bases = []byte{'A', 'C', 'G', 'T'}

var (
	// ErrNotFound is returned when a requested label has no set in the store.
	ErrNotFound = errors.New("labeled set not found")

	// ErrInvalidArgument is returned for malformed configuration: an error
	// rate outside [0,1], a non-positive sample size, an empty sequence.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// queried. The analyses do not retry; the whole run is aborted.
	ErrStoreUnavailable = errors.New("marker store unavailable")
)

// Store is a read-only source of labeled marker sets. Implementations:
// kmc.Store (KMC databases behind kmc_tools), fastadb.Store (multi-FASTA
// files) and MapStore (in-memory, used by tests).
type Store interface {
	// Labels returns the label of every set the store holds, sorted.
	Labels() ([]string, error)

	// ListSequences returns every member of the named labeled set.
	ListSequences(label string) ([]string, error)

	// Count returns the number of distinct sequences in the named set.
	Count(label string) (int, error)
}
