// Package fastadb serves labeled marker sets from multi-FASTA files, one
// "<label>.fa" per set. The whole directory is indexed into memory up front,
// trading the kmc_tools subprocess round-trips of the KMC store for RAM.
package fastadb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// Store is an in-memory marker.Store built from a directory of FASTA files.
type Store struct {
	sets marker.MapStore
}

// New indexes every *.fa and *.fasta file in dir. The file base name, minus
// its extension, is the set's label.
func New(dir string) (*Store, error) {
	var paths []string
	for _, pattern := range []string{"*.fa", "*.fasta"} {
		matched, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s for FASTA files: %v", dir, err)
		}
		paths = append(paths, matched...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no FASTA marker files in %s", marker.ErrNotFound, dir)
	}

	sets := make(marker.MapStore, len(paths))
	for _, path := range paths {
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		seqs, err := readFasta(path)
		if err != nil {
			return nil, err
		}
		sets[label] = seqs
	}
	return &Store{sets: sets}, nil
}

// readFasta reads every record's sequence out of a FASTA file, uppercased so
// soft-masked references line up with KMC's uppercase dumps.
func readFasta(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", marker.ErrStoreUnavailable, path, err)
	}
	defer f.Close()

	var seqs []string
	t := linear.NewSeq("", nil, alphabet.DNA)
	sc := seqio.NewScanner(fasta.NewReader(f, t))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		seqs = append(seqs, strings.ToUpper(s.Seq.String()))
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%w: failed reading %s: %v", marker.ErrStoreUnavailable, path, err)
	}
	return seqs, nil
}

// Labels returns the label of every indexed set, sorted.
func (s *Store) Labels() ([]string, error) {
	return s.sets.Labels()
}

// ListSequences returns every member of the named set.
func (s *Store) ListSequences(label string) ([]string, error) {
	return s.sets.ListSequences(label)
}

// Count returns the number of distinct members of the named set.
func (s *Store) Count(label string) (int, error) {
	return s.sets.Count(label)
}
