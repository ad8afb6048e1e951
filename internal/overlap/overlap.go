// Package overlap measures crosstalk between labeled marker sets before any
// sequencing error is simulated: markers that are verbatim members of more
// than one set make reads ambiguous even on a perfect sequencing run.
package overlap

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// Pair holds the shared-marker statistics of one unordered label pair.
type Pair struct {
	// A and B are the two labels, with A < B.
	A string
	B string

	// SizeA and SizeB are the set sizes.
	SizeA int
	SizeB int

	// Shared is the number of markers present verbatim in both sets.
	Shared int
}

// PctOfA is the shared count as a percentage of set A.
func (p Pair) PctOfA() float64 {
	if p.SizeA == 0 {
		return 0
	}
	return float64(p.Shared) / float64(p.SizeA) * 100
}

// PctOfB is the shared count as a percentage of set B.
func (p Pair) PctOfB() float64 {
	if p.SizeB == 0 {
		return 0
	}
	return float64(p.Shared) / float64(p.SizeB) * 100
}

// Jaccard is the shared count over the union size.
func (p Pair) Jaccard() float64 {
	union := p.SizeA + p.SizeB - p.Shared
	if union == 0 {
		return 0
	}
	return float64(p.Shared) / float64(union)
}

// Pairwise intersects every pair of labeled sets. Pairs come back sorted by
// (A, B). Each intersection walks the smaller set and probes the larger one.
func Pairwise(sets map[string]marker.Set) []Pair {
	labels := make([]string, 0, len(sets))
	for label := range sets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var pairs []Pair
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			a, b := sets[labels[i]], sets[labels[j]]

			small, large := a, b
			if large.Len() < small.Len() {
				small, large = large, small
			}
			shared := 0
			for seq := range small {
				if large.Has(seq) {
					shared++
				}
			}

			pairs = append(pairs, Pair{
				A:      labels[i],
				B:      labels[j],
				SizeA:  a.Len(),
				SizeB:  b.Len(),
				Shared: shared,
			})
		}
	}
	return pairs
}

// WriteCSV writes one row per label pair to the file at path.
func WriteCSV(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create crosstalk CSV at %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"label_a", "label_b", "size_a", "size_b", "shared", "pct_of_a", "pct_of_b", "jaccard"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range pairs {
		row := []string{
			p.A,
			p.B,
			strconv.Itoa(p.SizeA),
			strconv.Itoa(p.SizeB),
			strconv.Itoa(p.Shared),
			strconv.FormatFloat(p.PctOfA(), 'f', 6, 64),
			strconv.FormatFloat(p.PctOfB(), 'f', 6, 64),
			strconv.FormatFloat(p.Jaccard(), 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
