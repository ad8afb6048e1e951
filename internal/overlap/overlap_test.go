package overlap

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

func testSets() map[string]marker.Set {
	return map[string]marker.Set{
		"a_set": marker.NewSet([]string{"AAAA", "CCCC", "ACGT"}),
		"b_set": marker.NewSet([]string{"GGGG", "ACGT"}),
		"c_set": marker.NewSet([]string{"TTTT"}),
	}
}

func Test_Pairwise(t *testing.T) {
	pairs := Pairwise(testSets())

	if len(pairs) != 3 {
		t.Fatalf("Pairwise() returned %d pairs, want 3", len(pairs))
	}

	// pairs are sorted by (A, B)
	wantOrder := [][2]string{
		{"a_set", "b_set"},
		{"a_set", "c_set"},
		{"b_set", "c_set"},
	}
	for i, w := range wantOrder {
		if pairs[i].A != w[0] || pairs[i].B != w[1] {
			t.Errorf("pair %d = (%s, %s), want (%s, %s)", i, pairs[i].A, pairs[i].B, w[0], w[1])
		}
	}

	ab := pairs[0]
	if ab.Shared != 1 {
		t.Errorf("a/b Shared = %d, want 1 (ACGT)", ab.Shared)
	}
	if ab.SizeA != 3 || ab.SizeB != 2 {
		t.Errorf("a/b sizes = %d/%d, want 3/2", ab.SizeA, ab.SizeB)
	}
	if got := ab.PctOfB(); got != 50 {
		t.Errorf("a/b PctOfB() = %v, want 50", got)
	}
	// 1 shared over a union of 4
	if got := ab.Jaccard(); got != 0.25 {
		t.Errorf("a/b Jaccard() = %v, want 0.25", got)
	}

	for _, p := range pairs[1:] {
		if p.Shared != 0 {
			t.Errorf("pair %s/%s Shared = %d, want 0", p.A, p.B, p.Shared)
		}
		if p.Jaccard() != 0 {
			t.Errorf("pair %s/%s Jaccard = %v, want 0", p.A, p.B, p.Jaccard())
		}
	}
}

func Test_Pairwise_empty(t *testing.T) {
	if pairs := Pairwise(map[string]marker.Set{"solo": marker.NewSet([]string{"AAAA"})}); pairs != nil {
		t.Errorf("Pairwise() of a single set = %v, want none", pairs)
	}
}

func Test_WriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosstalk.csv")
	if err := WriteCSV(path, Pairwise(testSets())); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read back CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("CSV has %d rows, want header + 3 pairs", len(rows))
	}
	if rows[1][0] != "a_set" || rows[1][1] != "b_set" || rows[1][4] != "1" {
		t.Errorf("first pair row = %v", rows[1])
	}
}
