package kmc

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// Store exposes a set of KMC databases through the marker.Store interface.
// Every query shells out to kmc_tools; the store itself keeps no sequences
// in memory.
type Store struct {
	// Tools is the path to the kmc_tools executable.
	Tools string

	// TmpDir receives the dump files kmc_tools writes; "" means the OS
	// default temp dir.
	TmpDir string

	dbs map[string]DB
}

// NewStore indexes dbs by label. tools is the kmc_tools executable to query
// them with.
func NewStore(dbs []DB, tools string) *Store {
	byLabel := make(map[string]DB, len(dbs))
	for _, db := range dbs {
		byLabel[db.Label()] = db
	}
	return &Store{Tools: tools, dbs: byLabel}
}

// Labels returns the label of every indexed database, sorted.
func (s *Store) Labels() ([]string, error) {
	labels := make([]string, 0, len(s.dbs))
	for label := range s.dbs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

func (s *Store) db(label string) (DB, error) {
	db, ok := s.dbs[label]
	if !ok {
		return DB{}, fmt.Errorf("%w: %q", marker.ErrNotFound, label)
	}
	return db, nil
}

// ListSequences dumps the named database to a temp file via
// "kmc_tools transform <db> dump <tmp>" and parses every member out of it.
func (s *Store) ListSequences(label string) ([]string, error) {
	db, err := s.db(label)
	if err != nil {
		return nil, err
	}

	tmp, err := ioutil.TempFile(s.TmpDir, "kmc_dump_")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create dump file: %v", marker.ErrStoreUnavailable, err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	cmd := exec.Command(s.Tools, "transform", db.Path, "dump", tmp.Name())
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: kmc_tools dump of %s failed: %v: %s", marker.ErrStoreUnavailable, label, err, out)
	}

	f, err := os.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open dump of %s: %v", marker.ErrStoreUnavailable, label, err)
	}
	defer f.Close()

	seqs, err := parseDump(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse dump of %s: %v", marker.ErrStoreUnavailable, label, err)
	}
	return seqs, nil
}

// parseDump reads a kmc_tools dump listing: one "SEQUENCE\tcount" line per
// distinct k-mer. Counts are ignored, the databases hold unique markers.
func parseDump(r io.Reader) ([]string, error) {
	var seqs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		seqs = append(seqs, line)
	}
	return seqs, sc.Err()
}

// Count queries the named database's total distinct k-mer count via
// "kmc_tools info <db>".
func (s *Store) Count(label string) (int, error) {
	db, err := s.db(label)
	if err != nil {
		return 0, err
	}

	out, err := exec.Command(s.Tools, "info", db.Path).CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("%w: kmc_tools info of %s failed: %v: %s", marker.ErrStoreUnavailable, label, err, out)
	}

	n, err := parseInfo(out)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse kmc_tools info of %s: %v", marker.ErrStoreUnavailable, label, err)
	}
	return n, nil
}

// totalRegex matches the count line of kmc_tools info output, ex:
//	total k-mers            :      1816547
var totalRegex = regexp.MustCompile(`(?i)total k-mers\s*:\s*([0-9]+)`)

func parseInfo(out []byte) (int, error) {
	m := totalRegex.FindSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("no total k-mers line in %q", out)
	}
	return strconv.Atoi(string(m[1]))
}
