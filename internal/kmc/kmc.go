// Package kmc reads cenhapmer marker databases produced by the KMC k-mer
// counter. Databases live on disk as <name>.kmc_pre/<name>.kmc_suf pairs and
// are queried through the kmc_tools binary: "transform ... dump" for full
// member listings and "info" for totals.
package kmc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DB is one KMC marker database on disk plus the metadata parsed from its
// file name, by convention "unique_<genotype>_<region>_<chromosome>_k<K>".
type DB struct {
	// Path is the database path without the .kmc_pre/.kmc_suf extension.
	Path string

	// Genotype of the marker set, e.g. "Col-0".
	Genotype string

	// Region type the markers were drawn from, e.g. "ARMS" or "CEN".
	Region string

	// Chromosome, e.g. "Chr1".
	Chromosome string

	// K is the k-mer size the database was counted at.
	K int
}

// Label is the opaque identifier the analyses use for this database.
func (d DB) Label() string {
	return fmt.Sprintf("%s_%s_%s", d.Genotype, d.Region, d.Chromosome)
}

var nameRegex = regexp.MustCompile(`^unique_([^_]+)_([^_]+)_(Chr\d+)_k(\d+)$`)

// parseName parses a database base name into its metadata. Names that don't
// follow the cenhapmer convention are skipped by discovery.
func parseName(base string) (DB, bool) {
	m := nameRegex.FindStringSubmatch(base)
	if m == nil {
		return DB{}, false
	}
	k, err := strconv.Atoi(m[4])
	if err != nil {
		return DB{}, false
	}
	return DB{
		Genotype:   m[1],
		Region:     m[2],
		Chromosome: m[3],
		K:          k,
	}, true
}

// Find discovers every KMC marker database in dir: each *.kmc_pre with a
// matching *.kmc_suf and a parseable name. Results are sorted by genotype,
// region and chromosome.
func Find(dir string) ([]DB, error) {
	pres, err := filepath.Glob(filepath.Join(dir, "*.kmc_pre"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for KMC databases: %v", dir, err)
	}

	var dbs []DB
	for _, pre := range pres {
		stem := strings.TrimSuffix(pre, ".kmc_pre")
		if _, err := os.Stat(stem + ".kmc_suf"); err != nil {
			continue // half a database
		}

		db, ok := parseName(filepath.Base(stem))
		if !ok {
			continue
		}
		db.Path = stem
		dbs = append(dbs, db)
	}

	sort.Slice(dbs, func(i, j int) bool {
		if dbs[i].Genotype != dbs[j].Genotype {
			return dbs[i].Genotype < dbs[j].Genotype
		}
		if dbs[i].Region != dbs[j].Region {
			return dbs[i].Region < dbs[j].Region
		}
		return dbs[i].Chromosome < dbs[j].Chromosome
	})
	return dbs, nil
}
