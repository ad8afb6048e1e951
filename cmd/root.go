// Package cmd is for command line interactions with the cenhapmer analyses
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacgonisa/kmer-marker-error-resilience/config"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/fastadb"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/kmc"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "cenhapmer",
	Short: `Evaluate cenhapmer marker sets under realistic sequencing errors.
Marker databases are labeled by genotype, region type and chromosome`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// openStore builds the marker store selected by the --dbs/--fasta flags.
// The second return value maps each label to its region type for grouped
// summaries; it is only available for KMC databases, whose file names carry
// the metadata. FASTA labels are left unparsed.
func openStore(cmd *cobra.Command, c *config.Config) (marker.Store, map[string]string, error) {
	fastaDir, _ := cmd.Flags().GetString("fasta")
	if fastaDir != "" {
		store, err := fastadb.New(fastaDir)
		return store, nil, err
	}

	dbDir, _ := cmd.Flags().GetString("dbs")
	if dbDir == "" {
		return nil, nil, fmt.Errorf("one of --dbs or --fasta is required")
	}

	dbs, err := kmc.Find(dbDir)
	if err != nil {
		return nil, nil, err
	}
	if len(dbs) == 0 {
		return nil, nil, fmt.Errorf("no KMC marker databases found in %s", dbDir)
	}

	regions := make(map[string]string, len(dbs))
	for _, db := range dbs {
		regions[db.Label()] = db.Region
	}
	return kmc.NewStore(dbs, c.KMCTools), regions, nil
}
