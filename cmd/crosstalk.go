package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/jacgonisa/kmer-marker-error-resilience/config"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/marker"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/overlap"
)

// crosstalkCmd represents the crosstalk command
var crosstalkCmd = &cobra.Command{
	Use:   "crosstalk",
	Short: "Measure verbatim marker sharing between labeled sets",
	Long: `Loads every labeled set in full and intersects each pair. Markers shared
verbatim between sets make reads ambiguous even without sequencing errors,
so high crosstalk disqualifies a marker set independent of its error
resilience.`,
	Run: runCrosstalk,
}

func init() {
	RootCmd.AddCommand(crosstalkCmd)

	crosstalkCmd.Flags().StringP("dbs", "d", "", "Directory of KMC marker databases")
	crosstalkCmd.Flags().StringP("fasta", "f", "", "Directory of per-set FASTA marker files (alternative to --dbs)")
	crosstalkCmd.Flags().StringP("out", "o", "crosstalk.csv", "Output CSV path")
}

func runCrosstalk(cmd *cobra.Command, args []string) {
	c := config.New()

	store, _, err := openStore(cmd, c)
	if err != nil {
		log.Fatalf("failed to open marker store: %v", err)
	}

	out, _ := cmd.Flags().GetString("out")

	labels, err := store.Labels()
	if err != nil {
		log.Fatalf("failed to list marker sets: %v", err)
	}
	if len(labels) < 2 {
		log.Fatalf("crosstalk needs at least 2 labeled sets, found %d", len(labels))
	}

	sets := make(map[string]marker.Set, len(labels))
	for _, label := range labels {
		seqs, err := store.ListSequences(label)
		if err != nil {
			log.Fatalf("failed to load %s: %v", label, err)
		}
		sets[label] = marker.NewSet(seqs)
		stderr.Printf("loaded %s: %d markers", label, sets[label].Len())
	}

	pairs := overlap.Pairwise(sets)
	if err := overlap.WriteCSV(out, pairs); err != nil {
		log.Fatalf("failed to write crosstalk CSV: %v", err)
	}

	worst := overlap.Pair{}
	for _, p := range pairs {
		if p.Shared > worst.Shared {
			worst = p
		}
	}
	if worst.Shared > 0 {
		stderr.Printf(
			"worst pair: %s / %s share %d markers (%.3f%% of %s)",
			worst.A, worst.B, worst.Shared, worst.PctOfA(), worst.A,
		)
	} else {
		stderr.Printf("no verbatim sharing between any pair of sets")
	}
	stderr.Printf("wrote %s (%d pairs)", out, len(pairs))
}
