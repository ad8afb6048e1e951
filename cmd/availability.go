package cmd

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacgonisa/kmer-marker-error-resilience/config"
	"github.com/jacgonisa/kmer-marker-error-resilience/internal/kmc"
)

// availabilityCmd represents the availability command
var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Count markers per database and estimate marker density",
	Long: `Queries every KMC marker database for its total distinct marker count
and derives markers-per-Mb density against the configured region size
estimates. Writes one CSV row per database.`,
	Run: runAvailability,
}

func init() {
	RootCmd.AddCommand(availabilityCmd)

	availabilityCmd.Flags().StringP("dbs", "d", "", "Directory of KMC marker databases")
	availabilityCmd.Flags().StringP("out", "o", "marker_availability_summary.csv", "Output CSV path")
	availabilityCmd.MarkFlagRequired("dbs")
}

func runAvailability(cmd *cobra.Command, args []string) {
	c := config.New()

	dbDir, _ := cmd.Flags().GetString("dbs")
	out, _ := cmd.Flags().GetString("out")

	dbs, err := kmc.Find(dbDir)
	if err != nil {
		log.Fatalf("failed to scan for marker databases: %v", err)
	}
	if len(dbs) == 0 {
		log.Fatalf("no KMC marker databases found in %s", dbDir)
	}
	store := kmc.NewStore(dbs, c.KMCTools)

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create %s: %v", out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"label", "genotype", "region", "chromosome", "k", "total_kmers", "estimated_size_kb", "density_per_mb"}
	if err := w.Write(header); err != nil {
		log.Fatalf("failed to write %s: %v", out, err)
	}

	for _, db := range dbs {
		label := db.Label()
		count, err := store.Count(label)
		if err != nil {
			log.Fatalf("failed to count markers in %s: %v", label, err)
		}

		size := c.RegionSize(db.Region)
		density := float64(count) / float64(size) * 1e6

		row := []string{
			label,
			db.Genotype,
			db.Region,
			db.Chromosome,
			strconv.Itoa(db.K),
			strconv.Itoa(count),
			strconv.FormatFloat(float64(size)/1000, 'f', 1, 64),
			strconv.FormatFloat(density, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("failed to write %s: %v", out, err)
		}

		stderr.Printf("k=%2d | %-25s | %12d markers | %12.0f markers/Mb", db.K, label, count, density)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("failed to write %s: %v", out, err)
	}

	stderr.Printf("analyzed %d databases, wrote %s", len(dbs), out)
}
