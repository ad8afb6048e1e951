package resilience

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// statsHeader is the column set of the per-label statistics CSV, consumed by
// the downstream plotting scripts.
var statsHeader = []string{
	"label",
	"n_tested",
	"n_with_errors",
	"pct_kmers_with_errors",
	"mean_errors_per_kmer",
	"pct_error_tolerant",
	"pct_novel",
	"pct_wrong_set",
	"pct_ambiguous",
}

// eventsHeader is the column set of the event log CSV, one row per trial that
// picked up at least one error.
var eventsHeader = []string{
	"label",
	"original_sequence",
	"mutated_sequence",
	"n_errors",
	"outcome",
	"matched_labels",
}

func sortedLabels(stats map[string]*Stats) []string {
	labels := make([]string, 0, len(stats))
	for label := range stats {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteStatsCSV writes one row of aggregate statistics per label, sorted by
// label, to the file at path.
func WriteStatsCSV(path string, stats map[string]*Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stats CSV at %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statsHeader); err != nil {
		return err
	}
	for _, label := range sortedLabels(stats) {
		s := stats[label]
		row := []string{
			s.Label,
			strconv.Itoa(s.NTested),
			strconv.Itoa(s.NWithErrors),
			pct(s.PctWithErrors()),
			pct(s.MeanErrorsPerTrial()),
			pct(s.PctErrorTolerant()),
			pct(s.PctNovel()),
			pct(s.PctWrongSet()),
			pct(s.PctAmbiguous()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

// WriteEventsCSV writes the full event log to the file at path, gzipped when
// the path ends in ".gz". Events with no matching set log "none" in the
// matched_labels column.
func WriteEventsCSV(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create event log at %s: %v", path, err)
	}
	defer f.Close()

	var out io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		out = gz
	}

	w := csv.NewWriter(out)
	if err := w.Write(eventsHeader); err != nil {
		return err
	}
	for _, e := range events {
		matched := "none"
		if len(e.Matches) > 0 {
			matched = strings.Join(e.Matches, ",")
		}
		row := []string{
			e.Label,
			e.Original,
			e.Mutated,
			strconv.Itoa(e.Errors),
			e.Outcome.String(),
			matched,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if gz != nil {
		return gz.Close()
	}
	return nil
}

// WriteReport writes the human-readable run report: a ranking of sets by
// error tolerance followed by per-set detail.
func WriteReport(path string, stats map[string]*Stats, errorRate float64) error {
	// rank by error tolerance, best first
	ranked := make([]*Stats, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PctErrorTolerant() != ranked[j].PctErrorTolerant() {
			return ranked[i].PctErrorTolerant() > ranked[j].PctErrorTolerant()
		}
		return ranked[i].Label < ranked[j].Label
	})

	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "ERROR RESILIENCE ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Per-base sequencing error rate: %.1f%%\n", errorRate*100)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "ERROR RESILIENCE RANKING (best first)\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))
	for i, s := range ranked {
		fmt.Fprintf(&b, "%d. %s: %.2f%% error-tolerant\n", i+1, s.Label, s.PctErrorTolerant())
	}

	fmt.Fprintf(&b, "\n%s\nDETAILED STATISTICS\n%s\n\n", rule, rule)
	for _, s := range ranked {
		fmt.Fprintf(&b, "%s\n", s.Label)
		fmt.Fprintf(&b, "  Tested: %d markers\n", s.NTested)
		fmt.Fprintf(&b, "  Had sequencing errors: %d (%.2f%%)\n", s.NWithErrors, s.PctWithErrors())
		fmt.Fprintf(&b, "  Mean errors per marker: %.3f\n", s.MeanErrorsPerTrial())
		fmt.Fprintf(&b, "  Of markers WITH errors:\n")
		fmt.Fprintf(&b, "    Error-tolerant: %.2f%%\n", s.PctErrorTolerant())
		fmt.Fprintf(&b, "    Becomes novel: %.2f%%\n", s.PctNovel())
		fmt.Fprintf(&b, "    Matches wrong set: %.2f%%\n", s.PctWrongSet())
		fmt.Fprintf(&b, "    Becomes ambiguous: %.2f%%\n", s.PctAmbiguous())
		fmt.Fprintf(&b, "  Absolute false-positive rate: %.3f%%\n", s.FalsePositiveRate())
		fmt.Fprintf(&b, "  Usable markers: %.2f%%\n", s.Retention())
		fmt.Fprintf(&b, "\n")
	}

	return ioutil.WriteFile(path, []byte(b.String()), 0666)
}

// statsJSON widens Stats with the derived percentages so the JSON summary is
// self-contained.
type statsJSON struct {
	*Stats
	PctWithErrors     float64 `json:"pctWithErrors"`
	MeanErrors        float64 `json:"meanErrorsPerMarker"`
	PctErrorTolerant  float64 `json:"pctErrorTolerant"`
	PctNovel          float64 `json:"pctNovel"`
	PctWrongSet       float64 `json:"pctWrongSet"`
	PctAmbiguous      float64 `json:"pctAmbiguous"`
	FalsePositiveRate float64 `json:"falsePositiveRate"`
	Retention         float64 `json:"retention"`
}

// RunOutput is the machine-readable summary of one resilience run.
type RunOutput struct {
	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the run
	Execution float64 `json:"execution"`

	// SampleSize is the per-set sample size requested
	SampleSize int `json:"sampleSize"`

	// ErrorRate is the per-base substitution probability used
	ErrorRate float64 `json:"errorRate"`

	// Seed the run was made reproducible with
	Seed int64 `json:"seed"`

	// Sets holds per-label statistics, sorted by label
	Sets []statsJSON `json:"sets"`
}

// WriteJSON writes a run summary to the filename requested.
func WriteJSON(path string, p Params, stats map[string]*Stats, seconds float64) error {
	t := time.Now()
	out := RunOutput{
		Time: fmt.Sprintf(
			"%d/%02d/%02d %02d:%02d:%02d",
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		),
		Execution:  seconds,
		SampleSize: p.SampleSize,
		ErrorRate:  p.ErrorRate,
		Seed:       p.Seed,
	}
	for _, label := range sortedLabels(stats) {
		s := stats[label]
		out.Sets = append(out.Sets, statsJSON{
			Stats:             s,
			PctWithErrors:     s.PctWithErrors(),
			MeanErrors:        s.MeanErrorsPerTrial(),
			PctErrorTolerant:  s.PctErrorTolerant(),
			PctNovel:          s.PctNovel(),
			PctWrongSet:       s.PctWrongSet(),
			PctAmbiguous:      s.PctAmbiguous(),
			FalsePositiveRate: s.FalsePositiveRate(),
			Retention:         s.Retention(),
		})
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run output: %v", err)
	}
	if err = ioutil.WriteFile(path, output, 0666); err != nil {
		return fmt.Errorf("failed to write run output: %v", err)
	}
	return nil
}
