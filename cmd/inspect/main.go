// inspect loads a generated cohort CSV and prints descriptive statistics,
// text histograms, and a correlation heatmap.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/synthetica-health/platform/pkg/analysis"
	"github.com/synthetica-health/platform/pkg/analysis/dsl"
	"github.com/synthetica-health/platform/pkg/dataset"
	"github.com/synthetica-health/platform/pkg/synth"
)

func main() {
	var (
		dataDir = flag.String("dir", "data/generated_data", "directory containing generated CSV files")
		file    = flag.String("file", "", "CSV file to inspect (skips the selection prompt)")
		query   = flag.String("q", "", "selection expression, e.g. 'select age, weight where event_occurred = 1 limit 500'")
		bins    = flag.Int("bins", analysis.DefaultHistogramBins, "number of histogram bins")
	)
	flag.Parse()

	path := *file
	if path == "" {
		var err error
		path, err = chooseFile(*dataDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(*dataDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", path, err)
		os.Exit(1)
	}
	rs, err := dataset.ReadCSV(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		os.Exit(1)
	}

	if *query != "" {
		q, err := dsl.Parse(*query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing query: %v\n", err)
			os.Exit(1)
		}
		rs, err = analysis.Select(rs, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "applying query: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Loaded %s (%d rows, %d columns)\n\n", filepath.Base(path), rs.Len(), len(rs.Fields()))

	printDescribe(rs)
	printHistograms(rs, *bins)
	printHeatmap(rs)
}

func chooseFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no CSV files found in %s", dir)
	}
	sort.Strings(names)

	fmt.Println("Available data files:")
	for i, n := range names {
		fmt.Printf("  %d. %s\n", i+1, n)
	}
	in := bufio.NewReader(os.Stdin)
	fmt.Printf("Select a file (1-%d): ", len(names))
	line, _ := in.ReadString('\n')
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || idx < 1 || idx > len(names) {
		return "", fmt.Errorf("invalid selection")
	}
	return filepath.Join(dir, names[idx-1]), nil
}

func printDescribe(rs *synth.RecordSet) {
	stats := analysis.Describe(rs)
	fmt.Printf("%-22s %8s %10s %10s %10s %10s %10s %10s %10s\n",
		"field", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range stats {
		fmt.Printf("%-22s %8d %10.3f %10.3f %10.3f %10.3f %10.3f %10.3f %10.3f\n",
			s.Field, s.Count, s.Mean, s.StdDev, s.Min, s.Q25, s.Median, s.Q75, s.Max)
	}
	fmt.Println()
}

func printHistograms(rs *synth.RecordSet, bins int) {
	const barWidth = 50
	for _, f := range rs.Fields() {
		if f.Kind == synth.KindFlag {
			continue
		}
		values, ok := rs.Column(f.Name)
		if !ok || len(values) == 0 {
			continue
		}
		h := analysis.BuildHistogram(f.Name, values, bins)
		max := 0
		for _, c := range h.Counts {
			if c > max {
				max = c
			}
		}
		fmt.Printf("Distribution of %s\n", f.Name)
		for i, c := range h.Counts {
			bar := 0
			if max > 0 {
				bar = c * barWidth / max
			}
			fmt.Printf("  [%9.2f, %9.2f) %6d %s\n",
				h.Edges[i], h.Edges[i+1], c, strings.Repeat("#", bar))
		}
		fmt.Println()
	}
}

// printHeatmap renders the Pearson matrix with a coarse shade per cell.
func printHeatmap(rs *synth.RecordSet) {
	var names []string
	for _, f := range rs.Fields() {
		names = append(names, f.Name)
	}
	m, err := analysis.Correlate(rs, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "correlation: %v\n", err)
		return
	}

	fmt.Println("Correlation matrix")
	fmt.Printf("%-22s", "")
	for _, n := range m.Fields {
		fmt.Printf(" %8s", truncate(n, 8))
	}
	fmt.Println()
	for i, row := range m.Values {
		fmt.Printf("%-22s", truncate(m.Fields[i], 22))
		for _, v := range row {
			fmt.Printf(" %5.2f %s", v, shade(v))
		}
		fmt.Println()
	}
	fmt.Println()
}

func shade(v float64) string {
	switch a := math.Abs(v); {
	case a >= 0.75:
		return "##"
	case a >= 0.5:
		return "++"
	case a >= 0.25:
		return "--"
	default:
		return "  "
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
