// datagen builds a generation config from interactive prompts (or flag
// defaults), runs the synthesizer, and exports the cohort as CSV.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/synthetica-health/platform/pkg/common/logger"
	"github.com/synthetica-health/platform/pkg/dataset"
	"github.com/synthetica-health/platform/pkg/profile"
	"github.com/synthetica-health/platform/pkg/synth"
)

func main() {
	var (
		outputDir   = flag.String("dir", "data/generated_data", "output directory for generated CSV files")
		profilePath = flag.String("profiles", "", "path to a cohort profile YAML (optional)")
		profileName = flag.String("profile", "", "cohort profile to start from (optional)")
		seed        = flag.Int64("seed", 42, "random seed")
		useDefaults = flag.Bool("defaults", false, "skip prompts and use default parameters")
	)
	flag.Parse()

	logger.Init()

	profiles, err := profile.Load(*profilePath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to built-in cohort profiles")
	}

	cfg := synth.DefaultConfig()
	cfg.Seed = *seed
	if *profileName != "" {
		p, ok := profiles.Lookup(*profileName)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown profile %q; available: %s\n", *profileName, strings.Join(profiles.Names(), ", "))
			os.Exit(1)
		}
		cfg = p.ToConfig(cfg.SampleCount, cfg.Seed)
	}

	filename := ""
	if !*useDefaults {
		in := bufio.NewReader(os.Stdin)
		cfg.SampleCount = promptInt(in, "Enter number of samples to generate", cfg.SampleCount)
		filename = promptString(in, "Enter output filename (press Enter for date-based name)", "")
		cfg.Survival.Shape = promptFloat(in, "Enter shape parameter for survival time distribution", cfg.Survival.Shape)
		cfg.Survival.Scale = promptFloat(in, "Enter scale parameter for survival time distribution", cfg.Survival.Scale)

		if promptBool(in, "Generate correlated variables?", false) {
			pair := &synth.CorrelatedPair{}
			pair.Name1 = promptString(in, "Enter name for first variable", "")
			pair.Mean1 = promptFloat(in, "Enter mean for first variable", 0)
			pair.StdDev1 = promptFloat(in, "Enter standard deviation for first variable", 1)
			pair.Name2 = promptString(in, "Enter name for second variable", "")
			pair.Mean2 = promptFloat(in, "Enter mean for second variable", 0)
			pair.StdDev2 = promptFloat(in, "Enter standard deviation for second variable", 1)
			pair.Correlation = promptFloat(in, "Enter desired correlation coefficient (-1 to 1)", 0)
			cfg.Correlated = pair
		}
	}

	rs, err := synth.Generate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	printHead(rs, 10)

	if filename == "" {
		filename = dataset.DefaultFilename(time.Now())
	}
	filename = dataset.EnsureCSVExt(filename)
	path := filepath.Join(*outputDir, filename)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating output file: %v\n", err)
		os.Exit(1)
	}
	if err := dataset.WriteCSV(f, rs); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "writing CSV: %v\n", err)
		os.Exit(1)
	}
	f.Close()

	fmt.Printf("Data exported to %s\n", path)
}

func printHead(rs *synth.RecordSet, n int) {
	if rs.Len() < n {
		n = rs.Len()
	}
	fields := rs.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	fmt.Println(strings.Join(names, "  "))
	for i := 0; i < n; i++ {
		row := rs.Row(i)
		parts := make([]string, len(fields))
		for j, f := range fields {
			switch v := row[f.Name].(type) {
			case int:
				parts[j] = strconv.Itoa(v)
			case float64:
				parts[j] = strconv.FormatFloat(v, 'f', 4, 64)
			}
		}
		fmt.Println(strings.Join(parts, "  "))
	}
}

func promptString(in *bufio.Reader, label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s (default: %s): ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func promptInt(in *bufio.Reader, label string, fallback int) int {
	raw := promptString(in, fmt.Sprintf("%s (default: %d)", label, fallback), "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("invalid number, using %d\n", fallback)
		return fallback
	}
	return v
}

func promptFloat(in *bufio.Reader, label string, fallback float64) float64 {
	raw := promptString(in, fmt.Sprintf("%s (default: %g)", label, fallback), "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("invalid number, using %g\n", fallback)
		return fallback
	}
	return v
}

func promptBool(in *bufio.Reader, label string, fallback bool) bool {
	def := "n"
	if fallback {
		def = "y"
	}
	raw := promptString(in, fmt.Sprintf("%s (y/n, default: %s)", label, def), "")
	if raw == "" {
		return fallback
	}
	return strings.EqualFold(raw, "y") || strings.EqualFold(raw, "yes")
}
