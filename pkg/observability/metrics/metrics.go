package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	datasetsGenerated atomic.Int64
	datasetsFailed    atomic.Int64
	rowsGenerated     atomic.Int64
	exportsServed     atomic.Int64
)

func Init() {}

func ObserveGeneration(rows int) {
	datasetsGenerated.Add(1)
	rowsGenerated.Add(int64(rows))
}

func ObserveGenerationFailed() {
	datasetsFailed.Add(1)
}

func ObserveExport() {
	exportsServed.Add(1)
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP synthetica_datasets_generated_total Number of synthetic datasets generated since start.\n")
	fmt.Fprintf(w, "# TYPE synthetica_datasets_generated_total counter\n")
	fmt.Fprintf(w, "synthetica_datasets_generated_total %d\n", datasetsGenerated.Load())

	fmt.Fprintf(w, "# HELP synthetica_datasets_failed_total Number of generation requests rejected or failed since start.\n")
	fmt.Fprintf(w, "# TYPE synthetica_datasets_failed_total counter\n")
	fmt.Fprintf(w, "synthetica_datasets_failed_total %d\n", datasetsFailed.Load())

	fmt.Fprintf(w, "# HELP synthetica_rows_generated_total Number of synthetic records generated since start.\n")
	fmt.Fprintf(w, "# TYPE synthetica_rows_generated_total counter\n")
	fmt.Fprintf(w, "synthetica_rows_generated_total %d\n", rowsGenerated.Load())

	fmt.Fprintf(w, "# HELP synthetica_exports_served_total Number of CSV exports streamed since start.\n")
	fmt.Fprintf(w, "# TYPE synthetica_exports_served_total counter\n")
	fmt.Fprintf(w, "synthetica_exports_served_total %d\n", exportsServed.Load())
}
