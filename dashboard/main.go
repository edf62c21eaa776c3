// Command dashboard builds the medical-charges dashboard from the
// synthesizer's flat files.
//
// Reads
//
//	<data>/charges.csv            (or charges.parquet when the CSV is absent)
//	<data>/provider_locations.csv
//	<data>/kpi.json               (optional)
//
// Writes
//
//	<out>/fig_sankey.html
//	<out>/fig_treemap.html
//	<out>/fig_heatmap.html
//	<out>/harmonized.parquet
//	<out>/dashboard.html
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
)

// pipelineConfig is the explicit configuration handed to every stage: no
// global path state, no environment variables.
type pipelineConfig struct {
	ChargesPath   string // .csv or .parquet
	ProvidersPath string
	KPIPath       string
	OutDir        string
	OpenBrowser   bool
}

func main() {
	dataDir := flag.String("data", "data", "Input data directory")
	outDir := flag.String("out", "outputs", "Output directory for the rendered artifacts")
	noBrowser := flag.Bool("no-browser", false, "Do not open the dashboard in a browser after generation")
	flag.Parse()

	cfg := pipelineConfig{
		ProvidersPath: filepath.Join(*dataDir, "provider_locations.csv"),
		KPIPath:       filepath.Join(*dataDir, "kpi.json"),
		OutDir:        *outDir,
		OpenBrowser:   !*noBrowser,
	}

	// Fail fast on missing required inputs, before any output is written.
	// The charges table may arrive as CSV or as the Parquet handoff.
	csvPath := filepath.Join(*dataDir, "charges.csv")
	parquetPath := filepath.Join(*dataDir, "charges.parquet")
	switch {
	case fileExists(csvPath):
		cfg.ChargesPath = csvPath
	case fileExists(parquetPath):
		cfg.ChargesPath = parquetPath
	default:
		log.Fatalf("Required file missing: %s", csvPath)
	}
	if !fileExists(cfg.ProvidersPath) {
		log.Fatalf("Required file missing: %s", cfg.ProvidersPath)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg pipelineConfig) error {
	start := time.Now()

	// Load & harmonize
	var (
		chargeTbl *table
		err       error
	)
	if strings.EqualFold(filepath.Ext(cfg.ChargesPath), ".parquet") {
		chargeTbl, err = readParquetTable(cfg.ChargesPath)
	} else {
		chargeTbl, err = readCSVTable(cfg.ChargesPath)
	}
	if err != nil {
		return err
	}
	locTbl, err := readCSVTable(cfg.ProvidersPath)
	if err != nil {
		return err
	}

	records, err := harmonize(chargeTbl, locTbl)
	if err != nil {
		return err
	}

	// Aggregate views — three pure projections of the same record set.
	flow := buildFlowView(records)
	hierarchy := buildHierarchyView(records)
	crosstab := buildCrossTab(records)

	sankey := sankeyFigure(flow)
	treemap := treemapFigure(hierarchy)
	heatmap := heatmapFigure(crosstab)

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Standalone artifacts, each a complete self-rendering document.
	standalone := []struct {
		file  string
		title string
		fig   Figure
	}{
		{"fig_sankey.html", "Medical-Charge Flow", sankey},
		{"fig_treemap.html", "Charge Distribution by Procedure Hierarchy", treemap},
		{"fig_heatmap.html", "Median Charge by City & Procedure Category", heatmap},
	}
	for _, s := range standalone {
		page, err := figurePage(s.title, s.fig)
		if err != nil {
			return err
		}
		out := filepath.Join(cfg.OutDir, s.file)
		if err := writePage(out, page); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", out)
	}

	snapshotPath := filepath.Join(cfg.OutDir, "harmonized.parquet")
	if err := writeSnapshot(snapshotPath, records); err != nil {
		return err
	}
	fmt.Printf("  wrote %s\n", snapshotPath)

	// Combined dashboard: KPI block is optional and degrades silently.
	kpi := readKPI(cfg.KPIPath)
	page, err := dashboardPage(sankey, treemap, heatmap, kpi)
	if err != nil {
		return err
	}
	dashPath := filepath.Join(cfg.OutDir, "dashboard.html")
	if err := writePage(dashPath, page); err != nil {
		return err
	}
	fmt.Printf("  wrote %s\n", dashPath)

	fmt.Println()
	fmt.Printf("Dashboard built in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Charge rows:  %d\n", len(records))
	fmt.Printf("  Flow nodes:   %d\n", len(flow.Nodes))
	fmt.Printf("  Leaf groups:  %d\n", len(hierarchy))
	fmt.Printf("  Heatmap grid: %d cities × %d categories\n", len(crosstab.Cities), len(crosstab.Categories))

	if cfg.OpenBrowser {
		if err := browser.OpenFile(dashPath); err != nil {
			// Not fatal: the artifacts are already on disk.
			fmt.Fprintf(os.Stderr, "open browser: %v\n", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
