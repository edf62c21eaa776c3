// Command datagen fabricates the synthetic Alabama medical-charges dataset:
// a provider-locations table, a row-level charges table (CSV and Parquet),
// and a headline KPI.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"
)

func main() {
	dataDir := flag.String("data", "data", "Output data directory")
	seed := flag.Int64("seed", 42, "Random seed (0 = seed from current time)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(*seed))

	start := time.Now()
	providers := generateProviders(r)
	rows := generateCharges(r, providers)

	if err := writeAll(*dataDir, providers, rows); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Data generation complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Providers:   %d\n", len(providers))
	fmt.Printf("  Charge rows: %d\n", len(rows))
	fmt.Printf("  Avg charge:  %.2f\n", averageCharge(rows))
	fmt.Printf("  Output dir:  %s\n", *dataDir)
}
