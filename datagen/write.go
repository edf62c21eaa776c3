package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"chargedash/charges"
)

// writeProviderCSV writes provider_locations.csv.
func writeProviderCSV(path string, providers []provider) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"provider_id", "provider_name", "city", "lat", "lon"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range providers {
		rec := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.City,
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Lon, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write provider %d: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// writeChargesCSV writes charges.csv with the canonical column order.
func writeChargesCSV(path string, rows []charges.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(charges.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row.Strings()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// writeChargesParquet writes charges.parquet, batched like the CSV→Parquet
// converters this format handoff comes from.
func writeChargesParquet(path string, rows []charges.Row) error {
	w, err := charges.NewWriter(path)
	if err != nil {
		return err
	}
	const batchSize = 10000
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if _, err := w.Write(rows[start:end]); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// writeKPI writes kpi.json with the headline average.
func writeKPI(path string, avg float64) error {
	data, err := json.Marshal(map[string]float64{"average_charge": avg})
	if err != nil {
		return fmt.Errorf("marshal kpi: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAll writes the four data files into dataDir.
func writeAll(dataDir string, providers []provider, rows []charges.Row) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := writeProviderCSV(filepath.Join(dataDir, "provider_locations.csv"), providers); err != nil {
		return err
	}
	if err := writeChargesCSV(filepath.Join(dataDir, "charges.csv"), rows); err != nil {
		return err
	}
	if err := writeChargesParquet(filepath.Join(dataDir, "charges.parquet"), rows); err != nil {
		return err
	}
	return writeKPI(filepath.Join(dataDir, "kpi.json"), averageCharge(rows))
}
