package main

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateProviders(t *testing.T) {
	providers := generateProviders(rand.New(rand.NewSource(42)))

	// 3-4 providers per listed city.
	if len(providers) < 3*len(cities) || len(providers) > 4*len(cities) {
		t.Fatalf("generated %d providers, want %d-%d", len(providers), 3*len(cities), 4*len(cities))
	}

	byCity := make(map[string]cityCoord)
	for _, c := range cities {
		byCity[c.name] = c
	}

	for i, p := range providers {
		if p.ID != int64(i+1) {
			t.Errorf("provider[%d].ID = %d, want sequential %d", i, p.ID, i+1)
		}
		c, ok := byCity[p.City]
		if !ok {
			t.Errorf("provider %d has unknown city %q", p.ID, p.City)
			continue
		}
		// Jitter is bounded at ±0.12 around the city center.
		if math.Abs(p.Lat-c.lat) > 0.12+1e-9 || math.Abs(p.Lon-c.lon) > 0.12+1e-9 {
			t.Errorf("provider %d coordinates (%f, %f) outside jitter bounds of %s", p.ID, p.Lat, p.Lon, p.City)
		}
	}
}

func TestGenerateChargesReferencesProviders(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	providers := generateProviders(r)
	rows := generateCharges(r, providers)

	if len(rows) == 0 {
		t.Fatal("no charge rows generated")
	}

	known := make(map[int64]provider)
	for _, p := range providers {
		known[p.ID] = p
	}
	validPayer := make(map[string]bool)
	for _, p := range payers {
		validPayer[p] = true
	}

	for i, row := range rows {
		p, ok := known[row.ProviderID]
		if !ok {
			t.Fatalf("row %d references unknown provider %d", i, row.ProviderID)
		}
		if row.City != p.City || row.ProviderName != p.Name {
			t.Errorf("row %d provider fields %q/%q do not match provider %d", i, row.ProviderName, row.City, p.ID)
		}
		if !validPayer[row.PayerType] {
			t.Errorf("row %d has unknown payer %q", i, row.PayerType)
		}
		subs, ok := subByCategory[row.ProcedureCategory]
		if !ok {
			t.Errorf("row %d has unknown category %q", i, row.ProcedureCategory)
			continue
		}
		if !contains(subs, row.ProcedureSub) {
			t.Errorf("row %d subcategory %q not in category %q", i, row.ProcedureSub, row.ProcedureCategory)
		}
		if row.ChargeAmount <= 0 {
			t.Errorf("row %d has non-positive charge %f", i, row.ChargeAmount)
		}
		if len(row.Month) != 7 || !strings.HasPrefix(row.Month, "2023-") {
			t.Errorf("row %d has malformed month %q", i, row.Month)
		}
	}
}

func TestGenerateChargesDeterministic(t *testing.T) {
	r1 := rand.New(rand.NewSource(7))
	rows1 := generateCharges(r1, generateProviders(rand.New(rand.NewSource(7))))
	r2 := rand.New(rand.NewSource(7))
	rows2 := generateCharges(r2, generateProviders(rand.New(rand.NewSource(7))))

	if len(rows1) != len(rows2) {
		t.Fatalf("row counts differ: %d vs %d", len(rows1), len(rows2))
	}
	for i := range rows1 {
		if rows1[i] != rows2[i] {
			t.Fatalf("row %d differs under same seed: %+v vs %+v", i, rows1[i], rows2[i])
		}
	}
}

func TestAverageCharge(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	rows := generateCharges(r, generateProviders(r))

	var sum float64
	for _, row := range rows {
		sum += row.ChargeAmount
	}
	want := math.Round(sum/float64(len(rows))*100) / 100
	if got := averageCharge(rows); got != want {
		t.Errorf("averageCharge = %f, want %f", got, want)
	}

	if got := averageCharge(nil); got != 0 {
		t.Errorf("averageCharge(nil) = %f, want 0", got)
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
