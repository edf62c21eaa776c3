package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"chargedash/charges"
)

// Reference lists for the synthetic Alabama dataset.

type cityCoord struct {
	name string
	lat  float64
	lon  float64
}

var cities = []cityCoord{
	{"Birmingham", 33.5207, -86.8025},
	{"Montgomery", 32.3792, -86.3077},
	{"Mobile", 30.6954, -88.0399},
	{"Huntsville", 34.7304, -86.5861},
	{"Tuscaloosa", 33.2098, -87.5692},
	{"Dothan", 31.2232, -85.3905},
	{"Auburn", 32.6099, -85.4808},
	{"Decatur", 34.6059, -86.9833},
	{"Gadsden", 34.0143, -86.0066},
	{"Florence", 34.7998, -87.6773},
}

var payers = []string{"Medicare", "Medicaid", "Private", "Self-Pay"}

var payerWeights = []float64{0.35, 0.25, 0.30, 0.10}

var procCategories = []string{
	"Cardiology", "Orthopedics", "Oncology", "Diagnostic", "General Surgery",
}

var subByCategory = map[string][]string{
	"Cardiology":      {"Stent", "CABG", "Angiogram"},
	"Orthopedics":     {"Knee Replacement", "Hip Replacement", "Arthroscopy"},
	"Oncology":        {"Chemo Session", "Radiation", "Immunotherapy"},
	"Diagnostic":      {"MRI", "CT Scan", "Ultrasound"},
	"General Surgery": {"Appendectomy", "Cholecystectomy", "Hernia Repair"},
}

// provider is one generated billing location.
type provider struct {
	ID   int64
	Name string
	City string
	Lat  float64
	Lon  float64
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// generateProviders fabricates 3-4 providers per city with jittered
// coordinates, ids counting from 1.
func generateProviders(r *rand.Rand) []provider {
	var out []provider
	id := int64(1)
	for _, c := range cities {
		n := 3 + r.Intn(2)
		for i := 0; i < n; i++ {
			prefix := strings.ToUpper(c.name[:3])
			out = append(out, provider{
				ID:   id,
				Name: fmt.Sprintf("%s-Med %d", prefix, id),
				City: c.name,
				Lat:  round4(c.lat + uniform(r, -0.12, 0.12)),
				Lon:  round4(c.lon + uniform(r, -0.12, 0.12)),
			})
			id++
		}
	}
	return out
}

// generateCharges fabricates 12 months of charge rows for every provider:
// 3-5 procedure categories per provider-month, one subcategory each, 8-15
// individual cases per category. Oncology runs ~1.8x the base charge and
// Private payers ~1.15x.
func generateCharges(r *rand.Rand, providers []provider) []charges.Row {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	var rows []charges.Row
	for m := 0; m < 12; m++ {
		month := start.AddDate(0, 0, 30*m).Format("2006-01")
		for _, p := range providers {
			for _, cat := range sampleCategories(r, 3+r.Intn(3)) {
				subs := subByCategory[cat]
				sub := subs[r.Intn(len(subs))]
				cases := 8 + r.Intn(8)
				for i := 0; i < cases; i++ {
					payer := weightedChoice(r, payers, payerWeights)
					base := uniform(r, 2_000, 25_000)
					if cat == "Oncology" {
						base *= 1.8
					}
					if payer == "Private" {
						base *= 1.15
					}
					rows = append(rows, charges.Row{
						ProviderID:        p.ID,
						ProviderName:      p.Name,
						City:              p.City,
						Lat:               p.Lat,
						Lon:               p.Lon,
						PayerType:         payer,
						ProcedureCategory: cat,
						ProcedureSub:      sub,
						Month:             month,
						ChargeAmount:      round2(base),
					})
				}
			}
		}
	}
	return rows
}

// averageCharge is the headline KPI: mean charge across all rows, in cents.
func averageCharge(rows []charges.Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range rows {
		sum += row.ChargeAmount
	}
	return round2(sum / float64(len(rows)))
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// sampleCategories picks k distinct procedure categories.
func sampleCategories(r *rand.Rand, k int) []string {
	perm := r.Perm(len(procCategories))
	out := make([]string, 0, k)
	for _, i := range perm[:k] {
		out = append(out, procCategories[i])
	}
	return out
}

// weightedChoice draws one value with the given relative weights.
func weightedChoice(r *rand.Rand, values []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}
