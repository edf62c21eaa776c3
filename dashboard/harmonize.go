package main

import (
	"regexp"
	"strconv"
	"strings"
)

// SchemaError is a fatal input-contract violation: the structural shape of
// an input table makes the aggregations meaningless. Value-level problems
// (unparseable numbers, unresolved geography) never raise one; they degrade
// to nil or sentinel values instead.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

// unknownCity is the sentinel for rows whose city cannot be resolved, so
// nulls never reach the renderers. Latitude/longitude get no sentinel; they
// stay nil.
const unknownCity = "Unknown City"

// Record is one harmonized charge: the left join of a charge row onto its
// provider, with canonical column names and coerced numerics. Written out
// as harmonized.parquet for downstream analytical use.
type Record struct {
	ProviderID      string   `parquet:"provider_id"`
	PayerType       string   `parquet:"payer_type"`
	ProcCategory    string   `parquet:"proc_category"`
	ProcSubcategory string   `parquet:"proc_subcategory"`
	ProviderCity    string   `parquet:"provider_city"`
	Month           string   `parquet:"month"`
	Charge          *float64 `parquet:"charge,optional"`
	Lat             *float64 `parquet:"lat,optional"`
	Lon             *float64 `parquet:"lon,optional"`
}

// columnResolver locates a column by some naming convention, returning its
// index or -1.
type columnResolver func(cols []string) int

// exactColumn matches the canonical name itself.
func exactColumn(name string) columnResolver {
	return func(cols []string) int {
		for i, c := range cols {
			if c == name {
				return i
			}
		}
		return -1
	}
}

// patternColumn full-matches a case-insensitive pattern, tolerating the
// merge-induced suffixes a join adds when both inputs define the column.
func patternColumn(pattern string) columnResolver {
	re := regexp.MustCompile(`(?i)^(?:` + pattern + `)$`)
	return func(cols []string) int {
		for i, c := range cols {
			if re.MatchString(c) {
				return i
			}
		}
		return -1
	}
}

// Ordered resolver lists, tried in sequence: exact canonical name first,
// then the suffix-tolerant pattern. City additionally falls back to the
// unknownCity sentinel per row when nothing resolves.
var (
	cityResolvers = []columnResolver{exactColumn("provider_city"), patternColumn(`city(_[xy])?`)}
	latResolvers  = []columnResolver{exactColumn("lat"), patternColumn(`lat(_[xy])?`)}
	lonResolvers  = []columnResolver{exactColumn("lon"), patternColumn(`(lon|lng)(_?[xy])?`)}
)

// resolveColumn renames the first column any resolver finds to the
// canonical name. Reports whether a column was found.
func resolveColumn(t *table, canonical string, resolvers []columnResolver) bool {
	for _, find := range resolvers {
		if i := find(t.cols); i >= 0 {
			t.cols[i] = canonical
			return true
		}
	}
	return false
}

// findChargeColumn locates the charge-amount column by case-insensitive
// substring match on "charge", in column order.
func findChargeColumn(cols []string) int {
	for i, c := range cols {
		if strings.Contains(strings.ToLower(c), "charge") {
			return i
		}
	}
	return -1
}

// harmonize reconciles the charges and provider-locations tables into one
// record set with the canonical schema. Structural violations (no charge
// column, no provider_id join key) fail with a SchemaError; bad values
// degrade silently.
func harmonize(chargeTbl, locTbl *table) ([]Record, error) {
	ci := findChargeColumn(chargeTbl.cols)
	if ci < 0 {
		return nil, &SchemaError{Msg: "no column containing the word 'charge' found"}
	}
	chargeTbl.cols[ci] = "charge"

	df, err := mergeLeft(chargeTbl, locTbl, "provider_id")
	if err != nil {
		return nil, err
	}

	// When no city column resolves at all, every row takes the sentinel
	// during record construction below.
	resolveColumn(df, "provider_city", cityResolvers)
	resolveColumn(df, "lat", latResolvers)
	resolveColumn(df, "lon", lonResolvers)

	// Decouple display names from the synthesizer's domain columns.
	df.rename("procedure_category", "proc_category")
	df.rename("procedure_sub", "proc_subcategory")

	var (
		idIdx     = df.colIndex("provider_id")
		payerIdx  = df.colIndex("payer_type")
		catIdx    = df.colIndex("proc_category")
		subIdx    = df.colIndex("proc_subcategory")
		cityIdx   = df.colIndex("provider_city")
		monthIdx  = df.colIndex("month")
		chargeIdx = df.colIndex("charge")
		latIdx    = df.colIndex("lat")
		lonIdx    = df.colIndex("lon")
	)

	records := make([]Record, 0, len(df.rows))
	for _, row := range df.rows {
		rec := Record{
			ProviderID:      df.value(row, idIdx),
			PayerType:       df.value(row, payerIdx),
			ProcCategory:    df.value(row, catIdx),
			ProcSubcategory: df.value(row, subIdx),
			ProviderCity:    df.value(row, cityIdx),
			Month:           df.value(row, monthIdx),
			Charge:          parseFloat(df.value(row, chargeIdx)),
			Lat:             parseFloat(df.value(row, latIdx)),
			Lon:             parseFloat(df.value(row, lonIdx)),
		}
		if rec.ProviderCity == "" {
			rec.ProviderCity = unknownCity
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseFloat coerces a cell to a number, nil when it cannot be parsed.
// Tolerates thousands separators and dollar signs.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// chargeValue is the nil-skipping accessor the aggregations share.
func chargeValue(r Record) (float64, bool) {
	if r.Charge == nil {
		return 0, false
	}
	return *r.Charge, true
}
