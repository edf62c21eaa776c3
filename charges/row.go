// Package charges defines the denormalized synthetic charge row shared by
// the generator and the dashboard, plus its Parquet encoding.
package charges

import "strconv"

// Row is one billed procedure instance: one provider × payer × procedure ×
// month combination with its charge amount. The CSV and Parquet outputs of
// datagen carry the same columns in the same order.
//
//   - Identifiers and categorical columns first, the measure last, so
//     engines reading column chunks sequentially touch the common filter
//     columns before the payload.
//   - Categorical strings (payer_type, procedure_category, procedure_sub,
//     city, month) dictionary-encode automatically; with ~5-20 distinct
//     values each they compress to near zero.
type Row struct {
	ProviderID   int64   `parquet:"provider_id"`
	ProviderName string  `parquet:"provider_name"`
	City         string  `parquet:"city"`
	Lat          float64 `parquet:"lat"`
	Lon          float64 `parquet:"lon"`

	PayerType         string `parquet:"payer_type"`
	ProcedureCategory string `parquet:"procedure_category"`
	ProcedureSub      string `parquet:"procedure_sub"`
	Month             string `parquet:"month"` // YYYY-MM

	ChargeAmount float64 `parquet:"charge_amount"`
}

// Columns is the canonical CSV header, kept in sync with the parquet tags
// above.
var Columns = []string{
	"provider_id", "provider_name", "city", "lat", "lon",
	"payer_type", "procedure_category", "procedure_sub",
	"month", "charge_amount",
}

// Strings renders the row as one CSV record in Columns order. Charges keep
// two decimals; coordinates print with minimal digits.
func (r Row) Strings() []string {
	return []string{
		strconv.FormatInt(r.ProviderID, 10),
		r.ProviderName,
		r.City,
		strconv.FormatFloat(r.Lat, 'f', -1, 64),
		strconv.FormatFloat(r.Lon, 'f', -1, 64),
		r.PayerType,
		r.ProcedureCategory,
		r.ProcedureSub,
		r.Month,
		strconv.FormatFloat(r.ChargeAmount, 'f', 2, 64),
	}
}
