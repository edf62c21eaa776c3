package charges

import (
	"path/filepath"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charges.parquet")

	in := []Row{
		{
			ProviderID: 1, ProviderName: "BIR-Med 1", City: "Birmingham",
			Lat: 33.5207, Lon: -86.8025,
			PayerType: "Private", ProcedureCategory: "Cardiology",
			ProcedureSub: "Stent", Month: "2023-01", ChargeAmount: 12345.67,
		},
		{
			ProviderID: 2, ProviderName: "MOB-Med 2", City: "Mobile",
			Lat: 30.6954, Lon: -88.0399,
			PayerType: "Medicare", ProcedureCategory: "Oncology",
			ProcedureSub: "Radiation", Month: "2023-02", ChargeAmount: 30100.00,
		},
	}

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.Count() != len(in) {
		t.Errorf("Count = %d, want %d", w.Count(), len(in))
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("ReadFile returned %d rows, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("row[%d] = %+v, want %+v", i, out[i], in[i])
		}
	}
}
