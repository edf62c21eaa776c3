package main

import (
	"reflect"
	"testing"
)

func rec(payer, cat, sub, city string, charge float64) Record {
	return Record{
		PayerType:       payer,
		ProcCategory:    cat,
		ProcSubcategory: sub,
		ProviderCity:    city,
		Charge:          f64Ptr(charge),
	}
}

func TestFlowViewScenario(t *testing.T) {
	// Three resolved provider-1 rows plus one unknown-provider row whose
	// payer/category still qualify: the first stage counts its charge too.
	records := []Record{
		rec("Private", "Cardiology", "Stent", "Birmingham", 100),
		rec("Private", "Cardiology", "Stent", "Birmingham", 200),
		rec("Private", "Cardiology", "Stent", "Birmingham", 300),
		rec("Private", "Cardiology", "Stent", unknownCity, 300),
	}

	view := buildFlowView(records)

	// First-seen node order across concatenated payer, category, city.
	wantNodes := []string{"Private", "Cardiology", "Birmingham", unknownCity}
	if !reflect.DeepEqual(view.Nodes, wantNodes) {
		t.Fatalf("Nodes = %v, want %v", view.Nodes, wantNodes)
	}

	idx := func(name string) int {
		for i, n := range view.Nodes {
			if n == name {
				return i
			}
		}
		t.Fatalf("node %q missing", name)
		return -1
	}

	var privateToCardiology float64
	for _, l := range view.Links {
		if l.Source == idx("Private") && l.Target == idx("Cardiology") {
			privateToCardiology += l.Value
		}
		// Two-stage decomposition only: no direct payer→city link.
		if l.Source == idx("Private") && (l.Target == idx("Birmingham") || l.Target == idx(unknownCity)) {
			t.Errorf("unexpected direct payer→city link %+v", l)
		}
	}
	if privateToCardiology != 900 {
		t.Errorf("Private→Cardiology = %f, want 900 (unknown-provider row still qualifies by literal category match)", privateToCardiology)
	}

	// Second stage splits by city: 600 to Birmingham, 300 to Unknown City.
	secondStage := map[int]float64{}
	for _, l := range view.Links {
		if l.Source == idx("Cardiology") {
			secondStage[l.Target] = l.Value
		}
	}
	if secondStage[idx("Birmingham")] != 600 {
		t.Errorf("Cardiology→Birmingham = %f, want 600", secondStage[idx("Birmingham")])
	}
	if secondStage[idx(unknownCity)] != 300 {
		t.Errorf("Cardiology→Unknown City = %f, want 300", secondStage[idx(unknownCity)])
	}
}

func TestFlowViewDeterministic(t *testing.T) {
	records := []Record{
		rec("Medicare", "Oncology", "Radiation", "Mobile", 50),
		rec("Private", "Cardiology", "Stent", "Birmingham", 100),
		rec("Medicare", "Cardiology", "CABG", "Birmingham", 75),
		rec("Self-Pay", "Diagnostic", "MRI", "Dothan", 20),
	}

	first := buildFlowView(records)
	for i := 0; i < 10; i++ {
		again := buildFlowView(records)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("flow view not deterministic: run %d gave %+v, first gave %+v", i, again, first)
		}
	}
}

func TestFlowViewSkipsNilChargeAndEmptyDims(t *testing.T) {
	records := []Record{
		rec("Private", "Cardiology", "Stent", "Birmingham", 100),
		{PayerType: "Private", ProcCategory: "Cardiology", ProviderCity: "Birmingham"}, // nil charge
		{PayerType: "", ProcCategory: "Cardiology", ProviderCity: "Birmingham", Charge: f64Ptr(999)},
	}

	view := buildFlowView(records)
	for _, n := range view.Nodes {
		if n == "" {
			t.Error("empty dimension value became a node")
		}
	}
	for _, l := range view.Links {
		if view.Nodes[l.Source] == "Private" && view.Nodes[l.Target] == "Cardiology" && l.Value != 100 {
			t.Errorf("Private→Cardiology = %f, want 100 (nil charge sums as zero, empty payer dropped)", l.Value)
		}
	}
}

func TestHierarchyViewConservesChargeMass(t *testing.T) {
	records := []Record{
		rec("Private", "Cardiology", "Stent", "Birmingham", 100),
		rec("Medicare", "Cardiology", "Stent", "Birmingham", 40),
		rec("Private", "Cardiology", "CABG", "Mobile", 60),
		rec("Medicaid", "Oncology", "Radiation", "Mobile", 200),
		{PayerType: "Private", ProcCategory: "Cardiology", ProcSubcategory: "Stent", ProviderCity: "Birmingham"}, // nil charge
	}

	groups := buildHierarchyView(records)

	var total float64
	for _, r := range records {
		if v, ok := chargeValue(r); ok {
			total += v
		}
	}
	var leafSum float64
	for _, g := range groups {
		leafSum += g.Total
	}
	if leafSum != total {
		t.Errorf("leaf sum = %f, want %f (no charge mass lost in aggregation)", leafSum, total)
	}

	// Sorted by (category, subcategory, payer).
	want := []HierarchyGroup{
		{"Cardiology", "CABG", "Private", 60},
		{"Cardiology", "Stent", "Medicare", 40},
		{"Cardiology", "Stent", "Private", 100},
		{"Oncology", "Radiation", "Medicaid", 200},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("groups = %+v, want %+v", groups, want)
	}
}

func TestCrossTabDenseAndZeroFilled(t *testing.T) {
	records := []Record{
		rec("Private", "Cardiology", "Stent", "Birmingham", 100),
		rec("Private", "Cardiology", "Stent", "Birmingham", 300),
		rec("Private", "Cardiology", "Stent", "Birmingham", 200),
		rec("Medicare", "Oncology", "Radiation", "Mobile", 500),
		rec("Medicare", "Oncology", "Radiation", "Mobile", 700),
	}

	ct := buildCrossTab(records)

	if !reflect.DeepEqual(ct.Cities, []string{"Birmingham", "Mobile"}) {
		t.Fatalf("Cities = %v", ct.Cities)
	}
	if !reflect.DeepEqual(ct.Categories, []string{"Cardiology", "Oncology"}) {
		t.Fatalf("Categories = %v", ct.Categories)
	}

	// Dense matrix: every (city, category) cell exists.
	if len(ct.Values) != 2 || len(ct.Values[0]) != 2 || len(ct.Values[1]) != 2 {
		t.Fatalf("Values shape = %v, want 2×2", ct.Values)
	}

	// Odd count → middle value; even count → mean of the two middles.
	if ct.Values[0][0] != 200 {
		t.Errorf("Birmingham×Cardiology median = %f, want 200", ct.Values[0][0])
	}
	if ct.Values[1][1] != 600 {
		t.Errorf("Mobile×Oncology median = %f, want 600", ct.Values[1][1])
	}

	// Combinations with no observations fill with zero, not a gap.
	if ct.Values[0][1] != 0 || ct.Values[1][0] != 0 {
		t.Errorf("unobserved cells = %f/%f, want 0/0", ct.Values[0][1], ct.Values[1][0])
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, c := range cases {
		if got := median(c.in); got != c.want {
			t.Errorf("median(%v) = %f, want %f", c.in, got, c.want)
		}
	}
}
