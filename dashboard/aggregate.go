package main

import "sort"

// The three aggregate views are pure projections of the harmonized record
// set: no view mutates the records or any state shared with another view,
// and identical input yields byte-identical output.

// FlowLink is one weighted edge between two node indices of a FlowView.
type FlowLink struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// FlowView is the two-stage flow decomposition payer → category → city.
// Nodes are indexed in first-seen order across the concatenation of the
// three dimension columns; links exist only between adjacent stages — no
// payer→city mass is ever computed directly.
type FlowView struct {
	Nodes []string   `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// flowStages are the dimension accessors, in stage order.
var flowStages = []func(Record) string{
	func(r Record) string { return r.PayerType },
	func(r Record) string { return r.ProcCategory },
	func(r Record) string { return r.ProviderCity },
}

func buildFlowView(records []Record) FlowView {
	var view FlowView
	nodeIdx := make(map[string]int)
	for _, dim := range flowStages {
		for _, r := range records {
			v := dim(r)
			if v == "" {
				continue
			}
			if _, ok := nodeIdx[v]; !ok {
				nodeIdx[v] = len(view.Nodes)
				view.Nodes = append(view.Nodes, v)
			}
		}
	}

	for i := 0; i+1 < len(flowStages); i++ {
		a, b := flowStages[i], flowStages[i+1]

		sums := make(map[[2]string]float64)
		for _, r := range records {
			key := [2]string{a(r), b(r)}
			if key[0] == "" || key[1] == "" {
				continue
			}
			v, _ := chargeValue(r) // nil charge sums as zero
			sums[key] += v
		}

		keys := make([][2]string, 0, len(sums))
		for k := range sums {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(x, y int) bool {
			if keys[x][0] != keys[y][0] {
				return keys[x][0] < keys[y][0]
			}
			return keys[x][1] < keys[y][1]
		})

		for _, k := range keys {
			view.Links = append(view.Links, FlowLink{
				Source: nodeIdx[k[0]],
				Target: nodeIdx[k[1]],
				Value:  sums[k],
			})
		}
	}
	return view
}

// HierarchyGroup is one leaf of the category → subcategory → payer path
// with its summed charge.
type HierarchyGroup struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Payer       string  `json:"payer"`
	Total       float64 `json:"total"`
}

// buildHierarchyView sums charge by the three-level path, sorted
// lexicographically so containment stays stable for nested-proportion
// rendering.
func buildHierarchyView(records []Record) []HierarchyGroup {
	sums := make(map[[3]string]float64)
	for _, r := range records {
		key := [3]string{r.ProcCategory, r.ProcSubcategory, r.PayerType}
		if key[0] == "" || key[1] == "" || key[2] == "" {
			continue
		}
		v, _ := chargeValue(r)
		sums[key] += v
	}

	keys := make([][3]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(x, y int) bool {
		for i := 0; i < 3; i++ {
			if keys[x][i] != keys[y][i] {
				return keys[x][i] < keys[y][i]
			}
		}
		return false
	})

	groups := make([]HierarchyGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, HierarchyGroup{
			Category:    k[0],
			Subcategory: k[1],
			Payer:       k[2],
			Total:       sums[k],
		})
	}
	return groups
}

// CrossTab is the dense city × category matrix of median charges. Every
// (city, category) combination in either axis's domain has a cell; cells
// with no observations hold zero — absent billing activity is modeled as
// zero cost, not unknown.
type CrossTab struct {
	Cities     []string    `json:"cities"`
	Categories []string    `json:"categories"`
	Values     [][]float64 `json:"values"` // Values[city][category]
}

func buildCrossTab(records []Record) CrossTab {
	byCell := make(map[[2]string][]float64)
	citySet := make(map[string]bool)
	catSet := make(map[string]bool)
	for _, r := range records {
		if r.ProcCategory == "" {
			continue
		}
		citySet[r.ProviderCity] = true
		catSet[r.ProcCategory] = true
		if v, ok := chargeValue(r); ok {
			key := [2]string{r.ProviderCity, r.ProcCategory}
			byCell[key] = append(byCell[key], v)
		}
	}

	ct := CrossTab{
		Cities:     sortedKeys(citySet),
		Categories: sortedKeys(catSet),
	}
	ct.Values = make([][]float64, len(ct.Cities))
	for i, city := range ct.Cities {
		ct.Values[i] = make([]float64, len(ct.Categories))
		for j, cat := range ct.Categories {
			ct.Values[i][j] = median(byCell[[2]string{city, cat}])
		}
	}
	return ct
}

// median of the values, zero when there are none. Even counts average the
// two middle values.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
