package main

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// kpiEntry is one formatted row of the Key Metrics table.
type kpiEntry struct {
	Name  string
	Value string
}

// readKPI loads the optional scalar-KPI file. The KPI block is best-effort:
// a missing file, unreadable JSON, or a non-numeric value all return nil so
// the dashboard renders without the block. Keys are sorted for a stable
// table.
func readKPI(path string) []kpiEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := message.NewPrinter(language.English)
	entries := make([]kpiEntry, 0, len(keys))
	for _, k := range keys {
		v, ok := raw[k].(float64)
		if !ok {
			return nil
		}
		var formatted string
		if v == math.Trunc(v) {
			formatted = p.Sprintf("%.0f", v)
		} else {
			formatted = p.Sprintf("%.2f", v)
		}
		entries = append(entries, kpiEntry{Name: k, Value: formatted})
	}
	return entries
}
