package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Plotly figure documents. Each Figure marshals to the {data, layout} JSON
// Plotly.newPlot consumes; the rendering library itself is never embedded
// here — pages reference the shared Plotly.js build from its CDN.

// plotlyURL is the shared rendering-library reference every artifact uses.
const plotlyURL = "https://cdn.plot.ly/plotly-2.26.0.min.js"

// plotlyConfig hides the Plotly logo but keeps the mode bar, on every chart.
const plotlyConfig = `{"displayModeBar": true, "displaylogo": false}`

// plotlyPalette is Plotly's default qualitative color sequence, used to
// color treemap sectors by their root category.
var plotlyPalette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

type Figure struct {
	Data   []any  `json:"data"`
	Layout Layout `json:"layout"`
}

// JSON marshals the figure. Marshaling a fixed struct shape keeps the
// output byte-identical for identical views.
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshal figure: %w", err)
	}
	return string(b), nil
}

type Layout struct {
	Title  Title   `json:"title"`
	Font   *Font   `json:"font,omitempty"`
	Height int     `json:"height"`
	Margin *Margin `json:"margin,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Size int `json:"size"`
}

type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

type sankeyTrace struct {
	Type string     `json:"type"`
	Node sankeyNode `json:"node"`
	Link sankeyLink `json:"link"`
}

type sankeyNode struct {
	Label     []string `json:"label"`
	Pad       int      `json:"pad"`
	Thickness int      `json:"thickness"`
	Color     string   `json:"color"`
}

type sankeyLink struct {
	Source []int     `json:"source"`
	Target []int     `json:"target"`
	Value  []float64 `json:"value"`
}

// sankeyFigure renders the flow view as a Sankey diagram.
func sankeyFigure(view FlowView) Figure {
	link := sankeyLink{
		Source: make([]int, 0, len(view.Links)),
		Target: make([]int, 0, len(view.Links)),
		Value:  make([]float64, 0, len(view.Links)),
	}
	for _, l := range view.Links {
		link.Source = append(link.Source, l.Source)
		link.Target = append(link.Target, l.Target)
		link.Value = append(link.Value, l.Value)
	}
	return Figure{
		Data: []any{sankeyTrace{
			Type: "sankey",
			Node: sankeyNode{
				Label:     view.Nodes,
				Pad:       15,
				Thickness: 15,
				Color:     "rgba(44,160,101,0.8)",
			},
			Link: link,
		}},
		Layout: Layout{
			Title:  Title{Text: "Medical-Charge Flow: Payer → Procedure → City"},
			Font:   &Font{Size: 12},
			Height: 550,
		},
	}
}

type treemapTrace struct {
	Type         string         `json:"type"`
	BranchValues string         `json:"branchvalues"`
	IDs          []string       `json:"ids"`
	Labels       []string       `json:"labels"`
	Parents      []string       `json:"parents"`
	Values       []float64      `json:"values"`
	Marker       *treemapMarker `json:"marker,omitempty"`
	Root         *treemapRoot   `json:"root,omitempty"`
}

type treemapMarker struct {
	Colors []string `json:"colors"`
}

type treemapRoot struct {
	Color string `json:"color"`
}

// treemapFigure renders the hierarchy view as nested proportions: category
// sectors contain subcategory sectors contain payer leaves. Sector values
// sum bottom-up so branchvalues stays "total".
func treemapFigure(groups []HierarchyGroup) Figure {
	trace := treemapTrace{
		Type:         "treemap",
		BranchValues: "total",
		Root:         &treemapRoot{Color: "lightgrey"},
	}

	catColor := make(map[string]string)
	addSector := func(id, label, parent, category string, value float64) {
		trace.IDs = append(trace.IDs, id)
		trace.Labels = append(trace.Labels, label)
		trace.Parents = append(trace.Parents, parent)
		trace.Values = append(trace.Values, value)
		if _, ok := catColor[category]; !ok {
			catColor[category] = plotlyPalette[len(catColor)%len(plotlyPalette)]
		}
	}

	// Groups arrive sorted by (category, subcategory, payer), so parent
	// sectors can be emitted on first sight of each prefix.
	catTotals := make(map[string]float64)
	subTotals := make(map[string]float64)
	for _, g := range groups {
		catTotals[g.Category] += g.Total
		subTotals[g.Category+"/"+g.Subcategory] += g.Total
	}

	var lastCat, lastSub string
	for _, g := range groups {
		subID := g.Category + "/" + g.Subcategory
		if g.Category != lastCat {
			addSector(g.Category, g.Category, "", g.Category, catTotals[g.Category])
			lastCat = g.Category
			lastSub = ""
		}
		if subID != lastSub {
			addSector(subID, g.Subcategory, g.Category, g.Category, subTotals[subID])
			lastSub = subID
		}
		addSector(subID+"/"+g.Payer, g.Payer, subID, g.Category, g.Total)
	}

	marker := &treemapMarker{Colors: make([]string, len(trace.IDs))}
	for i, id := range trace.IDs {
		cat := id
		if cut := strings.IndexByte(id, '/'); cut >= 0 {
			cat = id[:cut]
		}
		marker.Colors[i] = catColor[cat]
	}
	trace.Marker = marker

	return Figure{
		Data: []any{trace},
		Layout: Layout{
			Title:  Title{Text: "Charge Distribution by Procedure Hierarchy"},
			Height: 550,
			Margin: &Margin{T: 50, L: 25, R: 25, B: 25},
		},
	}
}

type heatmapTrace struct {
	Type       string      `json:"type"`
	Z          [][]float64 `json:"z"`
	X          []string    `json:"x"`
	Y          []string    `json:"y"`
	Colorscale string      `json:"colorscale"`
	Colorbar   *colorbar   `json:"colorbar,omitempty"`
}

type colorbar struct {
	Title Title `json:"title"`
}

// heatmapFigure renders the cross-tab view: cities down the y-axis,
// categories across the x-axis, median charge as color.
func heatmapFigure(ct CrossTab) Figure {
	return Figure{
		Data: []any{heatmapTrace{
			Type:       "heatmap",
			Z:          ct.Values,
			X:          ct.Categories,
			Y:          ct.Cities,
			Colorscale: "Viridis",
			Colorbar:   &colorbar{Title: Title{Text: "Median Charge (USD)"}},
		}},
		Layout: Layout{
			Title:  Title{Text: "Median Charge by City & Procedure Category"},
			Height: 550,
			Margin: &Margin{T: 50, L: 25, R: 25, B: 25},
		},
	}
}
