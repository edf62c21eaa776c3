package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// figurePage renders one standalone chart artifact: a complete document
// that embeds its own reference to the rendering library, viewable without
// the combined dashboard.
func figurePage(title string, fig Figure) ([]byte, error) {
	js, err := fig.JSON()
	if err != nil {
		return nil, err
	}
	data := struct {
		Title     string
		PlotlyURL string
		Figure    template.JS
		Config    template.JS
	}{
		Title:     title,
		PlotlyURL: plotlyURL,
		Figure:    template.JS(js),
		Config:    template.JS(plotlyConfig),
	}
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "figure.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}
	return buf.Bytes(), nil
}

// dashboardPage composes the three chart bodies plus the optional KPI block
// into one document. The rendering library is referenced once in the head;
// the chart bodies never re-embed it.
func dashboardPage(sankey, treemap, heatmap Figure, kpi []kpiEntry) ([]byte, error) {
	figs := make([]template.JS, 0, 3)
	for _, f := range []Figure{sankey, treemap, heatmap} {
		js, err := f.JSON()
		if err != nil {
			return nil, err
		}
		figs = append(figs, template.JS(js))
	}
	data := struct {
		PlotlyURL string
		Config    template.JS
		KPI       []kpiEntry
		Sankey    template.JS
		Treemap   template.JS
		Heatmap   template.JS
	}{
		PlotlyURL: plotlyURL,
		Config:    template.JS(plotlyConfig),
		KPI:       kpi,
		Sankey:    figs[0],
		Treemap:   figs[1],
		Heatmap:   figs[2],
	}
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "dashboard.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// writePage writes a rendered document, creating or truncating the target.
func writePage(path string, contents []byte) error {
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
