// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"
	"golang.org/x/scalestat/scaling"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.scalestat { border-collapse: collapse; }
.scalestat th { text-align: left; border-bottom: 1px solid #666; }
.scalestat td { text-align: right; padding: 0em 1em; }
.scalestat td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<h2>Summary statistics</h2>
<ul>
<li>Matrix sizes tested: {{.Sizes}}
<li>Process counts tested: {{.Processes}}
<li>Total configurations: {{.Configurations}}
</ul>

<h2>Best performance metrics</h2>
<ul>
<li>Best speedup: {{.BestSpeedup.Speedup}}x ({{.BestSpeedup.Config}})
<li>Best efficiency: {{.BestEfficiency.Efficiency}} ({{.BestEfficiency.Config}})
</ul>

<h2>Performance by matrix size</h2>
<table class="scalestat">
<tr><th>matrix size<th>processes<th>mean time (s)<th>speedup<th>efficiency
{{- range .Rows}}
<tr><td>{{.Size}}<td>{{.Processes}}<td>{{.Mean}}<td>{{.Speedup}}<td>{{.Efficiency}}
{{- end}}
</table>

<h2>Scalability analysis</h2>
{{- if .Scalability}}
<table class="scalestat">
<tr><th>matrix size<th>processes<th>scaling efficiency
{{- range .Scalability}}
<tr><td>{{.Size}}<td>{{.Range}}<td>{{.Ratio}}
{{- end}}
</table>
{{- else}}
<p>No matrix size was tested at more than one process count.
{{- end}}
{{- if .Warnings}}

<h2>Warnings</h2>
<ul>
{{- range .Warnings}}
<li>{{.}}
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

type htmlRow struct {
	Size, Processes           int
	Mean, Speedup, Efficiency string
	Config                    string
}

type htmlScaling struct {
	Size         int
	Range, Ratio string
}

type htmlReport struct {
	Title                       string
	Sizes, Processes            string
	Configurations              int
	BestSpeedup, BestEfficiency htmlRow
	Rows                        []htmlRow
	Scalability                 []htmlScaling
	Warnings                    []string
}

func newHTMLRow(r scaling.SummaryRow, means map[scaling.Key]float64) htmlRow {
	mean := "-"
	if m, ok := means[r.Key]; ok {
		mean = fmt.Sprintf("%.4f", m)
	}
	return htmlRow{
		Size:       r.MatrixSize,
		Processes:  r.Processes,
		Mean:       mean,
		Speedup:    fmt.Sprintf("%.3f", r.Speedup),
		Efficiency: fmt.Sprintf("%.3f", r.Efficiency),
		Config:     r.Key.String(),
	}
}

// WriteHTML writes an HTML page presenting the same sections as the
// text report, plus mean execution times and any warnings.
func WriteHTML(w io.Writer, a *scaling.Analysis, title string) error {
	if len(a.Summary) == 0 {
		return ErrNoConfigurations
	}
	if title == "" {
		title = DefaultTitle
	}
	means := make(map[scaling.Key]float64, len(a.Parallel))
	for _, p := range a.Parallel {
		means[p.Key] = p.Mean
	}

	bs, _ := scaling.Best(a.Summary, scaling.Speedup)
	be, _ := scaling.Best(a.Summary, scaling.Efficiency)
	data := htmlReport{
		Title:          title,
		Sizes:          intList(scaling.Sizes(a.Summary)),
		Processes:      intList(scaling.ProcessCounts(a.Summary)),
		Configurations: len(a.Summary),
		BestSpeedup:    newHTMLRow(bs, means),
		BestEfficiency: newHTMLRow(be, means),
	}
	for _, g := range bySize(a.Summary) {
		for _, r := range g.rows {
			data.Rows = append(data.Rows, newHTMLRow(r, means))
		}
	}
	for _, s := range a.Scalability {
		data.Scalability = append(data.Scalability, htmlScaling{
			Size:  s.MatrixSize,
			Range: fmt.Sprintf("%d → %d", s.MinProcesses, s.MaxProcesses),
			Ratio: fmt.Sprintf("%.3f", s.ScalingEfficiency),
		})
	}
	for _, warn := range a.Warnings {
		data.Warnings = append(data.Warnings, warn.Error())
	}
	return htmlTemplate.Execute(w, data)
}
