// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws the standard set of scaling charts for a
// scaling.Analysis:
//
//	execution_times         mean time against matrix size, serial and per process count
//	speedup_efficiency      speedup and efficiency against process count, per matrix size
//	scalability_heatmap     speedup and efficiency for every matrix size and process count
//	performance_comparison  one speedup bar per configuration
//
// Each chart is written once per requested format.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"golang.org/x/net/context"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"golang.org/x/scalestat/scaling"
	"golang.org/x/scalestat/storage/fs"
)

// DefaultDPI is the PNG resolution used when Renderer.DPI is zero.
const DefaultDPI = 300

// Formats lists the supported output formats.
var Formats = []string{"png", "svg", "pdf"}

// ErrNoData is returned by Render when the analysis has nothing to plot.
var ErrNoData = errors.New("chart: analysis has no parallel configurations")

// A Renderer writes charts to a file system.
type Renderer struct {
	FS fs.FS

	// Formats lists the file formats to write each chart in.
	// Empty means png only.
	Formats []string

	// DPI is the resolution of PNG output. Zero means DefaultDPI.
	DPI int
}

// A chart is one named figure.
type chart struct {
	name          string
	width, height vg.Length
	draw          func(dc draw.Canvas)
}

// Render draws every chart for a and returns the names of the files
// it wrote, in the order written.
func (r *Renderer) Render(ctx context.Context, a *scaling.Analysis) ([]string, error) {
	if len(a.Parallel) == 0 || len(a.Summary) == 0 {
		return nil, ErrNoData
	}
	formats := r.Formats
	if len(formats) == 0 {
		formats = []string{"png"}
	}
	for _, f := range formats {
		if !supported(f) {
			return nil, fmt.Errorf("chart: unknown format %q", f)
		}
	}

	charts, err := build(a)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, c := range charts {
		for _, f := range formats {
			name := c.name + "." + f
			if err := r.write(ctx, name, f, c); err != nil {
				return written, fmt.Errorf("writing %s: %w", name, err)
			}
			written = append(written, name)
		}
	}
	return written, nil
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func (r *Renderer) write(ctx context.Context, name, format string, c chart) error {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	var can vg.CanvasWriterTo
	switch format {
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(c.width, c.height),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(c.width, c.height)
	case "pdf":
		can = vgpdf.New(c.width, c.height)
	}
	c.draw(draw.New(can))

	w, err := r.FS.NewWriter(ctx, name, map[string]string{"chart": c.name})
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(w); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}

func build(a *scaling.Analysis) ([]chart, error) {
	var charts []chart
	for _, f := range []func(*scaling.Analysis) (chart, error){
		executionTimes,
		speedupEfficiency,
		scalabilityHeatmap,
		performanceComparison,
	} {
		c, err := f(a)
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}

// single wraps a plot as a full-canvas chart.
func single(name string, p *plot.Plot, width, height vg.Length) chart {
	return chart{name: name, width: width, height: height, draw: p.Draw}
}

// pair lays out two plots side by side on one canvas.
func pair(name string, left, right *plot.Plot) chart {
	plots := [][]*plot.Plot{{left, right}}
	return chart{
		name:   name,
		width:  30 * vg.Centimeter,
		height: 12 * vg.Centimeter,
		draw: func(dc draw.Canvas) {
			t := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Centimeter, PadTop: vg.Millimeter, PadBottom: vg.Millimeter}
			cs := plot.Align(plots, t, dc)
			for j, p := range plots[0] {
				p.Draw(cs[0][j])
			}
		},
	}
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

func executionTimes(a *scaling.Analysis) (chart, error) {
	serial := newPlot("Serial Matrix Multiplication Performance", "Matrix size", "Execution time (s)")
	serial.Add(plotter.NewGrid())
	xys := make(plotter.XYs, len(a.Serial))
	for i, s := range a.Serial {
		xys[i] = plotter.XY{X: float64(s.MatrixSize), Y: s.Mean}
	}
	if err := plotutil.AddLinePoints(serial, "Serial", xys); err != nil {
		return chart{}, err
	}

	parallel := newPlot("MPI Matrix Multiplication Performance", "Matrix size", "Execution time (s)")
	parallel.Add(plotter.NewGrid())
	byProcs := make(map[int]plotter.XYs)
	for _, avg := range a.Parallel {
		byProcs[avg.Processes] = append(byProcs[avg.Processes], plotter.XY{X: float64(avg.MatrixSize), Y: avg.Mean})
	}
	var args []interface{}
	for _, n := range sortedKeys(byProcs) {
		args = append(args, fmt.Sprintf("%d processes", n), byProcs[n])
	}
	if err := plotutil.AddLinePoints(parallel, args...); err != nil {
		return chart{}, err
	}
	return pair("execution_times", serial, parallel), nil
}

func speedupEfficiency(a *scaling.Analysis) (chart, error) {
	procs := scaling.ProcessCounts(a.Summary)
	hi := float64(procs[len(procs)-1])

	sp := newPlot("Speedup vs Number of Processes", "Number of processes", "Speedup")
	sp.Add(plotter.NewGrid())
	ef := newPlot("Efficiency vs Number of Processes", "Number of processes", "Efficiency")
	ef.Legend.Left = false
	ef.Y.Min, ef.Y.Max = 0, 1.1
	ef.Add(plotter.NewGrid())

	var spArgs, efArgs []interface{}
	for _, g := range bySize(a.Summary) {
		var s, e plotter.XYs
		for _, r := range g.rows {
			s = append(s, plotter.XY{X: float64(r.Processes), Y: r.Speedup})
			e = append(e, plotter.XY{X: float64(r.Processes), Y: r.Efficiency})
		}
		label := "Size " + strconv.Itoa(g.size)
		spArgs = append(spArgs, label, s)
		efArgs = append(efArgs, label, e)
	}
	if err := plotutil.AddLinePoints(sp, spArgs...); err != nil {
		return chart{}, err
	}
	if err := plotutil.AddLinePoints(ef, efArgs...); err != nil {
		return chart{}, err
	}

	ideal, err := idealLine(plotter.XYs{{X: 1, Y: 1}, {X: hi, Y: hi}})
	if err != nil {
		return chart{}, err
	}
	sp.Add(ideal)
	sp.Legend.Add("Ideal speedup", ideal)
	if ideal, err = idealLine(plotter.XYs{{X: 1, Y: 1}, {X: hi, Y: 1}}); err != nil {
		return chart{}, err
	}
	ef.Add(ideal)
	ef.Legend.Add("Ideal efficiency", ideal)
	return pair("speedup_efficiency", sp, ef), nil
}

func idealLine(xys plotter.XYs) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.Color = color.Gray{Y: 0x60}
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return l, nil
}

// grid is a plotter.GridXYZ of one metric with process counts as
// columns and matrix sizes as rows. Missing cells are NaN.
type grid struct {
	procs, sizes []int
	z            [][]float64 // [row][col]
}

func newGrid(rows []scaling.SummaryRow, m scaling.Metric) *grid {
	g := &grid{procs: scaling.ProcessCounts(rows), sizes: scaling.Sizes(rows)}
	col := index(g.procs)
	row := index(g.sizes)
	g.z = make([][]float64, len(g.sizes))
	for i := range g.z {
		g.z[i] = make([]float64, len(g.procs))
		for j := range g.z[i] {
			g.z[i][j] = math.NaN()
		}
	}
	for _, r := range rows {
		g.z[row[r.MatrixSize]][col[r.Processes]] = m.Value(r)
	}
	return g
}

func (g *grid) Dims() (c, r int)   { return len(g.procs), len(g.sizes) }
func (g *grid) Z(c, r int) float64 { return g.z[r][c] }
func (g *grid) X(c int) float64    { return float64(c) }
func (g *grid) Y(r int) float64    { return float64(r) }

// max returns the largest value in the grid, and at least 1.
func (g *grid) max() float64 {
	m := 1.0
	for _, row := range g.z {
		for _, z := range row {
			if !math.IsNaN(z) {
				m = math.Max(m, z)
			}
		}
	}
	return m
}

func heatmap(title string, g *grid, pal palette.Palette) (*plot.Plot, error) {
	hm := plotter.NewHeatMap(g, pal)
	hm.NaN = color.Gray{Y: 0xdd}
	// Pin the color range so a uniform grid still maps onto the palette.
	hm.Min, hm.Max = 0, g.max()

	p := newPlot(title, "Number of processes", "Matrix size")
	p.Add(hm)

	var labels plotter.XYLabels
	for r := range g.sizes {
		for c := range g.procs {
			if z := g.z[r][c]; !math.IsNaN(z) {
				labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
				labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", z))
			}
		}
	}
	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = draw.XCenter
			l.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(l)
	}
	p.NominalX(itoas(g.procs)...)
	p.NominalY(itoas(g.sizes)...)
	return p, nil
}

func scalabilityHeatmap(a *scaling.Analysis) (chart, error) {
	sp, err := heatmap("Speedup Heatmap", newGrid(a.Summary, scaling.Speedup), palette.Heat(64, 1))
	if err != nil {
		return chart{}, err
	}
	ef, err := heatmap("Efficiency Heatmap", newGrid(a.Summary, scaling.Efficiency),
		palette.Rainbow(64, palette.Yellow, palette.Blue, 0.8, 0.9, 1))
	if err != nil {
		return chart{}, err
	}
	return pair("scalability_heatmap", sp, ef), nil
}

// performanceComparison draws one bar per summary row, in summary
// order, colored by process count and labelled with its speedup.
func performanceComparison(a *scaling.Analysis) (chart, error) {
	p := newPlot("Speedup Comparison Across All Configurations", "Configuration (matrix size, processes)", "Speedup")
	lines := plotter.NewGrid()
	lines.Vertical.Color = nil
	p.Add(lines)

	shade := index(scaling.ProcessCounts(a.Summary))
	seen := make(map[int]bool)
	var (
		names  []string
		labels plotter.XYLabels
	)
	for i, r := range a.Summary {
		bars, err := plotter.NewBarChart(plotter.Values{r.Speedup}, vg.Points(20))
		if err != nil {
			return chart{}, err
		}
		bars.XMin = float64(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(shade[r.Processes])
		p.Add(bars)
		if !seen[r.Processes] {
			seen[r.Processes] = true
			p.Legend.Add(fmt.Sprintf("%d processes", r.Processes), bars)
		}
		names = append(names, fmt.Sprintf("(%d, %d)", r.MatrixSize, r.Processes))
		labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: r.Speedup})
		labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", r.Speedup))
	}

	l, err := plotter.NewLabels(labels)
	if err != nil {
		return chart{}, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YBottom
	}
	l.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(l)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = -math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XLeft
	p.X.Tick.Label.YAlign = draw.YTop
	return single("performance_comparison", p, 24*vg.Centimeter, 16*vg.Centimeter), nil
}

type sizeGroup struct {
	size int
	rows []scaling.SummaryRow
}

// bySize groups rows by matrix size, each group sorted by process count.
func bySize(rows []scaling.SummaryRow) []sizeGroup {
	groups := make(map[int][]scaling.SummaryRow)
	for _, r := range rows {
		groups[r.MatrixSize] = append(groups[r.MatrixSize], r)
	}
	var out []sizeGroup
	for _, size := range scaling.Sizes(rows) {
		g := groups[size]
		sort.SliceStable(g, func(i, j int) bool { return g[i].Processes < g[j].Processes })
		out = append(out, sizeGroup{size, g})
	}
	return out
}

func sortedKeys(m map[int]plotter.XYs) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func index(xs []int) map[int]int {
	m := make(map[int]int, len(xs))
	for i, x := range xs {
		m[x] = i
	}
	return m
}

func itoas(xs []int) []string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = strconv.Itoa(x)
	}
	return s
}
