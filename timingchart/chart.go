// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timingchart draws aggregated timing metrics against thread
// count and writes the charts as PNG images.
package timingchart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/alphabeta/timingplot/timingproc"
)

// Style selects how the spread of a series is drawn.
type Style int

const (
	// ErrorBars draws a capped bar of ±1 standard deviation at
	// each point.
	ErrorBars Style = iota
	// Band shades the ±1 standard deviation region around the
	// line.
	Band
)

func (s Style) String() string {
	switch s {
	case ErrorBars:
		return "errorbars"
	case Band:
		return "band"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the Style named s.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "errorbars":
		return ErrorBars, nil
	case "band":
		return Band, nil
	}
	return 0, fmt.Errorf("unknown chart style %q", s)
}

const (
	titleSize = 14
	labelSize = 12
	tickSize  = 10

	defaultWidth  = 6.4 * vg.Inch
	defaultHeight = 4.8 * vg.Inch
	defaultDPI    = 100

	bandAlpha = 0x40
)

// A Line is one series drawn in a panel.
type Line struct {
	// Label is the legend entry. An empty label has no entry.
	Label  string
	Series *timingproc.Series
}

// A Panel is one set of axes.
type Panel struct {
	Title string
	Lines []Line

	// Reference, if not nil, draws a dashed horizontal line at
	// this value and keeps it within the Y range.
	Reference *float64
}

// A Chart is a grid of panels sharing axis labels and style.
type Chart struct {
	Title          string
	XLabel, YLabel string
	Style          Style

	// Panels is indexed by row, then column. A chart with a single
	// panel uses Title as that panel's title. Otherwise Title is
	// drawn above the grid.
	Panels [][]*Panel

	// PowerLimits controls scientific notation on the Y axis. The
	// zero value means DefaultPowerLimits.
	PowerLimits PowerLimits

	// Width and Height are the size of each panel. Zero means
	// 6.4x4.8 inches.
	Width, Height vg.Length

	// DPI is the raster resolution. Zero means 100.
	DPI int
}

// Save renders c as a PNG file at path, replacing any existing file.
func (c *Chart) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// Render draws c and writes it to w as a PNG image.
func (c *Chart) Render(w io.Writer) error {
	rows, cols := len(c.Panels), 0
	nlines := 0
	for _, row := range c.Panels {
		if len(row) > cols {
			cols = len(row)
		}
		for _, pn := range row {
			if pn != nil && len(pn.Lines) > nlines {
				nlines = len(pn.Lines)
			}
		}
	}
	if rows == 0 || cols == 0 {
		return errors.New("chart has no panels")
	}
	colors, err := lineColors(nlines)
	if err != nil {
		return err
	}

	single := rows == 1 && cols == 1
	plots := make([][]*plot.Plot, rows)
	for j, row := range c.Panels {
		plots[j] = make([]*plot.Plot, cols)
		for i, pn := range row {
			if pn == nil {
				continue
			}
			title := pn.Title
			if single && title == "" {
				title = c.Title
			}
			if plots[j][i], err = c.newPlot(pn, title, colors); err != nil {
				return err
			}
		}
	}

	panelW, panelH := c.Width, c.Height
	if panelW == 0 {
		panelW = defaultWidth
	}
	if panelH == 0 {
		panelH = defaultHeight
	}
	dpi := c.DPI
	if dpi == 0 {
		dpi = defaultDPI
	}

	titleSty := plot.New().Title.TextStyle
	titleSty.Font.Size = titleSize + 2
	titlePad := vg.Points(6)
	var titleH vg.Length
	if !single && c.Title != "" {
		titleH = titleSty.Height(c.Title) + 2*titlePad
	}

	width := panelW * vg.Length(cols)
	height := panelH*vg.Length(rows) + titleH
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(img)

	if single {
		plots[0][0].Draw(dc)
	} else {
		if titleH > 0 {
			dc.FillText(titleSty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - titlePad}, c.Title)
		}
		body := draw.Crop(dc, 0, 0, 0, -titleH)
		tiles := draw.Tiles{
			Rows: rows, Cols: cols,
			PadX: vg.Points(12), PadY: vg.Points(12),
			PadTop: vg.Points(4), PadBottom: vg.Points(4),
			PadLeft: vg.Points(4), PadRight: vg.Points(4),
		}
		canvases := plot.Align(plots, tiles, body)
		for j := range plots {
			for i, p := range plots[j] {
				if p != nil {
					p.Draw(canvases[j][i])
				}
			}
		}
	}

	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

func (c *Chart) newPlot(pn *Panel, title string, colors []color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = titleSize
	p.X.Label.Text = c.XLabel
	p.X.Label.TextStyle.Font.Size = labelSize
	p.Y.Label.Text = c.YLabel
	p.Y.Label.TextStyle.Font.Size = labelSize
	p.X.Tick.Label.Font.Size = tickSize
	p.Y.Tick.Label.Font.Size = tickSize
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	threads := map[int]bool{}
	for i, ln := range pn.Lines {
		if ln.Series == nil {
			return nil, fmt.Errorf("panel %q: line %q has no series", pn.Title, ln.Label)
		}
		for _, th := range ln.Series.Threads {
			threads[th] = true
		}
		pts, errs := points(ln.Series)
		if len(pts) == 0 {
			// Nothing drawable.
			continue
		}
		clr := colors[i]

		if c.Style == Band {
			band, err := bandPolygon(pts, errs)
			if err != nil {
				return nil, err
			}
			band.Color = fade(clr)
			band.LineStyle.Width = 0
			p.Add(band)
		}

		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = clr
		line.Width = vg.Points(1.5)
		scatter.Color = clr
		scatter.Shape = draw.CircleGlyph{}
		scatter.Radius = vg.Points(2.5)
		p.Add(line, scatter)

		if c.Style == ErrorBars {
			bars, err := plotter.NewYErrorBars(errorPoints{pts, errs})
			if err != nil {
				return nil, err
			}
			bars.Color = clr
			bars.CapWidth = vg.Points(4)
			p.Add(bars)
		}

		if ln.Label != "" {
			p.Legend.Add(ln.Label, line, scatter)
		}
	}

	if pn.Reference != nil {
		ref := *pn.Reference
		fn := plotter.NewFunction(func(float64) float64 { return ref })
		fn.Color = color.Black
		fn.Width = vg.Points(1)
		fn.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(fn)
		// Force the reference onto the graph.
		if p.Y.Min > ref {
			p.Y.Min = ref
		}
		if p.Y.Max < ref {
			p.Y.Max = ref
		}
	}

	ths := make([]int, 0, len(threads))
	for th := range threads {
		ths = append(ths, th)
	}
	sort.Ints(ths)
	p.X.Tick.Marker = threadTicks(ths)

	limits := c.PowerLimits
	if limits == (PowerLimits{}) {
		limits = DefaultPowerLimits
	}
	exp := limits.exponent(p.Y.Min, p.Y.Max)
	p.Y.Tick.Marker = sciTicks{exp}
	if exp != 0 {
		p.Y.Label.Text = fmt.Sprintf("%s (×10^%d)", p.Y.Label.Text, exp)
	}
	return p, nil
}

// errorPoints pairs means with their symmetric errors for
// plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// points returns the drawable points of s. Points with a non-finite
// mean are dropped and a non-finite standard deviation draws as 0.
func points(s *timingproc.Series) (plotter.XYs, plotter.YErrors) {
	pts := make(plotter.XYs, 0, len(s.Threads))
	errs := make(plotter.YErrors, 0, len(s.Threads))
	for i, th := range s.Threads {
		m, sd := s.Mean[i], s.StdDev[i]
		if !finite(m) {
			continue
		}
		if !finite(sd) {
			sd = 0
		}
		pts = append(pts, plotter.XY{X: float64(th), Y: m})
		errs = append(errs, struct{ Low, High float64 }{sd, sd})
	}
	return pts, errs
}

// bandPolygon returns the region between mean-error and mean+error.
func bandPolygon(pts plotter.XYs, errs plotter.YErrors) (*plotter.Polygon, error) {
	ring := make(plotter.XYs, 0, 2*len(pts))
	for i, pt := range pts {
		ring = append(ring, plotter.XY{X: pt.X, Y: pt.Y + errs[i].High})
	}
	for i := len(pts) - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: pts[i].X, Y: pts[i].Y - errs[i].Low})
	}
	return plotter.NewPolygon(ring)
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// lineColors returns n distinguishable colors, cycling if n is larger
// than the palette.
func lineColors(n int) ([]color.Color, error) {
	k := n
	if k < 3 {
		k = 3
	}
	if k > 9 {
		k = 9
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", k)
	if err != nil {
		return nil, err
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}

func fade(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = bandAlpha
	return n
}
