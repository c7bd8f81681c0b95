// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNothingToDraw is returned when a map without shapes is drawn.
var ErrNothingToDraw = errors.New("hexmap: map has no shapes to draw")

// Shape is a drawable hexagon: its polygon, how it is filled,
// and the text drawn at Anchor.
type Shape struct {
	Polygon geom.Polygon

	// Fill is the fill color. A nil Fill leaves the shape unfilled.
	Fill color.Color

	// Label is drawn centered on Anchor. An empty Label is not drawn.
	Label  string
	Anchor geom.Point
}

// CategoricalShapes returns a shape for each cell, labeled with
// the cell's code, or with its ID if it has no code.
func CategoricalShapes(cells []Cell) []Shape {
	o := make([]Shape, len(cells))
	for i, c := range cells {
		o[i] = Shape{
			Polygon: c.Geom(),
			Fill:    c.Fill,
			Label:   c.Label(),
			Anchor:  c.Point,
		}
	}
	return o
}

// Shapes returns a shape for each cell in the receiver, labeled
// with the cell's code. Cells without a code are not labeled.
func (l *Layer) Shapes() []Shape {
	o := make([]Shape, len(l.Cells))
	for i, c := range l.Cells {
		o[i] = Shape{
			Polygon: c.Geom(),
			Fill:    c.Fill,
			Anchor:  c.Point,
		}
		if c.HasCode {
			o[i].Label = c.Code
		}
	}
	return o
}

// Scale returns the color scale of the receiver, for drawing a
// color bar. name is the colormap name that colorize was
// created from.
func (l *Layer) Scale(name, label string, colorize ColorFunc) *Scale {
	return &Scale{
		Name:  name,
		Label: label,
		Min:   l.Min,
		Max:   l.Max,
		Color: colorize,
	}
}

// Map is everything that is drawn in one image.
type Map struct {
	Title  string
	Shapes []Shape

	// Outlines are drawn over the shapes with a heavier line.
	// They are typically created by RegionOutlines.
	Outlines map[string]geom.Polygon

	// Scale, if not nil, adds a color bar below the map.
	Scale *Scale
}

// RenderOptions control how a Map is drawn.
type RenderOptions struct {
	// Width and Height are the figure dimensions.
	Width, Height vg.Length

	// DPI is the resolution of the image.
	DPI int

	// Margin is the fraction of the map extent left blank
	// on each side of the map.
	Margin float64

	EdgeColor    color.Color
	EdgeWidth    vg.Length
	OutlineWidth vg.Length

	// Labels specifies whether shape labels are drawn.
	Labels     bool
	LabelColor color.Color

	// FontSize is the label font size in points. The title is
	// drawn at twice this size.
	FontSize float64
}

// DefaultRenderOptions returns options for a 20 cm square figure
// with thin black hexagon edges and small labels.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:        20 * vg.Centimeter,
		Height:       20 * vg.Centimeter,
		DPI:          150,
		Margin:       0.05,
		EdgeColor:    color.Black,
		EdgeWidth:    0.5,
		OutlineWidth: 1.5,
		Labels:       true,
		LabelColor:   color.Black,
		FontSize:     6,
	}
}

const (
	legendHeight = 1.5 * vg.Centimeter
	barSamples   = 100
)

// Draw draws m onto a new image canvas.
func Draw(m *Map, opts RenderOptions) (*vgimg.Canvas, error) {
	if len(m.Shapes) == 0 {
		return nil, ErrNothingToDraw
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		return nil, fmt.Errorf("hexmap: invalid figure size %v×%v at %d dpi", opts.Width, opts.Height, opts.DPI)
	}

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	dc := draw.New(img)

	var texts []text
	var titleHeight vg.Length
	if m.Title != "" {
		titleHeight = vg.Length(opts.FontSize * 4)
		texts = append(texts, text{
			s:    m.Title,
			at:   vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - titleHeight/2},
			size: opts.FontSize * 2,
		})
		dc = draw.Crop(dc, 0, 0, 0, -titleHeight)
	}
	var legendc draw.Canvas
	if m.Scale != nil {
		legendc = draw.Crop(dc, 0, 0, 0, legendHeight-dc.Max.Y+dc.Min.Y)
		dc = draw.Crop(dc, 0, 0, legendHeight, 0)
	}

	v := newViewport(m.Shapes, dc, opts.Margin)
	edge := draw.LineStyle{Color: opts.EdgeColor, Width: opts.EdgeWidth}
	for _, s := range m.Shapes {
		for _, ring := range s.Polygon {
			pts := v.ring(ring)
			if s.Fill != nil {
				dc.FillPolygon(s.Fill, pts)
			}
			if opts.EdgeColor != nil && opts.EdgeWidth > 0 {
				dc.StrokeLines(edge, pts)
			}
		}
		if opts.Labels && s.Label != "" {
			texts = append(texts, text{s: s.Label, at: v.point(s.Anchor), size: opts.FontSize})
		}
	}

	if len(m.Outlines) > 0 {
		codes := make([]string, 0, len(m.Outlines))
		for code := range m.Outlines {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		outline := draw.LineStyle{Color: opts.EdgeColor, Width: opts.OutlineWidth}
		for _, code := range codes {
			for _, ring := range m.Outlines[code] {
				dc.StrokeLines(outline, v.ring(ring))
			}
		}
	}

	if m.Scale != nil {
		st, err := drawScale(legendc, m.Scale, opts.FontSize)
		if err != nil {
			return nil, fmt.Errorf("hexmap: drawing color scale: %w", err)
		}
		texts = append(texts, st...)
	}

	drawTexts(img, texts, opts)
	return img, nil
}

// Render draws m and writes it to w as a PNG image.
func Render(w io.Writer, m *Map, opts RenderOptions) error {
	img, err := Draw(m, opts)
	if err != nil {
		return err
	}
	pngc := vgimg.PngCanvas{Canvas: img}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("hexmap: writing png: %w", err)
	}
	return nil
}

// viewport maps grid coordinates onto a canvas, keeping the
// aspect ratio and centering the map.
type viewport struct {
	b      *geom.Bounds
	scale  float64
	origin vg.Point
}

func newViewport(shapes []Shape, dc draw.Canvas, margin float64) viewport {
	b := geom.NewBounds()
	for _, s := range shapes {
		for _, ring := range s.Polygon {
			for _, p := range ring {
				b.Extend(p.Bounds())
			}
		}
	}
	w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	b.Min.X -= w * margin
	b.Max.X += w * margin
	b.Min.Y -= h * margin
	b.Max.Y += h * margin
	w, h = b.Max.X-b.Min.X, b.Max.Y-b.Min.Y

	cw, ch := float64(dc.Max.X-dc.Min.X), float64(dc.Max.Y-dc.Min.Y)
	scale := math.Min(cw/w, ch/h)
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}
	return viewport{
		b:     b,
		scale: scale,
		origin: vg.Point{
			X: dc.Min.X + vg.Length((cw-w*scale)/2),
			Y: dc.Min.Y + vg.Length((ch-h*scale)/2),
		},
	}
}

func (v viewport) point(p geom.Point) vg.Point {
	return vg.Point{
		X: v.origin.X + vg.Length((p.X-v.b.Min.X)*v.scale),
		Y: v.origin.Y + vg.Length((p.Y-v.b.Min.Y)*v.scale),
	}
}

// ring returns the closed canvas path of r.
func (v viewport) ring(r []geom.Point) []vg.Point {
	pts := make([]vg.Point, 0, len(r)+1)
	for _, p := range r {
		pts = append(pts, v.point(p))
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		pts = append(pts, pts[0])
	}
	return pts
}

// drawScale draws a color bar for s onto c and returns the
// texts that go with it. The bar is labeled with the minimum and
// maximum of s. If s has no color function, the one named by
// s.Name is used.
func drawScale(c draw.Canvas, s *Scale, fontSize float64) ([]text, error) {
	colorize := s.Color
	if colorize == nil {
		var err error
		if colorize, err = Colormap(s.Name); err != nil {
			return nil, err
		}
	}

	pad := vg.Length(fontSize * 2)
	x0, x1 := c.Min.X+pad, c.Max.X-pad
	y1 := c.Max.Y - vg.Length(fontSize)
	y0 := y1 - (c.Max.Y-c.Min.Y)/3
	dx := (x1 - x0) / barSamples
	for i := 0; i < barSamples; i++ {
		v := s.Min + (s.Max-s.Min)*(float64(i)+0.5)/barSamples
		x := x0 + vg.Length(i)*dx
		c.FillPolygon(colorize(v, s.Min, s.Max), []vg.Point{
			{X: x, Y: y0}, {X: x + dx, Y: y0}, {X: x + dx, Y: y1}, {X: x, Y: y1},
		})
	}
	c.StrokeLines(draw.LineStyle{Color: color.Black, Width: 0.5}, []vg.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	})

	ty := y0 - vg.Length(fontSize)
	o := []text{
		{s: fmt.Sprintf("%.4g", s.Min), at: vg.Point{X: x0, Y: ty}, size: fontSize},
		{s: fmt.Sprintf("%.4g", s.Max), at: vg.Point{X: x1, Y: ty}, size: fontSize},
	}
	if s.Label != "" {
		o = append(o, text{s: s.Label, at: vg.Point{X: (x0 + x1) / 2, Y: ty - vg.Length(fontSize*1.5)}, size: fontSize})
	}
	return o, nil
}
