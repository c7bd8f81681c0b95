// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// ErrInvalidDimension is returned when a grid is requested with a
// non-positive number of rows or columns or a non-positive radius.
var ErrInvalidDimension = errors.New("hexmap: invalid grid dimension")

// Orientation specifies how the hexagons in a grid are rotated.
type Orientation int

const (
	// Pointy hexagons have a vertex at the top. Odd rows are
	// shifted right by half a cell.
	Pointy Orientation = iota

	// Flat hexagons have an edge at the top. Odd columns are
	// shifted up by half a cell.
	Flat
)

// ParseOrientation returns the Orientation named by s,
// which must be "pointy" or "flat".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pointy":
		return Pointy, nil
	case "flat":
		return Flat, nil
	}
	return 0, fmt.Errorf("hexmap: unknown orientation %q", s)
}

func (o Orientation) String() string {
	switch o {
	case Pointy:
		return "pointy"
	case Flat:
		return "flat"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// startAngle is the angle in radians of the first vertex.
func (o Orientation) startAngle() float64 {
	if o == Pointy {
		return math.Pi / 6
	}
	return 0
}

// spacing returns the distances between neighboring hexagon
// centers along a row (dx) and along a column (dy).
func (o Orientation) spacing(r float64) (dx, dy float64) {
	if o == Pointy {
		w, h := math.Sqrt(3)*r, 2*r
		return w, h * 3 / 4
	}
	w, h := 2*r, math.Sqrt(3)*r
	return w * 3 / 4, h
}

// Hex represents an individual hexagonal cell in a grid.
type Hex struct {
	// Point is the geometric center of this hexagon.
	geom.Point

	// ID is the row-major identifier of this hexagon:
	// Row*cols + Col.
	ID int

	// Row and Col are the zero-based indices of this hexagon.
	Row, Col int

	// Vertices holds the six corners of the hexagon in
	// counter-clockwise order starting at the orientation's start angle.
	Vertices []geom.Point

	b *geom.Bounds
}

// Bounds returns the bounds of the hexagon.
func (h *Hex) Bounds() *geom.Bounds {
	return h.b
}

// Geom returns the geometry of the receiver.
func (h *Hex) Geom() geom.Polygon {
	ring := make([]geom.Point, len(h.Vertices))
	copy(ring, h.Vertices)
	return geom.Polygon{ring}
}

func newHex(id, row, col int, center geom.Point, r float64, o Orientation) *Hex {
	h := &Hex{
		Point:    center,
		ID:       id,
		Row:      row,
		Col:      col,
		Vertices: make([]geom.Point, 6),
		b:        geom.NewBounds(),
	}
	start := o.startAngle()
	for i := 0; i < 6; i++ {
		theta := start + math.Pi/3*float64(i)
		h.Vertices[i] = geom.Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
		h.b.Extend(h.Vertices[i].Bounds())
	}
	return h
}

// Grid is a rectangular tiling of hexagons. It is not modified
// after it is created, so it can be shared between goroutines.
type Grid struct {
	hexes []*Hex
	index *rtree.Rtree

	rows, cols int

	// r is the radius of each hexagon.
	r float64

	orientation Orientation

	b *geom.Bounds
}

// NewGrid creates a grid of rows×cols hexagons of radius r.
// Hexagons are created in row-major order, so the hexagon at
// (row, col) has ID row*cols+col and is at index ID in Hexes.
func NewGrid(rows, cols int, r float64, o Orientation) (*Grid, error) {
	switch {
	case rows <= 0:
		return nil, fmt.Errorf("%w: rows=%d", ErrInvalidDimension, rows)
	case cols <= 0:
		return nil, fmt.Errorf("%w: cols=%d", ErrInvalidDimension, cols)
	case !(r > 0) || math.IsInf(r, 1):
		return nil, fmt.Errorf("%w: radius=%g", ErrInvalidDimension, r)
	case o != Pointy && o != Flat:
		return nil, fmt.Errorf("hexmap: invalid orientation %v", o)
	}
	g := Grid{
		hexes:       make([]*Hex, 0, rows*cols),
		index:       rtree.NewTree(25, 50),
		rows:        rows,
		cols:        cols,
		r:           r,
		orientation: o,
		b:           geom.NewBounds(),
	}

	dx, dy := o.spacing(r)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var c geom.Point
			if o == Pointy {
				c.X = float64(col)*dx + float64(row%2)*dx/2
				c.Y = float64(row) * dy
			} else {
				c.X = float64(col) * dx
				c.Y = float64(row)*dy + float64(col%2)*dy/2
			}
			h := newHex(row*cols+col, row, col, c, r, o)
			g.hexes = append(g.hexes, h)
			g.index.Insert(h)
			g.b.Extend(h.Bounds())
		}
	}
	return &g, nil
}

// Len returns the number of hexagons in the receiver.
func (g *Grid) Len() int { return len(g.hexes) }

// Rows returns the number of rows in the receiver.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the receiver.
func (g *Grid) Cols() int { return g.cols }

// Radius returns the radius of every hexagon in the receiver.
func (g *Grid) Radius() float64 { return g.r }

// Orientation returns the orientation of the hexagons in the receiver.
func (g *Grid) Orientation() Orientation { return g.orientation }

// Hexes returns the hexagons that comprise the receiver in
// row-major order. The hexagons must not be modified.
func (g *Grid) Hexes() []*Hex {
	return g.hexes
}

// Hex returns the hexagon with the given ID.
func (g *Grid) Hex(id int) (*Hex, bool) {
	if id < 0 || id >= len(g.hexes) {
		return nil, false
	}
	return g.hexes[id], true
}

// Bounds returns the bounding box of the receiver.
func (g *Grid) Bounds() *geom.Bounds {
	return g.b
}

// Nearest returns the hexagon whose center is closest to p.
// Within the grid that is the hexagon containing p.
func (g *Grid) Nearest(p geom.Point) *Hex {
	candidates := g.index.SearchIntersect(p.Bounds())
	if len(candidates) == 0 {
		// p is outside of every hexagon's bounding box. The index
		// measures distance to boxes rather than centers, so check the
		// neighborhood of the closest box as well.
		h := g.index.NearestNeighbor(p).(*Hex)
		candidates = g.index.SearchIntersect(&geom.Bounds{
			Min: geom.Point{X: h.b.Min.X - g.r, Y: h.b.Min.Y - g.r},
			Max: geom.Point{X: h.b.Max.X + g.r, Y: h.b.Max.Y + g.r},
		})
	}
	var nearest *Hex
	min := math.Inf(1)
	for _, c := range candidates {
		h := c.(*Hex)
		d := math.Hypot(h.X-p.X, h.Y-p.Y)
		if nearest == nil || d < min || d == min && h.ID < nearest.ID {
			nearest, min = h, d
		}
	}
	return nearest
}
