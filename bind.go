// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	husl "github.com/hsluv/hsluv-go"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDuplicateKey is returned when a lookup table holds more
	// than one entry for the same key.
	ErrDuplicateKey = errors.New("hexmap: duplicate key")

	// ErrEmptyRange is returned when a value binding leaves no
	// hexagon with a value, so no color range can be computed.
	ErrEmptyRange = errors.New("hexmap: no values to compute a color range from")
)

// BindCodes left-joins codes onto the hexagons of g by ID. The result
// holds exactly one Cell per hexagon, in the same order as g.Hexes.
// Hexagons without an entry have HasCode set to false, and entries
// whose ID is not in g are ignored. More than one entry for the same
// ID is an error.
func BindCodes(g *Grid, codes []CodeEntry) ([]Cell, error) {
	byID := make(map[int]string, len(codes))
	for _, c := range codes {
		if _, ok := byID[c.ID]; ok {
			return nil, fmt.Errorf("%w: hex id %d", ErrDuplicateKey, c.ID)
		}
		byID[c.ID] = c.Code
	}
	o := make([]Cell, g.Len())
	for i, h := range g.Hexes() {
		o[i].Hex = h
		o[i].Code, o[i].HasCode = byID[h.ID]
	}
	return o, nil
}

// Coded returns the cells that have a region code, in their
// original order.
func Coded(cells []Cell) []Cell {
	var o []Cell
	for _, c := range cells {
		if c.HasCode {
			o = append(o, c)
		}
	}
	return o
}

// Layer is a set of cells with values bound to them and the range
// of those values.
type Layer struct {
	Cells []Cell

	// Min and Max are the smallest and largest values
	// among the cells that have one.
	Min, Max float64
}

// BindValues left-joins values onto cells by code and colors each
// cell that gets a value with colorize, normalized to the range of
// the bound values. Cells without a code or without a matching
// value get the missing fill, which may be nil, and do not
// contribute to the range. cells is not modified.
//
// If no cell gets a value, BindValues returns ErrEmptyRange.
func BindValues(cells []Cell, values []ValueEntry, colorize ColorFunc, missing color.Color) (*Layer, error) {
	byCode := make(map[string]float64, len(values))
	for _, v := range values {
		if _, ok := byCode[v.Code]; ok {
			return nil, fmt.Errorf("%w: code %q", ErrDuplicateKey, v.Code)
		}
		byCode[v.Code] = v.Value
	}

	o := &Layer{Cells: make([]Cell, len(cells))}
	var present []float64
	for i, c := range cells {
		c.Value, c.HasValue = 0, false
		if c.HasCode {
			c.Value, c.HasValue = byCode[c.Code]
		}
		if c.HasValue {
			present = append(present, c.Value)
		}
		o.Cells[i] = c
	}
	if len(present) == 0 {
		return nil, ErrEmptyRange
	}
	o.Min, o.Max = floats.Min(present), floats.Max(present)

	for i, c := range o.Cells {
		if c.HasValue {
			o.Cells[i].Fill = colorize(c.Value, o.Min, o.Max)
		} else {
			o.Cells[i].Fill = missing
		}
	}
	return o, nil
}

// CategoryFill chooses the fill color of a cell in a map
// without values.
type CategoryFill func(c Cell) color.Color

// PresenceFill fills cells that have a code with present and
// all others with absent.
func PresenceFill(present, absent color.Color) CategoryFill {
	return func(c Cell) color.Color {
		if c.HasCode {
			return present
		}
		return absent
	}
}

// HueFill gives each distinct code among cells its own hue, spread
// evenly around the HSLuv color wheel in code order so that colors
// have the same perceived lightness. Cells without a code get absent.
func HueFill(cells []Cell, absent color.Color) CategoryFill {
	var codes []string
	seen := make(map[string]bool)
	for _, c := range cells {
		if c.HasCode && !seen[c.Code] {
			seen[c.Code] = true
			codes = append(codes, c.Code)
		}
	}
	sort.Strings(codes)
	colors := make(map[string]color.Color, len(codes))
	for i, code := range codes {
		r, g, b := husl.HuslToRGB(360*float64(i)/float64(len(codes)), 70, 75)
		colors[code] = color.NRGBA{
			R: uint8(clamp01(r)*255 + 0.5),
			G: uint8(clamp01(g)*255 + 0.5),
			B: uint8(clamp01(b)*255 + 0.5),
			A: 255,
		}
	}
	return func(c Cell) color.Color {
		if c.HasCode {
			return colors[c.Code]
		}
		return absent
	}
}

// FillCategories returns a copy of cells with Fill set by fill.
func FillCategories(cells []Cell, fill CategoryFill) []Cell {
	o := make([]Cell, len(cells))
	for i, c := range cells {
		c.Fill = fill(c)
		o[i] = c
	}
	return o
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
