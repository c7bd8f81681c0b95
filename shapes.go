// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// LocatedCode is a region code at a location in grid coordinates.
type LocatedCode struct {
	At   geom.Point
	Code string
}

// SnapCodes assigns each located code to the hexagon of g nearest
// to its location. When more than one code lands on the same
// hexagon, the last one wins. The result is ordered by hexagon ID.
func SnapCodes(g *Grid, codes []LocatedCode) []CodeEntry {
	byID := make(map[int]string)
	for _, c := range codes {
		byID[g.Nearest(c.At).ID] = c.Code
	}
	o := make([]CodeEntry, 0, len(byID))
	for _, h := range g.Hexes() {
		if code, ok := byID[h.ID]; ok {
			o = append(o, CodeEntry{ID: h.ID, Code: code})
		}
	}
	return o
}

// ReadShapeCodes reads region shapes from the shapefile at path and
// assigns each region's code, taken from the attribute field and
// converted with NormalizeCode, to the hexagon nearest to the
// centroid of the region. The shapes must already be in the
// coordinate system of g. Regions whose code has no letters are
// skipped.
func ReadShapeCodes(path string, g *Grid, field string) ([]CodeEntry, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("hexmap: opening shapefile: %w", err)
	}
	defer d.Close()

	var codes []LocatedCode
	for {
		gg, fields, more := d.DecodeRowFields(field)
		if !more {
			break
		}
		raw, ok := fields[field]
		if !ok {
			return nil, fmt.Errorf("%w %q in shapefile %s", ErrMissingColumn, field, path)
		}
		code := NormalizeCode(raw)
		if code == "" {
			continue
		}
		var c geom.Point
		switch t := gg.(type) {
		case geom.Point:
			c = t
		case geom.Polygonal:
			c = t.Centroid()
		default:
			return nil, fmt.Errorf("hexmap: shapefile %s: region %q is a %T, not a polygon or point", path, raw, gg)
		}
		codes = append(codes, LocatedCode{At: c, Code: code})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("hexmap: reading shapefile: %w", err)
	}
	return SnapCodes(g, codes), nil
}
