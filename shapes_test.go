// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapCodes(t *testing.T) {
	g, err := NewGrid(2, 2, 1, Flat)
	require.NoError(t, err)
	codes := SnapCodes(g, []LocatedCode{
		{At: geom.Point{X: 1.4, Y: 2.5}, Code: "KA"},
		{At: geom.Point{X: 0.1, Y: -0.1}, Code: "MH"},
		{At: geom.Point{X: 1.6, Y: 2.7}, Code: "GA"}, // same hexagon as KA
	})
	assert.Equal(t, []CodeEntry{{ID: 0, Code: "MH"}, {ID: 3, Code: "GA"}}, codes)
}

type region struct {
	geom.Polygon
	Code string
}

func square(cx, cy, half float64) geom.Polygon {
	return geom.Polygon{{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
		{X: cx - half, Y: cy - half},
	}}
}

func TestReadShapeCodes(t *testing.T) {
	g, err := NewGrid(3, 3, 1, Pointy)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "regions.shp")
	e, err := shp.NewEncoder(path, region{})
	require.NoError(t, err)
	h4, _ := g.Hex(4)
	h8, _ := g.Hex(8)
	require.NoError(t, e.Encode(region{Polygon: square(h4.X, h4.Y, 0.3), Code: "IN-MH"}))
	require.NoError(t, e.Encode(region{Polygon: square(h8.X+0.1, h8.Y, 0.2), Code: "IN-KA"}))
	require.NoError(t, e.Encode(region{Polygon: square(0, 0, 0.2), Code: "99"}))
	e.Close()

	codes, err := ReadShapeCodes(path, g, "Code")
	require.NoError(t, err)
	assert.Equal(t, []CodeEntry{{ID: 4, Code: "MH"}, {ID: 8, Code: "KA"}}, codes)

	_, err = ReadShapeCodes(filepath.Join(t.TempDir(), "missing.shp"), g, "Code")
	assert.Error(t, err)
}
