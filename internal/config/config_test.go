// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctessum/hexmap"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("codes:\n  file: state_hex_key.csv\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Grid.Rows)
	assert.Equal(t, 10, cfg.Grid.Cols)
	assert.Equal(t, 1.0, cfg.Grid.Radius)
	assert.Equal(t, hexmap.Flat, cfg.Grid.ParsedOrientation())
	assert.Equal(t, "hex_id", cfg.Codes.IDColumn)
	assert.Equal(t, "code", cfg.Codes.CodeColumn)
	assert.Equal(t, "code", cfg.Values.CodeColumn)
	assert.Equal(t, "value", cfg.Values.ValueColumn)
	assert.Equal(t, "value", cfg.Values.Label)
	assert.Equal(t, hexmap.DefaultColormap, cfg.Values.Colormap)
	assert.Equal(t, 150, cfg.Render.DPI)
	require.NotNil(t, cfg.Render.Labels)
	assert.True(t, *cfg.Render.Labels)
	assert.Equal(t, "presence", cfg.Render.Palette)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
grid:
  rows: 12
  cols: 8
  radius: 2.5
  orientation: pointy
codes:
  shapefile: regions.shp
  shape_field: ST_CODE
values:
  file: literacy.csv
  colormap: blackbody
  label: Literacy (%)
render:
  title: India
  labels: false
  outlines: true
  palette: hue
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Grid.Rows)
	assert.Equal(t, 8, cfg.Grid.Cols)
	assert.Equal(t, 2.5, cfg.Grid.Radius)
	assert.Equal(t, hexmap.Pointy, cfg.Grid.ParsedOrientation())
	assert.Equal(t, "ST_CODE", cfg.Codes.ShapeField)
	assert.Equal(t, "blackbody", cfg.Values.Colormap)
	assert.Equal(t, "Literacy (%)", cfg.Values.Label)
	assert.False(t, *cfg.Render.Labels)
	assert.True(t, cfg.Render.Outlines)
	assert.Equal(t, "hue", cfg.Render.Palette)
}

func TestParseInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"no codes":     "grid:\n  rows: 3\n",
		"two sources":  "codes:\n  file: a.csv\n  shapefile: a.shp\n",
		"rows":         "grid:\n  rows: -1\ncodes:\n  file: a.csv\n",
		"orientation":  "grid:\n  orientation: round\ncodes:\n  file: a.csv\n",
		"colormap":     "codes:\n  file: a.csv\nvalues:\n  colormap: viridis\n",
		"palette":      "codes:\n  file: a.csv\nrender:\n  palette: pastel\n",
		"log level":    "codes:\n  file: a.csv\nlog_level: loud\n",
		"syntax error": "grid: [\n",
	} {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}

	_, err := Parse([]byte("grid:\n  radius: -2\ncodes:\n  file: a.csv\n"))
	assert.ErrorIs(t, err, hexmap.ErrInvalidDimension)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codes:\n  file: key.csv\nvalues:\n  file: /data/values.csv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "key.csv"), cfg.Codes.File)
	assert.Equal(t, "/data/values.csv", cfg.Values.File)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
