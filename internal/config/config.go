// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the configuration of the hexmap command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ctessum/hexmap"
)

// Config holds all hexmap configuration
type Config struct {
	Grid     GridConfig   `yaml:"grid"`
	Codes    CodesConfig  `yaml:"codes"`
	Values   ValuesConfig `yaml:"values"`
	Render   RenderConfig `yaml:"render"`
	LogLevel string       `yaml:"log_level"`
}

// GridConfig holds the hexagon grid dimensions
type GridConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Radius      float64 `yaml:"radius"`
	Orientation string  `yaml:"orientation"` // pointy or flat
}

// CodesConfig says where the region code of each hexagon comes from.
// Exactly one of File and Shapefile must be set.
type CodesConfig struct {
	File       string `yaml:"file"` // CSV
	IDColumn   string `yaml:"id_column"`
	CodeColumn string `yaml:"code_column"`

	Shapefile  string `yaml:"shapefile"`
	ShapeField string `yaml:"shape_field"`
}

// ValuesConfig holds the optional value table for a choropleth
type ValuesConfig struct {
	File        string `yaml:"file"` // CSV; no choropleth when empty
	CodeColumn  string `yaml:"code_column"`
	ValueColumn string `yaml:"value_column"`
	Colormap    string `yaml:"colormap"`
	Label       string `yaml:"label"`
}

// RenderConfig holds figure settings
type RenderConfig struct {
	Title     string  `yaml:"title"`
	WidthCM   float64 `yaml:"width_cm"`
	HeightCM  float64 `yaml:"height_cm"`
	DPI       int     `yaml:"dpi"`
	Margin    float64 `yaml:"margin"`
	FontSize  float64 `yaml:"font_size"`
	Labels    *bool   `yaml:"labels"`
	Outlines  bool    `yaml:"outlines"`
	Palette   string  `yaml:"palette"` // presence or hue, for maps without values
	CodedOnly bool    `yaml:"coded_only"`
}

// Load reads configuration from a YAML file. Relative table paths
// are resolved against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Codes.File, &cfg.Codes.Shapefile, &cfg.Values.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// Parse parses YAML configuration, fills in defaults and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.Grid.Rows == 0 {
		cfg.Grid.Rows = 10
	}
	if cfg.Grid.Cols == 0 {
		cfg.Grid.Cols = 10
	}
	if cfg.Grid.Radius == 0 {
		cfg.Grid.Radius = 1
	}
	if cfg.Grid.Orientation == "" {
		cfg.Grid.Orientation = "flat"
	}
	if cfg.Codes.IDColumn == "" {
		cfg.Codes.IDColumn = "hex_id"
	}
	if cfg.Codes.CodeColumn == "" {
		cfg.Codes.CodeColumn = "code"
	}
	if cfg.Codes.ShapeField == "" {
		cfg.Codes.ShapeField = "code"
	}
	if cfg.Values.CodeColumn == "" {
		cfg.Values.CodeColumn = "code"
	}
	if cfg.Values.ValueColumn == "" {
		cfg.Values.ValueColumn = "value"
	}
	if cfg.Values.Colormap == "" {
		cfg.Values.Colormap = hexmap.DefaultColormap
	}
	if cfg.Values.Label == "" {
		cfg.Values.Label = cfg.Values.ValueColumn
	}
	if cfg.Render.WidthCM == 0 {
		cfg.Render.WidthCM = 20
	}
	if cfg.Render.HeightCM == 0 {
		cfg.Render.HeightCM = 20
	}
	if cfg.Render.DPI == 0 {
		cfg.Render.DPI = 150
	}
	if cfg.Render.Margin == 0 {
		cfg.Render.Margin = 0.05
	}
	if cfg.Render.FontSize == 0 {
		cfg.Render.FontSize = 6
	}
	if cfg.Render.Labels == nil {
		labels := true
		cfg.Render.Labels = &labels
	}
	if cfg.Render.Palette == "" {
		cfg.Render.Palette = "presence"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks the configuration for values the command
// cannot work with.
func (cfg *Config) Validate() error {
	if cfg.Grid.Rows <= 0 || cfg.Grid.Cols <= 0 || cfg.Grid.Radius <= 0 {
		return fmt.Errorf("grid: rows, cols and radius must be positive, have %d, %d, %g: %w",
			cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Radius, hexmap.ErrInvalidDimension)
	}
	if _, err := hexmap.ParseOrientation(cfg.Grid.Orientation); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	switch {
	case cfg.Codes.File == "" && cfg.Codes.Shapefile == "":
		return fmt.Errorf("codes: one of file and shapefile is required")
	case cfg.Codes.File != "" && cfg.Codes.Shapefile != "":
		return fmt.Errorf("codes: only one of file and shapefile may be set")
	}
	if _, err := hexmap.Colormap(cfg.Values.Colormap); err != nil {
		return fmt.Errorf("values: %w", err)
	}
	switch cfg.Render.Palette {
	case "presence", "hue":
	default:
		return fmt.Errorf("render: unknown palette %q; choose presence or hue", cfg.Render.Palette)
	}
	if cfg.Render.WidthCM <= 0 || cfg.Render.HeightCM <= 0 || cfg.Render.DPI <= 0 {
		return fmt.Errorf("render: width_cm, height_cm and dpi must be positive")
	}
	if cfg.Render.Margin < 0 {
		return fmt.Errorf("render: margin must not be negative")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}

// ParsedOrientation returns the grid orientation. It is only
// meaningful for a validated configuration.
func (g GridConfig) ParsedOrientation() hexmap.Orientation {
	o, _ := hexmap.ParseOrientation(g.Orientation)
	return o
}
