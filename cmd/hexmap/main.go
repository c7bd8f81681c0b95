// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command hexmap draws a hexagonal region map, optionally colored
// by a value per region, from a YAML configuration file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"gonum.org/v1/plot/vg"

	"github.com/ctessum/hexmap"
	"github.com/ctessum/hexmap/internal/config"
)

var (
	lightGrey = color.NRGBA{R: 211, G: 211, B: 211, A: 255}
	white     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func main() {
	configPath := flag.String("config", "hexmap.yaml", "path to the configuration file")
	out := flag.String("out", "hexmap.png", "path of the PNG image to write")
	codedOnly := flag.Bool("coded-only", false, "only draw hexagons that have a region code")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *codedOnly {
		cfg.Render.CodedOnly = true
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, *out); err != nil {
		slog.Error("hexmap failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, out string) error {
	g, err := hexmap.NewGrid(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Radius, cfg.Grid.ParsedOrientation())
	if err != nil {
		return err
	}
	slog.Info("grid generated",
		"rows", g.Rows(),
		"cols", g.Cols(),
		"radius", g.Radius(),
		"orientation", g.Orientation(),
	)

	codes, err := readCodes(cfg, g)
	if err != nil {
		return err
	}
	cells, err := hexmap.BindCodes(g, codes)
	if err != nil {
		return err
	}
	coded := hexmap.Coded(cells)
	if n := len(codes) - len(coded); n > 0 {
		slog.Warn("code table entries do not match any hexagon", "count", n)
	}
	slog.Info("codes bound", "hexagons", len(cells), "coded", len(coded))
	if cfg.Render.CodedOnly {
		cells = coded
	}

	m, err := buildMap(cfg, cells)
	if err != nil {
		return err
	}
	if cfg.Render.Outlines {
		m.Outlines, err = hexmap.RegionOutlines(cells, g.Radius()/1000)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := hexmap.Render(f, m, renderOptions(cfg)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	slog.Info("map written", "path", out, "shapes", len(m.Shapes))
	return nil
}

func readCodes(cfg *config.Config, g *hexmap.Grid) ([]hexmap.CodeEntry, error) {
	if cfg.Codes.Shapefile != "" {
		codes, err := hexmap.ReadShapeCodes(cfg.Codes.Shapefile, g, cfg.Codes.ShapeField)
		if err != nil {
			return nil, err
		}
		slog.Info("codes read", "shapefile", cfg.Codes.Shapefile, "entries", len(codes))
		return codes, nil
	}
	f, err := os.Open(cfg.Codes.File)
	if err != nil {
		return nil, fmt.Errorf("opening code table: %w", err)
	}
	defer f.Close()
	codes, err := hexmap.ReadCodes(f, cfg.Codes.IDColumn, cfg.Codes.CodeColumn)
	if err != nil {
		return nil, err
	}
	slog.Info("codes read", "file", cfg.Codes.File, "entries", len(codes))
	return codes, nil
}

// buildMap builds a categorical map when no value table is
// configured and a choropleth otherwise.
func buildMap(cfg *config.Config, cells []hexmap.Cell) (*hexmap.Map, error) {
	if cfg.Values.File == "" {
		fill := hexmap.PresenceFill(lightGrey, white)
		if cfg.Render.Palette == "hue" {
			fill = hexmap.HueFill(cells, white)
		}
		return &hexmap.Map{
			Title:  cfg.Render.Title,
			Shapes: hexmap.CategoricalShapes(hexmap.FillCategories(cells, fill)),
		}, nil
	}

	f, err := os.Open(cfg.Values.File)
	if err != nil {
		return nil, fmt.Errorf("opening value table: %w", err)
	}
	defer f.Close()
	values, err := hexmap.ReadValues(f, cfg.Values.CodeColumn, cfg.Values.ValueColumn)
	if err != nil {
		return nil, err
	}
	colorize, err := hexmap.Colormap(cfg.Values.Colormap)
	if err != nil {
		return nil, err
	}
	layer, err := hexmap.BindValues(cells, values, colorize, white)
	if errors.Is(err, hexmap.ErrEmptyRange) {
		return nil, fmt.Errorf("none of the %d values in %s match a region code: %w", len(values), cfg.Values.File, err)
	} else if err != nil {
		return nil, err
	}
	var matched int
	for _, c := range layer.Cells {
		if c.HasValue {
			matched++
		}
	}
	slog.Info("values bound",
		"file", cfg.Values.File,
		"entries", len(values),
		"matched", matched,
		"min", layer.Min,
		"max", layer.Max,
		"colormap", cfg.Values.Colormap,
	)
	return &hexmap.Map{
		Title:  cfg.Render.Title,
		Shapes: layer.Shapes(),
		Scale:  layer.Scale(cfg.Values.Colormap, cfg.Values.Label, colorize),
	}, nil
}

func renderOptions(cfg *config.Config) hexmap.RenderOptions {
	opts := hexmap.DefaultRenderOptions()
	opts.Width = vg.Length(cfg.Render.WidthCM) * vg.Centimeter
	opts.Height = vg.Length(cfg.Render.HeightCM) * vg.Centimeter
	opts.DPI = cfg.Render.DPI
	opts.Margin = cfg.Render.Margin
	opts.FontSize = cfg.Render.FontSize
	opts.Labels = *cfg.Render.Labels
	return opts
}
