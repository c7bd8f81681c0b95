// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func smallOptions() RenderOptions {
	opts := DefaultRenderOptions()
	opts.Width = 4 * vg.Centimeter
	opts.Height = 4 * vg.Centimeter
	opts.DPI = 100
	opts.Labels = false
	return opts
}

func TestDrawNothing(t *testing.T) {
	_, err := Draw(&Map{}, smallOptions())
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestDrawInvalidSize(t *testing.T) {
	g, err := NewGrid(1, 1, 1, Flat)
	require.NoError(t, err)
	cells, err := BindCodes(g, nil)
	require.NoError(t, err)
	opts := smallOptions()
	opts.DPI = 0
	_, err = Draw(&Map{Shapes: CategoricalShapes(cells)}, opts)
	assert.Error(t, err)
}

func TestDrawFill(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	for _, o := range []Orientation{Pointy, Flat} {
		g, err := NewGrid(1, 1, 1, o)
		require.NoError(t, err)
		cells, err := BindCodes(g, []CodeEntry{{ID: 0, Code: "MH"}})
		require.NoError(t, err)
		cells = FillCategories(cells, PresenceFill(red, nil))

		c, err := Draw(&Map{Shapes: CategoricalShapes(cells)}, smallOptions())
		require.NoError(t, err)
		img := c.Image()
		b := img.Bounds()

		// The only hexagon is centered in the image.
		center := color.NRGBAModel.Convert(img.At((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)).(color.NRGBA)
		assert.True(t, center.R > 200 && center.G < 50 && center.B < 50, "%v: center is %v", o, center)

		corner := color.NRGBAModel.Convert(img.At(b.Min.X+1, b.Min.Y+1)).(color.NRGBA)
		assert.True(t, corner.R > 200 && corner.G > 200 && corner.B > 200, "%v: corner is %v", o, corner)
	}
}

func TestRender(t *testing.T) {
	g, err := NewGrid(4, 4, 1, Flat)
	require.NoError(t, err)
	cells, err := BindCodes(g, []CodeEntry{
		{ID: 0, Code: "MH"},
		{ID: 1, Code: "KA"},
		{ID: 5, Code: "GA"},
		{ID: 6, Code: "GA"},
	})
	require.NoError(t, err)
	values := []ValueEntry{{Code: "MH", Value: 82.3}, {Code: "KA", Value: 75.4}, {Code: "GA", Value: 88.7}}

	for _, name := range Colormaps() {
		t.Run(name, func(t *testing.T) {
			colorize, err := Colormap(name)
			require.NoError(t, err)
			l, err := BindValues(Coded(cells), values, colorize, color.White)
			require.NoError(t, err)
			outlines, err := RegionOutlines(l.Cells, 0.001)
			require.NoError(t, err)

			opts := smallOptions()
			opts.Labels = true
			var buf bytes.Buffer
			err = Render(&buf, &Map{
				Title:    "Literacy",
				Shapes:   l.Shapes(),
				Outlines: outlines,
				Scale:    l.Scale(name, "literacy (%)", colorize),
			}, opts)
			require.NoError(t, err)

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.InDelta(t, opts.Width.Dots(float64(opts.DPI)), float64(img.Bounds().Dx()), 1.0)
		})
	}
}

func TestRenderCategorical(t *testing.T) {
	g, err := NewGrid(3, 3, 1, Pointy)
	require.NoError(t, err)
	cells, err := BindCodes(g, []CodeEntry{{ID: 4, Code: "MH"}})
	require.NoError(t, err)
	cells = FillCategories(cells, HueFill(cells, color.White))

	var buf bytes.Buffer
	opts := smallOptions()
	opts.Labels = true
	require.NoError(t, Render(&buf, &Map{Title: "Hex grid", Shapes: CategoricalShapes(cells)}, opts))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestDrawScale(t *testing.T) {
	g, err := NewGrid(1, 1, 1, Flat)
	require.NoError(t, err)
	cells, err := BindCodes(g, []CodeEntry{{ID: 0, Code: "MH"}})
	require.NoError(t, err)
	shapes := CategoricalShapes(FillCategories(cells, PresenceFill(color.White, nil)))
	opts := smallOptions()

	colorize, err := Colormap(DefaultColormap)
	require.NoError(t, err)
	c, err := Draw(&Map{
		Shapes: shapes,
		Scale:  &Scale{Name: DefaultColormap, Min: 75, Max: 89, Color: colorize},
	}, opts)
	require.NoError(t, err)
	img := c.Image()
	h := img.Bounds().Dy()

	// Sample the color bar a tenth of the way in from either end.
	dpi := float64(opts.DPI)
	pad := vg.Length(opts.FontSize * 2)
	x0, x1 := pad, opts.Width-pad
	y := legendHeight - vg.Length(opts.FontSize) - legendHeight/6
	at := func(x vg.Length) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(int(x.Dots(dpi)), h-int(y.Dots(dpi)))).(color.NRGBA)
	}
	low := at(x0 + (x1-x0)/10)
	high := at(x1 - (x1-x0)/10)
	assert.True(t, low.B > low.R, "low end of the bar is %v", low)
	assert.True(t, high.R > high.B, "high end of the bar is %v", high)

	_, err = Draw(&Map{Shapes: shapes, Scale: &Scale{Name: "viridis", Min: 0, Max: 1}}, opts)
	assert.ErrorIs(t, err, ErrUnknownColormap)

	_, err = Draw(&Map{Shapes: shapes, Scale: &Scale{Name: "blue-red", Min: 0, Max: 1}}, opts)
	assert.NoError(t, err)
}
