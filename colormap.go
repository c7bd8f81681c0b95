// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/ctessum/geom/carto"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ErrUnknownColormap is returned by Colormap for names it
// does not know.
var ErrUnknownColormap = errors.New("hexmap: unknown colormap")

// DefaultColormap is the name of the colormap used when
// none is specified.
const DefaultColormap = "carto"

// ColorFunc maps v, which is expected to be within [vmin, vmax],
// to a color. Values outside the range are clamped to it. If
// vmin == vmax, every value maps to the lower end of the scale.
type ColorFunc func(v, vmin, vmax float64) color.NRGBA

// Scale describes the color scale of a choropleth so that a
// color bar can be drawn for it.
type Scale struct {
	// Name is the colormap name as accepted by Colormap.
	Name string

	// Label is drawn next to the color bar.
	Label string

	Min, Max float64
	Color    ColorFunc
}

var morelandMaps = map[string]func() palette.ColorMap{
	"kindlmann":          moreland.Kindlmann,
	"extended-kindlmann": moreland.ExtendedKindlmann,
	"blackbody":          moreland.BlackBody,
	"extended-blackbody": moreland.ExtendedBlackBody,
	"blue-red":           func() palette.ColorMap { return moreland.SmoothBlueRed() },
}

// Colormaps returns the names accepted by Colormap.
func Colormaps() []string {
	names := []string{DefaultColormap}
	for n := range morelandMaps {
		names = append(names, n)
	}
	sort.Strings(names[1:])
	return names
}

// Colormap returns the color function with the given name. "carto"
// is the linear color map of github.com/ctessum/geom/carto; the other
// names are Kenneth Moreland's color maps.
func Colormap(name string) (ColorFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == DefaultColormap {
		return newCartoFunc(), nil
	}
	if m, ok := morelandMaps[name]; ok {
		return morelandFunc(m), nil
	}
	return nil, fmt.Errorf("%w %q; choose from %s", ErrUnknownColormap, name,
		strings.Join(Colormaps(), ", "))
}

// normRange returns the range a color map should be set to for
// [vmin, vmax] and v clamped to it.
func normRange(v, vmin, vmax float64) (vv, lo, hi float64) {
	if vmax <= vmin {
		return vmin, vmin, vmin + 1
	}
	switch {
	case v < vmin:
		v = vmin
	case v > vmax:
		v = vmax
	}
	return v, vmin, vmax
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

var (
	cartoOnce sync.Once
	cartoMap  *carto.ColorMap
)

// newCartoFunc returns a ColorFunc backed by a carto.ColorMap. The
// color map spans [-1, 1] and v is rescaled onto it, so vmin gets the
// low end of the scale and vmax the high end.
func newCartoFunc() ColorFunc {
	cartoOnce.Do(func() {
		cartoMap = carto.NewColorMap(carto.Linear)
		cartoMap.AddArray([]float64{-1, 1})
		cartoMap.Set()
	})
	return func(v, vmin, vmax float64) color.NRGBA {
		v, vmin, vmax = normRange(v, vmin, vmax)
		return cartoMap.GetColor(-1 + 2*(v-vmin)/(vmax-vmin))
	}
}

func morelandFunc(newMap func() palette.ColorMap) ColorFunc {
	return func(v, vmin, vmax float64) color.NRGBA {
		v, vmin, vmax = normRange(v, vmin, vmax)
		cm := newMap()
		cm.SetMin(vmin)
		cm.SetMax(vmax)
		c, err := cm.At(v)
		if err != nil {
			// Only reachable through rounding at the ends of the range.
			return color.NRGBA{A: 255}
		}
		return toNRGBA(c)
	}
}
