// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// text is a string centered on a canvas point.
type text struct {
	s    string
	at   vg.Point
	size float64 // points
}

var (
	goFontOnce sync.Once
	goFont     *opentype.Font
	goFontErr  error
)

// fontFace returns the Go regular font at size points for an image
// with the given resolution, or a fixed bitmap font if the Go font
// cannot be loaded.
func fontFace(size float64, dpi int) font.Face {
	goFontOnce.Do(func() {
		goFont, goFontErr = opentype.Parse(goregular.TTF)
	})
	if goFontErr != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(goFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// drawTexts draws texts directly onto the pixels of img.
func drawTexts(img *vgimg.Canvas, texts []text, opts RenderOptions) {
	dst := img.Image()
	height := dst.Bounds().Dy()
	dots := float64(opts.DPI) / float64(vg.Inch)

	var src image.Image = image.NewUniform(color.Black)
	if opts.LabelColor != nil {
		src = image.NewUniform(opts.LabelColor)
	}

	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, t := range texts {
		face, ok := faces[t.size]
		if !ok {
			face = fontFace(t.size, opts.DPI)
			faces[t.size] = face
		}
		m := face.Metrics()
		w := font.MeasureString(face, t.s)
		x := int(math.Round(float64(t.at.X)*dots)) - w.Ceil()/2
		y := height - int(math.Round(float64(t.at.Y)*dots)) + (m.Ascent-m.Descent).Ceil()/2
		d := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(t.s)
	}
}
