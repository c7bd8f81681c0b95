// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hexmap contains functions for creating hexagonal region maps.
// A hex map lays a regular grid of hexagons over a rectangular
// row and column index space, assigns a region code to each
// hexagon from a lookup table, and optionally colors each region
// according to a numeric value (a choropleth).
//
// The usual sequence is NewGrid, BindCodes, then either
// CategoricalShapes for a plain region map or BindValues followed by
// Layer.Shapes for a choropleth. The resulting shapes are drawn with
// Draw or Render.
package hexmap
