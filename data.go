// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"image/color"
	"strconv"
	"strings"
)

// CodeEntry assigns a region code to the hexagon with the given ID.
type CodeEntry struct {
	ID   int
	Code string
}

// ValueEntry holds the value of the characteristic attribute
// of the region with the given code. Literacy rate or population
// count are typical values.
type ValueEntry struct {
	Code  string
	Value float64
}

// NormalizeCode turns a raw region identifier such as "IN-MH" or
// "in.mh" into a short code by dropping everything but ASCII
// letters, upper-casing the rest and keeping the last two
// characters. The result may be shorter than two characters
// or empty.
func NormalizeCode(raw string) string {
	var b strings.Builder
	for _, c := range raw {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			b.WriteRune(c)
		}
	}
	s := strings.ToUpper(b.String())
	if len(s) > 2 {
		s = s[len(s)-2:]
	}
	return s
}

// Cell is a hexagon joined with the data bound to it. Cells are
// created by the binding functions and are not shared with the
// Grid they came from, apart from the read-only Hex.
type Cell struct {
	*Hex

	// Code is the region code of the hexagon. It is only
	// meaningful when HasCode is true.
	Code    string
	HasCode bool

	// Value is the value bound to the hexagon's region. It is
	// only meaningful when HasValue is true.
	Value    float64
	HasValue bool

	// Fill is the fill color of the hexagon. A nil Fill means the
	// hexagon is not filled.
	Fill color.Color
}

// Label returns the code of the receiver if it has one and the
// decimal ID otherwise.
func (c Cell) Label() string {
	if c.HasCode {
		return c.Code
	}
	return strconv.Itoa(c.ID)
}
