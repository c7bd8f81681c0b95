// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

type empty struct{}

// hull represents the hull of a set of polygons
type hull struct {
	// graph holds the points of a polygon(s) in a graph.
	// The index of the first map is the starting point of each segment
	// in the polygon and the index of the second map is the ending point
	// of each segment.
	graph map[geom.Point]map[geom.Point]empty

	// points holds every distinct point added so far. Points
	// within tolerance of one of them are replaced by it.
	points []geom.Point

	tolerance float64
}

// RegionOutlines returns the combined geometry of the hexagons
// of each region code among cells, where tolerance is the distance
// two vertices can be apart while still being considered as in the
// same location. A tolerance of a small fraction of the hexagon
// radius absorbs floating point differences between the vertices
// of neighboring hexagons. Cells without a code are ignored.
func RegionOutlines(cells []Cell, tolerance float64) (map[string]geom.Polygon, error) {
	polys := make(map[string][]geom.Polygon)
	for _, c := range cells {
		if !c.HasCode {
			continue
		}
		polys[c.Code] = append(polys[c.Code], c.Geom())
	}
	o := make(map[string]geom.Polygon, len(polys))
	for code, p := range polys {
		outline, err := newHull(tolerance, p...)
		if err != nil {
			return nil, fmt.Errorf("hexmap: outline of region %q: %w", code, err)
		}
		o[code] = outline
	}
	return o, nil
}

// newHull creates a new hull from polygons, where tolerance
// specifies the maximum distance between two points where they are
// assumed to be equivalent. The polygons must have counter-clockwise
// outer rings.
func newHull(tolerance float64, p ...geom.Polygon) (geom.Polygon, error) {
	h := hull{
		graph:     make(map[geom.Point]map[geom.Point]empty),
		tolerance: tolerance,
	}
	for _, poly := range p {
		for _, r := range poly {
			if len(r) == 0 {
				continue
			}
			for i := 0; i < len(r)-1; i++ {
				h.addToGraph(segment{start: r[i], end: r[i+1]})
			}
			if r[0] != r[len(r)-1] {
				// close the ring
				h.addToGraph(segment{start: r[len(r)-1], end: r[0]})
			}
		}
	}
	return h.Polygon()
}

// snap returns the existing point within tolerance of p,
// or p itself if there is none.
func (h *hull) snap(p geom.Point) geom.Point {
	for _, q := range h.points {
		if math.Hypot(q.X-p.X, q.Y-p.Y) < h.tolerance {
			return q
		}
	}
	h.points = append(h.points, p)
	return p
}

// addToGraph adds the segments of the polygon to the graph in a
// way that ensures the same segment is not included twice in the
// polygon.
func (h *hull) addToGraph(seg segment) {
	seg.start = h.snap(seg.start)
	seg.end = h.snap(seg.end)
	if seg.start == seg.end {
		// The starting and ending points are the same, so this is
		// not in fact a segment.
		return
	}

	if _, ok := h.graph[seg.end][seg.start]; ok {
		// This is an edge shared with a neighbor that was traversed
		// in the other direction, so it is interior. Delete both.
		delete(h.graph[seg.end], seg.start)
		if len(h.graph[seg.end]) == 0 {
			delete(h.graph, seg.end)
		}
		return
	}
	if _, ok := h.graph[seg.start][seg.end]; ok {
		// The graph already has this segment, so keeping both
		// would make the polygon degenerate. Delete both.
		delete(h.graph[seg.start], seg.end)
		if len(h.graph[seg.start]) == 0 {
			delete(h.graph, seg.start)
		}
		return
	}

	if _, ok := h.graph[seg.start]; !ok {
		h.graph[seg.start] = make(map[geom.Point]empty)
	}

	// Add the segment.
	h.graph[seg.start][seg.end] = empty{}
}

// Used to represent an edge of a polygon.
type segment struct {
	start, end geom.Point
}

// Polygon returns the rings of the receiver. It consumes the graph.
func (h *hull) Polygon() (geom.Polygon, error) {
	var p geom.Polygon
	for len(h.graph) > 0 {
		r, err := h.ring()
		if err != nil {
			return nil, err
		}
		p = append(p, r)
	}
	return p, nil
}

func (h *hull) ring() ([]geom.Point, error) {
	// Start from the lowest, leftmost point so that
	// the result does not depend on map order.
	var p geom.Point
	first := true
	for q := range h.graph {
		if first || q.Y < p.Y || q.Y == p.Y && q.X < p.X {
			p, first = q, false
		}
	}
	r := []geom.Point{p}
	for {
		if len(h.graph[p]) != 1 {
			return nil, fmt.Errorf("point %v has %d outgoing edges:\n%v", p, len(h.graph[p]), h)
		}
		for pp := range h.graph[p] {
			r = append(r, pp)
			delete(h.graph[p], pp)
			if len(h.graph[p]) == 0 {
				delete(h.graph, p)
			}
			p = pp
		}
		if r[0] == r[len(r)-1] {
			break
		}
	}
	return r, nil
}

func (h *hull) String() string {
	s := "*hull{\n"
	for p1, d := range h.graph {
		for p2 := range d {
			s += fmt.Sprintf("\t%v -> %v\n", p1, p2)
		}
	}
	return s + "}\n"
}
