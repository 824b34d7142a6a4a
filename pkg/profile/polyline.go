package profile

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Point2D is a point in the cone's meridian half-plane. X runs along the
// axis of symmetry (apex near -length, base at 0) and Y is the radial
// distance from the axis.
type Point2D = curve.Point

// Edge connects two vertices of a Polyline by index.
type Edge struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Polyline is an ordered open path: Edges[i] always connects Points[i] and
// Points[i+1].
type Polyline struct {
	Points []Point2D `json:"points"`
	Edges  []Edge    `json:"edges"`
}

// NewPolyline builds a polyline through pts, dropping any vertex that
// repeats its predecessor exactly.
func NewPolyline(pts []Point2D) *Polyline {
	points := make([]Point2D, 0, len(pts))
	for _, p := range pts {
		if n := len(points); n > 0 && points[n-1] == p {
			continue
		}
		points = append(points, p)
	}
	var edges []Edge
	if len(points) > 1 {
		edges = make([]Edge, len(points)-1)
		for i := range edges {
			edges[i] = Edge{I: i, J: i + 1}
		}
	}
	return &Polyline{Points: points, Edges: edges}
}

// Len returns the number of vertices.
func (p *Polyline) Len() int {
	return len(p.Points)
}

// First returns the apex-most vertex.
func (p *Polyline) First() Point2D {
	return p.Points[0]
}

// Last returns the base vertex.
func (p *Polyline) Last() Point2D {
	return p.Points[len(p.Points)-1]
}

// Validate checks that the edges form one contiguous open path
// (0,1),(1,2),... covering every vertex, that no vertex lies below the
// axis and that X never decreases from apex to base.
func (p *Polyline) Validate() error {
	if len(p.Points) == 0 {
		return fmt.Errorf("polyline: no vertices")
	}
	if len(p.Edges) != len(p.Points)-1 {
		return fmt.Errorf("polyline: %d edges for %d vertices", len(p.Edges), len(p.Points))
	}
	for i, e := range p.Edges {
		if e.I != i || e.J != i+1 {
			return fmt.Errorf("polyline: edge %d is (%d,%d), want (%d,%d)", i, e.I, e.J, i, i+1)
		}
	}
	scale := 1.0
	for i, pt := range p.Points {
		if pt.IsNaN() || pt.IsInf() {
			return fmt.Errorf("polyline: vertex %d is not finite: %v", i, pt)
		}
		scale = max(scale, math.Abs(pt.X), math.Abs(pt.Y))
	}
	tol := 1e-9 * scale
	for i, pt := range p.Points {
		if pt.Y < -tol {
			return fmt.Errorf("polyline: vertex %d is below the axis: %v", i, pt)
		}
		if i > 0 && pt.X < p.Points[i-1].X-tol {
			return fmt.Errorf("polyline: vertex %d turns back toward the apex: %v after %v", i, pt, p.Points[i-1])
		}
	}
	return nil
}

// compose concatenates the tip cap, body and the closing base vertex. The body must
// begin at the cap's tangent point when a cap is present, so no join vertex
// is ever emitted twice.
func compose(tip, body []Point2D, base Point2D) *Polyline {
	pts := make([]Point2D, 0, len(tip)+len(body)+1)
	pts = append(pts, tip...)
	pts = append(pts, body...)
	pts = append(pts, base)
	return NewPolyline(pts)
}
