package profile

import (
	"math"

	"honnef.co/go/curve"
)

// GeometricCap describes a spherical blunting cap in the apex frame: x is
// measured from the sharp body's hypothetical apex toward the base.
type GeometricCap struct {
	Center  Point2D // sphere center, always on the axis
	Radius  float64
	Top     Point2D // foremost point of the cap, on the axis
	Tangent Point2D // where the cap meets the body curve

	// TopAngle and TangentAngle are the polar angles of Top and Tangent
	// about Center.
	TopAngle     float64
	TangentAngle float64
}

// Span returns the signed angle swept from Top to Tangent.
func (c GeometricCap) Span() float64 {
	return c.TangentAngle - c.TopAngle
}

// Sample rotates Top about Center in rings uniform angular steps. The
// tangent point itself is not included; the body curve starts there.
func (c GeometricCap) Sample(rings int) []Point2D {
	if rings <= 0 {
		return nil
	}
	pts := make([]Point2D, rings)
	step := c.Span() / float64(rings)
	pts[0] = c.Top
	for i := 1; i < rings; i++ {
		pts[i] = c.Top.Transform(curve.RotateAbout(float64(i)*step, c.Center))
	}
	return pts
}

func newCap(xc, rs, xt, yt float64) GeometricCap {
	center := Point2D{X: xc}
	top := Point2D{X: xc - rs}
	tangent := Point2D{X: xt, Y: yt}
	return GeometricCap{
		Center:       center,
		Radius:       rs,
		Top:          top,
		Tangent:      tangent,
		TopAngle:     math.Pi,
		TangentAngle: tangent.Sub(center).Angle(),
	}
}

// OgiveCap solves the cap of radius rs blended into a tangent ogive of base
// radius r and length. The body's radius of curvature is the full ogive
// radius (r² + length²) / 2r. An ogive shorter than its base radius curves
// back toward the axis and has no tangent point above it.
func OgiveCap(r, length, rs float64) (GeometricCap, error) {
	ev := evaluator{shape: "ogive cap"}
	rho := ev.finite((r*r + length*length) / (2 * r))
	xc := length - ev.sqrt((rho-rs)*(rho-rs)-(rho-r)*(rho-r))
	yt := ev.nonNegative("tangent height", rs*(rho-r)/(rho-rs))
	xt := xc - ev.sqrt(rs*rs-yt*yt)
	if ev.err != nil {
		return GeometricCap{}, ev.err
	}
	return newCap(xc, rs, xt, yt), nil
}

// ConeCap solves the cap of radius rs blended into a straight cone of base
// radius r and length.
func ConeCap(r, length, rs float64) (GeometricCap, error) {
	ev := evaluator{shape: "cone cap"}
	xt := ev.finite(length * length / r * ev.sqrt(rs*rs/(r*r+length*length)))
	yt := ev.finite(xt * r / length)
	xc := xt + ev.sqrt(rs*rs-yt*yt)
	if ev.err != nil {
		return GeometricCap{}, ev.err
	}
	return newCap(xc, rs, xt, yt), nil
}
