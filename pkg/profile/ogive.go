package profile

import "math"

// TangentOgive is a circular arc meeting the base cylinder with zero angle,
// optionally blunted by a spherical cap.
type TangentOgive struct {
	BaseRadius   float64 `json:"base_radius"`
	ApexLength   float64 `json:"apex_length"`
	SphereRadius float64 `json:"sphere_radius"` // 0 leaves the tip sharp
	SphereRings  int     `json:"sphere_rings"`
	OgiveRings   int     `json:"ogive_rings"`
	Sweep
}

// DefaultTangentOgive returns the host UI defaults.
func DefaultTangentOgive() TangentOgive {
	return TangentOgive{
		BaseRadius:   1,
		ApexLength:   2,
		SphereRadius: 0.2,
		SphereRings:  32,
		OgiveRings:   32,
		Sweep:        DefaultSweep(),
	}
}

func (TangentOgive) Kind() Kind   { return KindTangentOgive }
func (TangentOgive) Name() string { return "Tangent Ogive" }

// OgiveRadius returns the radius of the arc forming the ogive.
func (t TangentOgive) OgiveRadius() float64 {
	return (t.BaseRadius*t.BaseRadius + t.ApexLength*t.ApexLength) / (2 * t.BaseRadius)
}

func (t TangentOgive) validate() error {
	n := t.Name()
	err := firstErr(
		nonNegative(n, "base radius", t.BaseRadius),
		nonNegative(n, "apex length", t.ApexLength),
		nonNegative(n, "sphere radius", t.SphereRadius),
		atLeast(n, "ogive rings", t.OgiveRings, MinRings),
		t.Sweep.validate(n),
	)
	if err == nil && t.SphereRadius > 0 {
		err = atLeast(n, "sphere rings", t.SphereRings, MinRings)
	}
	return err
}

func (t TangentOgive) autoCorrect() (Shape, []Correction) {
	var cs []Correction
	if c, ok := clampSphere(&t.SphereRadius, t.BaseRadius); ok {
		cs = append(cs, c)
	}
	return t, cs
}

func (t TangentOgive) critical() (string, float64, float64) {
	if t.BaseRadius > 0 && t.ApexLength < t.BaseRadius {
		return "apex length", t.ApexLength, t.BaseRadius
	}
	return zeroBound(
		namedValue{"base radius", t.BaseRadius},
		namedValue{"apex length", t.ApexLength},
	)
}

func (t TangentOgive) sample() (*Polyline, error) {
	r, length := t.BaseRadius, t.ApexLength
	ev := evaluator{shape: t.Name()}
	rho := ev.finite(t.OgiveRadius())
	// Shorter than the base radius, the arc through the apex overhangs it.
	ev.nonNegative("ogive radius", rho-r)
	if ev.err != nil {
		return nil, ev.err
	}

	var tip []Point2D
	start := 0.0
	if t.SphereRadius > 0 {
		gc, err := OgiveCap(r, length, t.SphereRadius)
		if err != nil {
			return nil, err
		}
		tip = toOutput(gc.Sample(t.SphereRings), length)
		start = gc.Tangent.X
	}

	step := (length - start) / float64(t.OgiveRings)
	body := make([]Point2D, t.OgiveRings)
	for i := range body {
		s := start + float64(i)*step
		d := length - s
		body[i] = ev.point(s, ev.sqrt(rho*rho-d*d)+r-rho, length)
	}
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(tip, body, Point2D{Y: r}), nil
}

// SecantOgive is a circular arc of a chosen radius through the apex and the
// base rim that, unlike the tangent ogive, meets the base at an angle.
type SecantOgive struct {
	BaseRadius  float64 `json:"base_radius"`
	ApexLength  float64 `json:"apex_length"`
	OgiveRadius float64 `json:"ogive_radius"`
	OgiveRings  int     `json:"ogive_rings"`
	Sweep
}

// DefaultSecantOgive returns the host UI defaults.
func DefaultSecantOgive() SecantOgive {
	return SecantOgive{
		BaseRadius:  1,
		ApexLength:  2,
		OgiveRadius: 2.5,
		OgiveRings:  32,
		Sweep:       DefaultSweep(),
	}
}

func (SecantOgive) Kind() Kind   { return KindSecantOgive }
func (SecantOgive) Name() string { return "Secant Ogive" }

// MinOgiveRadius is half the apex-to-rim chord: no smaller arc can join
// the two points.
func (s SecantOgive) MinOgiveRadius() float64 {
	return math.Hypot(s.ApexLength, s.BaseRadius) / 2
}

func (s SecantOgive) validate() error {
	n := s.Name()
	return firstErr(
		nonNegative(n, "base radius", s.BaseRadius),
		nonNegative(n, "apex length", s.ApexLength),
		nonNegative(n, "ogive radius", s.OgiveRadius),
		atLeast(n, "ogive rings", s.OgiveRings, MinRings),
		s.Sweep.validate(n),
	)
}

func (s SecantOgive) autoCorrect() (Shape, []Correction) {
	if s.OgiveRadius >= s.MinOgiveRadius() {
		return s, nil
	}
	fixed, c := s.widen("ogive radius shorter than half the apex-to-rim chord")
	return fixed, []Correction{c}
}

// correctDomain is the single retry taken when sampling hits a domain
// error.
func (s SecantOgive) correctDomain() (Shape, Correction) {
	return s.widen("ogive radius produced an out-of-domain arc")
}

func (s SecantOgive) widen(reason string) (SecantOgive, Correction) {
	c := Correction{
		Field:  "ogive radius",
		From:   s.OgiveRadius,
		To:     s.MinOgiveRadius() + SecantClearance,
		Reason: reason,
	}
	s.OgiveRadius = c.To
	return s, c
}

func (s SecantOgive) critical() (string, float64, float64) {
	if s.ApexLength == 0 || s.BaseRadius == 0 {
		return zeroBound(
			namedValue{"apex length", s.ApexLength},
			namedValue{"base radius", s.BaseRadius},
		)
	}
	return "ogive radius", s.OgiveRadius, s.MinOgiveRadius()
}

func (s SecantOgive) sample() (*Polyline, error) {
	r, length, rho := s.BaseRadius, s.ApexLength, s.OgiveRadius
	ev := evaluator{shape: s.Name()}
	alpha := math.Atan(ev.finite(r/length)) - ev.acos(ev.finite(math.Hypot(length, r)/(2*rho)))
	cx := rho * math.Cos(alpha)
	cy := rho * math.Sin(alpha)

	step := length / float64(s.OgiveRings)
	body := make([]Point2D, s.OgiveRings)
	for i := range body {
		x := float64(i) * step
		d := cx - x
		body[i] = ev.point(x, ev.sqrt(rho*rho-d*d)+cy, length)
	}
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(nil, body, Point2D{Y: r}), nil
}
