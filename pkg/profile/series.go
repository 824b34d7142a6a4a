package profile

import "math"

// sampleBody evaluates y at rings uniformly spaced stations from the apex
// (inclusive) to the base (exclusive).
func sampleBody(ev *evaluator, length float64, rings int, y func(s float64) float64) []Point2D {
	step := length / float64(rings)
	pts := make([]Point2D, rings)
	for i := range pts {
		s := float64(i) * step
		pts[i] = ev.point(s, y(s), length)
	}
	return pts
}

// ParabolicCone is a segment of a parabola rotated about a line parallel to
// its latus rectum. K selects the family member: 0 is a cone, 1 a full
// parabola tangent to the base cylinder.
type ParabolicCone struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
	K      float64 `json:"k"`
	Rings  int     `json:"rings"`
	Sweep
}

// DefaultParabolicCone returns the host UI defaults.
func DefaultParabolicCone() ParabolicCone {
	return ParabolicCone{Radius: 1, Length: 2, K: 0.5, Rings: 32, Sweep: DefaultSweep()}
}

func (ParabolicCone) Kind() Kind   { return KindParabolicCone }
func (ParabolicCone) Name() string { return "Parabolic Cone" }

func (p ParabolicCone) validate() error {
	n := p.Name()
	return firstErr(
		nonNegative(n, "radius", p.Radius),
		nonNegative(n, "length", p.Length),
		unitInterval(n, "K", p.K),
		atLeast(n, "rings", p.Rings, MinRings),
		p.Sweep.validate(n),
	)
}

func (p ParabolicCone) autoCorrect() (Shape, []Correction) { return p, nil }

func (p ParabolicCone) critical() (string, float64, float64) {
	return zeroBound(namedValue{"length", p.Length})
}

func (p ParabolicCone) sample() (*Polyline, error) {
	ev := evaluator{shape: p.Name()}
	body := sampleBody(&ev, p.Length, p.Rings, func(s float64) float64 {
		u := ev.finite(s / p.Length)
		return p.Radius * (2*u - p.K*u*u) / (2 - p.K)
	})
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(nil, body, Point2D{Y: p.Radius}), nil
}

// PowerSeriesCone follows y = r·(x/L)^n. n = 1 is a cone, n = 0.5 a
// parabola, n = 0 a cylinder.
type PowerSeriesCone struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
	N      float64 `json:"n"`
	Rings  int     `json:"rings"`
	Sweep
}

// DefaultPowerSeriesCone returns the host UI defaults.
func DefaultPowerSeriesCone() PowerSeriesCone {
	return PowerSeriesCone{Radius: 1, Length: 2, N: 0.5, Rings: 32, Sweep: DefaultSweep()}
}

func (PowerSeriesCone) Kind() Kind   { return KindPowerSeriesCone }
func (PowerSeriesCone) Name() string { return "Power Series Cone" }

func (p PowerSeriesCone) validate() error {
	n := p.Name()
	return firstErr(
		nonNegative(n, "radius", p.Radius),
		nonNegative(n, "length", p.Length),
		unitInterval(n, "n", p.N),
		atLeast(n, "rings", p.Rings, MinRings),
		p.Sweep.validate(n),
	)
}

func (p PowerSeriesCone) autoCorrect() (Shape, []Correction) { return p, nil }

func (p PowerSeriesCone) critical() (string, float64, float64) {
	return zeroBound(namedValue{"length", p.Length})
}

func (p PowerSeriesCone) sample() (*Polyline, error) {
	ev := evaluator{shape: p.Name()}
	body := sampleBody(&ev, p.Length, p.Rings, func(s float64) float64 {
		return p.Radius * math.Pow(ev.finite(s/p.Length), p.N)
	})
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(nil, body, Point2D{Y: p.Radius}), nil
}

// HaackSeriesCone is the Sears-Haack family of minimum-drag profiles. C = 0
// gives the LD-Haack (von Kármán) ogive and C = 1/3 the LV-Haack.
type HaackSeriesCone struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
	C      float64 `json:"c"`
	Rings  int     `json:"rings"`
	Sweep
}

// DefaultHaackSeriesCone returns the host UI defaults.
func DefaultHaackSeriesCone() HaackSeriesCone {
	return HaackSeriesCone{Radius: 1, Length: 2, C: 0.5, Rings: 32, Sweep: DefaultSweep()}
}

func (HaackSeriesCone) Kind() Kind   { return KindHaackSeriesCone }
func (HaackSeriesCone) Name() string { return "Haack Series Cone" }

func (h HaackSeriesCone) validate() error {
	n := h.Name()
	return firstErr(
		nonNegative(n, "radius", h.Radius),
		nonNegative(n, "length", h.Length),
		nonNegative(n, "C", h.C),
		atLeast(n, "rings", h.Rings, MinRings),
		h.Sweep.validate(n),
	)
}

func (h HaackSeriesCone) autoCorrect() (Shape, []Correction) { return h, nil }

func (h HaackSeriesCone) critical() (string, float64, float64) {
	return zeroBound(namedValue{"length", h.Length})
}

func (h HaackSeriesCone) sample() (*Polyline, error) {
	ev := evaluator{shape: h.Name()}
	scale := h.Radius / math.Sqrt(math.Pi)
	body := sampleBody(&ev, h.Length, h.Rings, func(s float64) float64 {
		theta := ev.acos(1 - 2*ev.finite(s/h.Length))
		sin := math.Sin(theta)
		return scale * ev.sqrt(theta-math.Sin(2*theta)/2+h.C*sin*sin*sin)
	})
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(nil, body, Point2D{Y: h.Radius}), nil
}
