package profile

// ProlateHemispheroid is half of an ellipse of revolution whose major axis
// lies along the cone axis.
type ProlateHemispheroid struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
	Rings  int     `json:"rings"`
	// SmoothTip splits the tip-most 1/Rings of the length into Rings
	// further rings, where the curvature is highest.
	SmoothTip bool `json:"smooth_tip"`
	Sweep
}

// DefaultProlateHemispheroid returns the host UI defaults.
func DefaultProlateHemispheroid() ProlateHemispheroid {
	return ProlateHemispheroid{
		Radius:    1,
		Length:    2,
		Rings:     32,
		SmoothTip: true,
		Sweep:     DefaultSweep(),
	}
}

func (ProlateHemispheroid) Kind() Kind   { return KindProlateHemispheroid }
func (ProlateHemispheroid) Name() string { return "Prolate Hemispheroid" }

func (h ProlateHemispheroid) validate() error {
	n := h.Name()
	return firstErr(
		nonNegative(n, "radius", h.Radius),
		nonNegative(n, "length", h.Length),
		atLeast(n, "rings", h.Rings, MinRings),
		h.Sweep.validate(n),
	)
}

func (h ProlateHemispheroid) autoCorrect() (Shape, []Correction) {
	return h, nil
}

func (h ProlateHemispheroid) critical() (string, float64, float64) {
	return zeroBound(namedValue{"length", h.Length})
}

func (h ProlateHemispheroid) sample() (*Polyline, error) {
	r, length, n := h.Radius, h.Length, h.Rings
	ev := evaluator{shape: h.Name()}
	// s runs from the tip; the ellipse is centred on the base plane.
	at := func(s float64) Point2D {
		u := ev.finite((length - s) / length)
		return ev.point(s, r*ev.sqrt(1-u*u), length)
	}

	step := length / float64(n)
	body := make([]Point2D, 0, 2*n)
	first := 0
	if h.SmoothTip {
		sub := step / float64(n)
		for k := 0; k < n; k++ {
			body = append(body, at(float64(k)*sub))
		}
		first = 1
	}
	for i := first; i < n; i++ {
		body = append(body, at(float64(i)*step))
	}
	if ev.err != nil {
		return nil, ev.err
	}
	return compose(nil, body, Point2D{Y: r}), nil
}
