package profile

// BluntedCone is a straight cone whose tip is rounded by a sphere tangent to
// the cone's flank.
type BluntedCone struct {
	BaseRadius   float64 `json:"base_radius"`
	ApexLength   float64 `json:"apex_length"`
	SphereRadius float64 `json:"sphere_radius"`
	SphereRings  int     `json:"sphere_rings"`
	Sweep
}

// DefaultBluntedCone returns the host UI defaults.
func DefaultBluntedCone() BluntedCone {
	return BluntedCone{
		BaseRadius:   1,
		ApexLength:   2,
		SphereRadius: 0.2,
		SphereRings:  32,
		Sweep:        DefaultSweep(),
	}
}

func (BluntedCone) Kind() Kind   { return KindBluntedCone }
func (BluntedCone) Name() string { return "Blunted Cone" }

func (b BluntedCone) validate() error {
	n := b.Name()
	err := firstErr(
		nonNegative(n, "base radius", b.BaseRadius),
		nonNegative(n, "apex length", b.ApexLength),
		nonNegative(n, "sphere radius", b.SphereRadius),
		b.Sweep.validate(n),
	)
	if err == nil && b.SphereRadius > 0 {
		err = atLeast(n, "sphere rings", b.SphereRings, MinRings)
	}
	return err
}

func (b BluntedCone) autoCorrect() (Shape, []Correction) {
	var cs []Correction
	if c, ok := clampSphere(&b.SphereRadius, b.BaseRadius); ok {
		cs = append(cs, c)
	}
	return b, cs
}

func (b BluntedCone) critical() (string, float64, float64) {
	return zeroBound(
		namedValue{"base radius", b.BaseRadius},
		namedValue{"apex length", b.ApexLength},
	)
}

func (b BluntedCone) sample() (*Polyline, error) {
	tip, start, err := coneTip(b.BaseRadius, b.ApexLength, b.SphereRadius, b.SphereRings)
	if err != nil {
		return nil, err
	}
	body := toOutput([]Point2D{start}, b.ApexLength)
	return compose(toOutput(tip, b.ApexLength), body, Point2D{Y: b.BaseRadius}), nil
}

// coneTip returns the cap samples and the point where the straight flank
// begins, in the apex frame. Without a sphere the flank starts at the apex.
func coneTip(r, length, rs float64, rings int) ([]Point2D, Point2D, error) {
	if rs <= 0 {
		return nil, Point2D{}, nil
	}
	gc, err := ConeCap(r, length, rs)
	if err != nil {
		return nil, Point2D{}, err
	}
	return gc.Sample(rings), gc.Tangent, nil
}

// Stage is one frustum of an N-stage conic. Radius is the stage's aft
// radius.
type Stage struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
}

// Conic is a chain of 1 to MaxStages straight frustums listed from the apex
// to the base. Stage breakpoints are anchored at the base, so when the
// stages are shorter than ApexLength the first stage absorbs the
// difference. A blunting sphere blends into the first stage.
type Conic struct {
	ApexLength   float64 `json:"apex_length"`
	Stages       []Stage `json:"stages"`
	StageRings   int     `json:"stage_rings"`
	SphereRadius float64 `json:"sphere_radius"`
	SphereRings  int     `json:"sphere_rings"`
	Sweep
}

// DefaultConic returns a single-stage cone matching the other defaults.
func DefaultConic() Conic {
	return Conic{
		ApexLength:  2,
		Stages:      []Stage{{Radius: 1, Length: 2}},
		StageRings:  1,
		SphereRings: 32,
		Sweep:       DefaultSweep(),
	}
}

func (Conic) Kind() Kind   { return KindConic }
func (Conic) Name() string { return "Conic" }

// BaseRadius returns the aft radius of the last stage.
func (c Conic) BaseRadius() float64 {
	if len(c.Stages) == 0 {
		return 0
	}
	return c.Stages[len(c.Stages)-1].Radius
}

// StageLength returns the summed length of all stages.
func (c Conic) StageLength() float64 {
	var sum float64
	for _, st := range c.Stages {
		sum += st.Length
	}
	return sum
}

func (c Conic) validate() error {
	n := c.Name()
	if len(c.Stages) < 1 || len(c.Stages) > MaxStages {
		return invalid(n, "stage count", float64(len(c.Stages)), "must be between 1 and 10")
	}
	errs := []error{
		nonNegative(n, "apex length", c.ApexLength),
		nonNegative(n, "sphere radius", c.SphereRadius),
		atLeast(n, "stage rings", c.StageRings, MinRings),
		c.Sweep.validate(n),
	}
	for _, st := range c.Stages {
		errs = append(errs,
			nonNegative(n, "stage radius", st.Radius),
			nonNegative(n, "stage length", st.Length),
		)
	}
	err := firstErr(errs...)
	if err == nil && c.SphereRadius > 0 {
		err = atLeast(n, "sphere rings", c.SphereRings, MinRings)
	}
	return err
}

func (c Conic) autoCorrect() (Shape, []Correction) {
	var cs []Correction
	if sum := c.StageLength(); sum > c.ApexLength {
		cs = append(cs, Correction{
			Field:  "apex length",
			From:   c.ApexLength,
			To:     sum,
			Reason: "stages are longer than the apex length",
		})
		c.ApexLength = sum
	}
	if fix, ok := clampSphere(&c.SphereRadius, c.Stages[0].Radius); ok {
		cs = append(cs, fix)
	}
	return c, cs
}

func (c Conic) critical() (string, float64, float64) {
	first := c.knots()[1]
	switch {
	case c.ApexLength == 0:
		return "apex length", 0, 0
	case first.X == 0:
		return "stage length", c.Stages[0].Length, 0
	case first.Y == 0:
		return "stage radius", 0, 0
	}
	return "apex length", c.ApexLength, 0
}

// knots returns the stage breakpoints in the apex frame, starting with the
// apex itself.
func (c Conic) knots() []Point2D {
	knots := make([]Point2D, 0, len(c.Stages)+1)
	knots = append(knots, Point2D{})
	s := c.ApexLength - c.StageLength()
	for _, st := range c.Stages {
		s += st.Length
		knots = append(knots, Point2D{X: s, Y: st.Radius})
	}
	return knots
}

func (c Conic) sample() (*Polyline, error) {
	knots := c.knots()
	first := knots[1]
	tip, start, err := coneTip(first.Y, first.X, c.SphereRadius, c.SphereRings)
	if err != nil {
		return nil, err
	}
	knots[0] = start

	body := make([]Point2D, 0, len(c.Stages)*c.StageRings)
	for i := 0; i+1 < len(knots); i++ {
		from, to := knots[i], knots[i+1]
		for k := 0; k < c.StageRings; k++ {
			body = append(body, from.Lerp(to, float64(k)/float64(c.StageRings)))
		}
	}
	base := Point2D{Y: c.BaseRadius()}
	return compose(toOutput(tip, c.ApexLength), toOutput(body, c.ApexLength), base), nil
}
