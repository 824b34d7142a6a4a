package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var (
	approx = cmpopts.EquateApprox(0, 1e-9)
	loose  = cmpopts.EquateApprox(0, 1e-5)
)

// allDefaults returns one default-valued instance of every shape family.
func allDefaults() []Shape {
	return []Shape{
		DefaultTangentOgive(),
		DefaultSecantOgive(),
		DefaultProlateHemispheroid(),
		DefaultParabolicCone(),
		DefaultPowerSeriesCone(),
		DefaultHaackSeriesCone(),
		DefaultBluntedCone(),
		DefaultConic(),
	}
}

// withRings returns s with every ring count set to n.
func withRings(s Shape, n int) Shape {
	switch v := s.(type) {
	case TangentOgive:
		v.SphereRings, v.OgiveRings = n, n
		return v
	case SecantOgive:
		v.OgiveRings = n
		return v
	case ProlateHemispheroid:
		v.Rings = n
		return v
	case ParabolicCone:
		v.Rings = n
		return v
	case PowerSeriesCone:
		v.Rings = n
		return v
	case HaackSeriesCone:
		v.Rings = n
		return v
	case BluntedCone:
		v.SphereRings = n
		return v
	case Conic:
		v.StageRings, v.SphereRings = n, n
		return v
	}
	panic("unhandled shape")
}

func baseRadius(s Shape) float64 {
	switch v := s.(type) {
	case TangentOgive:
		return v.BaseRadius
	case SecantOgive:
		return v.BaseRadius
	case ProlateHemispheroid:
		return v.Radius
	case ParabolicCone:
		return v.Radius
	case PowerSeriesCone:
		return v.Radius
	case HaackSeriesCone:
		return v.Radius
	case BluntedCone:
		return v.BaseRadius
	case Conic:
		return v.BaseRadius()
	}
	panic("unhandled shape")
}

func mustSample(t *testing.T, s Shape) *Profile {
	t.Helper()
	p, err := Sample(s)
	if err != nil {
		t.Fatalf("Sample(%s) failed: %v", s.Name(), err)
	}
	return p
}
