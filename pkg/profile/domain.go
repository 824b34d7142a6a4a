package profile

import "math"

// roundoff absorbs floating point noise at the edge of a domain, e.g. a
// square root argument of -1e-17 at an exact tangency.
const roundoff = 1e-12

// evaluator wraps the partial functions used by the samplers. The first
// domain violation sticks; later calls return 0 and the caller checks err
// once per curve.
type evaluator struct {
	shape string
	err   error
}

func (ev *evaluator) fail(op string, arg float64) float64 {
	if ev.err == nil {
		ev.err = &DomainError{Shape: ev.shape, Op: op, Arg: arg}
	}
	return 0
}

func (ev *evaluator) sqrt(x float64) float64 {
	if ev.err != nil {
		return 0
	}
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return ev.fail("finite", x)
	case x < -roundoff:
		return ev.fail("sqrt", x)
	case x < 0:
		return 0
	}
	return math.Sqrt(x)
}

func (ev *evaluator) acos(x float64) float64 {
	if ev.err != nil {
		return 0
	}
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return ev.fail("finite", x)
	case x > 1+roundoff || x < -1-roundoff:
		return ev.fail("acos", x)
	}
	return math.Acos(math.Max(-1, math.Min(1, x)))
}

// finite checks an intermediate value such as a quotient by a zero length.
func (ev *evaluator) finite(x float64) float64 {
	if ev.err != nil {
		return 0
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ev.fail("finite", x)
	}
	return x
}

// nonNegative checks a quantity that only exists for non-negative values,
// such as the height of a tangent point above the axis.
func (ev *evaluator) nonNegative(op string, x float64) float64 {
	x = ev.finite(x)
	if x < -roundoff {
		return ev.fail(op, x)
	}
	return math.Max(x, 0)
}

// point records a sampled point in the apex-origin frame (s measured from
// the apex toward the base) and converts it to the output frame.
func (ev *evaluator) point(s, y, length float64) Point2D {
	return Point2D{X: ev.finite(s - length), Y: ev.finite(y)}
}
