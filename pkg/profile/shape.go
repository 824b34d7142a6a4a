// Package profile generates the meridian profiles of axially symmetric
// nose cones. Each shape family samples its analytic profile curve into a
// Polyline that runs from the apex to the base, ready to be revolved by a
// kernel.Kernel.
//
// Everything here is a pure function of its inputs: there is no package
// state, so profiles may be generated concurrently.
package profile

import "fmt"

const (
	MinSegments = 3  // fewest revolution segments a consumer accepts
	MinRings    = 1  // fewest samples along any curve segment
	MaxStages   = 10 // most stages an N-stage conic may have

	// SphereClearance is subtracted from the base radius when a blunting
	// sphere is as large as the body it blends into.
	SphereClearance = 0.001

	// SecantClearance is added to the smallest secant ogive radius that
	// spans the chord from apex to base.
	SecantClearance = 0.01
)

// Kind enumerates the supported shape families.
type Kind int

const (
	KindTangentOgive Kind = iota
	KindSecantOgive
	KindProlateHemispheroid
	KindParabolicCone
	KindPowerSeriesCone
	KindHaackSeriesCone
	KindBluntedCone
	KindConic
)

func (k Kind) String() string {
	switch k {
	case KindTangentOgive:
		return "tangent-ogive"
	case KindSecantOgive:
		return "secant-ogive"
	case KindProlateHemispheroid:
		return "prolate-hemispheroid"
	case KindParabolicCone:
		return "parabolic-cone"
	case KindPowerSeriesCone:
		return "power-series-cone"
	case KindHaackSeriesCone:
		return "haack-series-cone"
	case KindBluntedCone:
		return "blunted-cone"
	case KindConic:
		return "conic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is one parameterised shape family. The implementations in this
// package are plain value types; methods never modify the receiver.
type Shape interface {
	Kind() Kind
	// Name is the human-readable label handed to the profile consumer.
	Name() string
	// SegmentCount is the number of revolution segments requested.
	SegmentCount() int

	validate() error
	autoCorrect() (Shape, []Correction)
	sample() (*Polyline, error)
	// critical names the parameter to blame when sampling keeps failing.
	critical() (field string, value, bound float64)
}

// Sweep holds the revolution parameters shared by every shape family.
type Sweep struct {
	Segments int `json:"segments"`
}

// SegmentCount returns the number of revolution segments.
func (s Sweep) SegmentCount() int {
	return s.Segments
}

func (s Sweep) validate(shape string) error {
	return atLeast(shape, "segments", s.Segments, MinSegments)
}

// DefaultSweep is the segment count offered by the host UI.
func DefaultSweep() Sweep {
	return Sweep{Segments: 32}
}

// toOutput shifts apex-frame points so that the base sits at x = 0.
func toOutput(pts []Point2D, length float64) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = Point2D{X: p.X - length, Y: p.Y}
	}
	return out
}

// zeroBound reports which of the given dimensions is zero, for use in a
// ConfigurationError. Dimensions are checked in order.
func zeroBound(fields ...namedValue) (string, float64, float64) {
	for _, f := range fields {
		if f.value == 0 {
			return f.name, 0, 0
		}
	}
	if len(fields) == 0 {
		return "", 0, 0
	}
	return fields[0].name, fields[0].value, 0
}

type namedValue struct {
	name  string
	value float64
}
