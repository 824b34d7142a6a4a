package profile

import (
	"fmt"
	"math"
)

// Correction records one infeasible parameter replaced by the smallest
// feasible substitute.
type Correction struct {
	Field  string  `json:"field"`
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Reason string  `json:"reason"`
}

func (c Correction) String() string {
	return fmt.Sprintf("%s %g -> %g: %s", c.Field, c.From, c.To, c.Reason)
}

// Validate checks s against its documented bounds and returns an
// *InvalidParameterError for the first violation.
func Validate(s Shape) error {
	if s == nil {
		return fmt.Errorf("profile: nil shape")
	}
	return s.validate()
}

// AutoCorrect returns a copy of s with every infeasible value replaced, and
// the corrections applied. s itself is not modified. Callers are expected
// to Validate first.
func AutoCorrect(s Shape) (Shape, []Correction) {
	return s.autoCorrect()
}

// clampSphere keeps a blunting sphere strictly smaller than the radius it
// blends into. A zero sphere radius means no blunting and is left alone.
func clampSphere(rs *float64, base float64) (Correction, bool) {
	if *rs <= 0 || *rs < base {
		return Correction{}, false
	}
	c := Correction{
		Field:  "sphere radius",
		From:   *rs,
		To:     math.Max(0, base-SphereClearance),
		Reason: "sphere must be smaller than the base radius",
	}
	*rs = c.To
	return c, true
}
