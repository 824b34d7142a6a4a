// Package kernel defines the profile consumer interface. A Kernel revolves a
// sampled meridian profile about its axis into a solid, places it, and
// renders it to a triangle mesh. Implementations (sdfx, lathe) can be
// swapped without changing the rest of the system.
//
// Every kernel places the revolved solid with its axis on Z: the base
// plane sits at z = 0 and the tip points toward +Z.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/ogive/pkg/profile"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract profile consumer.
type Kernel interface {
	// Revolve sweeps p.Polyline through a full turn about the axis using
	// p.Segments segments. Backends that represent smooth surfaces may
	// ignore the segment count.
	Revolve(p *profile.Profile) (Solid, error)

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// ErrEmptyProfile is returned by Revolve when a profile has too few
// vertices to enclose any volume.
var ErrEmptyProfile = errors.New("kernel: profile has fewer than two vertices")

// CheckProfile performs the checks every Kernel.Revolve starts with.
func CheckProfile(p *profile.Profile) error {
	if p == nil || p.Polyline == nil || p.Polyline.Len() < 2 {
		return ErrEmptyProfile
	}
	if p.Segments < profile.MinSegments {
		return fmt.Errorf("kernel: %s: %d segments, need at least %d", p.Name, p.Segments, profile.MinSegments)
	}
	return p.Polyline.Validate()
}
