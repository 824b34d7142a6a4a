// Package lathe implements the kernel.Kernel interface by sweeping the
// profile polyline directly: each profile vertex becomes a ring of
// Segments vertices and neighbouring rings are stitched with quads. The
// result is an exact faceted solid of revolution, without the resampling
// of an SDF backend.
package lathe

import (
	"math"

	"github.com/chazu/ogive/pkg/kernel"
	"github.com/chazu/ogive/pkg/profile"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*LatheKernel)(nil)

// DefaultWeldTolerance is the distance below which two vertices are merged.
const DefaultWeldTolerance = 1e-4

// latheSolid is an indexed triangle mesh in float64.
type latheSolid struct {
	verts []v3.Vec
	faces [][3]int
}

// BoundingBox returns the axis-aligned bounding box.
func (s *latheSolid) BoundingBox() (min, max [3]float64) {
	if len(s.verts) == 0 {
		return min, max
	}
	lo, hi := s.verts[0], s.verts[0]
	for _, v := range s.verts[1:] {
		lo = v3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = v3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return [3]float64{lo.X, lo.Y, lo.Z}, [3]float64{hi.X, hi.Y, hi.Z}
}

// transform returns a copy of s with m applied to every vertex.
func (s *latheSolid) transform(m sdf.M44) *latheSolid {
	verts := make([]v3.Vec, len(s.verts))
	for i, v := range s.verts {
		verts[i] = m.MulPosition(v)
	}
	return &latheSolid{verts: verts, faces: s.faces}
}

// LatheKernel implements kernel.Kernel by direct revolution.
type LatheKernel struct {
	tolerance float64
}

// New returns a LatheKernel welding at DefaultWeldTolerance.
func New() *LatheKernel {
	return NewWithTolerance(DefaultWeldTolerance)
}

// NewWithTolerance returns a LatheKernel that merges vertices closer than
// tol. A non-positive tol selects DefaultWeldTolerance.
func NewWithTolerance(tol float64) *LatheKernel {
	if tol <= 0 {
		tol = DefaultWeldTolerance
	}
	return &LatheKernel{tolerance: tol}
}

func unwrap(s kernel.Solid) *latheSolid {
	return s.(*latheSolid)
}

// ring is the vertex indices generated for one profile vertex. A vertex on
// the axis produces a single index.
type ring []int

func (r ring) at(j int) int {
	return r[j%len(r)]
}

// Revolve sweeps the profile about the Z axis. Profile X maps to -Z, so the
// tip points up and the base lies in z = 0; profile Y is the radius.
func (k *LatheKernel) Revolve(p *profile.Profile) (kernel.Solid, error) {
	if err := kernel.CheckProfile(p); err != nil {
		return nil, err
	}
	n := p.Segments
	s := &latheSolid{}

	cos := make([]float64, n)
	sin := make([]float64, n)
	for j := range cos {
		a := 2 * math.Pi * float64(j) / float64(n)
		cos[j], sin[j] = math.Cos(a), math.Sin(a)
	}

	rings := make([]ring, p.Polyline.Len())
	for i, pt := range p.Polyline.Points {
		z, r := -pt.X, pt.Y
		if r <= k.tolerance {
			rings[i] = ring{len(s.verts)}
			s.verts = append(s.verts, v3.Vec{Z: z})
			continue
		}
		rg := make(ring, n)
		for j := range rg {
			rg[j] = len(s.verts)
			s.verts = append(s.verts, v3.Vec{X: r * cos[j], Y: r * sin[j], Z: z})
		}
		rings[i] = rg
	}

	for _, e := range p.Polyline.Edges {
		a, b := rings[e.I], rings[e.J]
		if len(a) == 1 && len(b) == 1 {
			continue
		}
		for j := 0; j < n; j++ {
			if len(b) > 1 {
				s.faces = append(s.faces, [3]int{a.at(j), b.at(j), b.at(j + 1)})
			}
			if len(a) > 1 {
				s.faces = append(s.faces, [3]int{a.at(j), b.at(j + 1), a.at(j + 1)})
			}
		}
	}

	// Close an open tip or base with a fan about the axis.
	if tip := rings[0]; len(tip) > 1 {
		c := len(s.verts)
		s.verts = append(s.verts, v3.Vec{Z: -p.Polyline.First().X})
		for j := 0; j < n; j++ {
			s.faces = append(s.faces, [3]int{c, tip.at(j), tip.at(j + 1)})
		}
	}
	if base := rings[len(rings)-1]; len(base) > 1 {
		c := len(s.verts)
		s.verts = append(s.verts, v3.Vec{Z: -p.Polyline.Last().X})
		for j := 0; j < n; j++ {
			s.faces = append(s.faces, [3]int{c, base.at(j + 1), base.at(j)})
		}
	}

	return weld(s, k.tolerance), nil
}

// Translate moves a solid by (x, y, z).
func (k *LatheKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return unwrap(s).transform(sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *LatheKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return unwrap(s).transform(m)
}

// ToMesh flattens the solid into a flat-shaded triangle mesh: every
// triangle gets its own three vertices carrying the face normal.
func (k *LatheKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ls := unwrap(s)

	numVerts := len(ls.faces) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, f := range ls.faces {
		tri := sdf.Triangle3{ls.verts[f[0]], ls.verts[f[1]], ls.verts[f[2]]}
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
