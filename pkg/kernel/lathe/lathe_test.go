package lathe

import (
	"math"
	"testing"

	"github.com/chazu/ogive/pkg/kernel"
	"github.com/chazu/ogive/pkg/profile"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polyProfile(segments int, pts ...profile.Point2D) *profile.Profile {
	return &profile.Profile{Name: "test", Segments: segments, Polyline: profile.NewPolyline(pts)}
}

func vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

func revolve(t *testing.T, k *LatheKernel, p *profile.Profile) *latheSolid {
	t.Helper()
	s, err := k.Revolve(p)
	require.NoError(t, err)
	return s.(*latheSolid)
}

// requireClosed checks that every directed edge is matched by exactly one
// edge running the other way, i.e. the surface is closed and consistently
// oriented.
func requireClosed(t *testing.T, s *latheSolid) {
	t.Helper()
	edges := make(map[[2]int]int)
	for _, f := range s.faces {
		for i := 0; i < 3; i++ {
			edges[[2]int{f[i], f[(i+1)%3]}]++
		}
	}
	for e, n := range edges {
		require.Equal(t, 1, n, "edge %v used %d times", e, n)
		require.Equal(t, 1, edges[[2]int{e[1], e[0]}], "edge %v has no twin", e)
	}
}

// volume is the signed volume enclosed by the faces; positive when the
// faces are wound outward.
func volume(s *latheSolid) float64 {
	var v float64
	for _, f := range s.faces {
		a, b, c := s.verts[f[0]], s.verts[f[1]], s.verts[f[2]]
		v += a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
	}
	return v / 6
}

func TestRevolveCone(t *testing.T) {
	s := revolve(t, New(), polyProfile(8, profile.Point2D{X: -2}, profile.Point2D{Y: 1}))

	// apex + one ring + base center
	assert.Len(t, s.verts, 10)
	// apex fan + base fan
	assert.Len(t, s.faces, 16)
	requireClosed(t, s)

	// An octagonal pyramid: area (n/2)·r²·sin(2π/n), height 2.
	want := 4 * math.Sin(math.Pi/4) * 2 / 3
	assert.InDelta(t, want, volume(s), 1e-9)

	min, max := s.BoundingBox()
	assert.InDelta(t, 0, min[2], 1e-12)
	assert.InDelta(t, 2, max[2], 1e-12)
	assert.InDelta(t, 1, max[0], 1e-12)
}

func TestRevolveCylinderCapsBothEnds(t *testing.T) {
	s := revolve(t, New(), polyProfile(6, profile.Point2D{X: -1, Y: 1}, profile.Point2D{Y: 1}))

	// two rings + two fan centers
	assert.Len(t, s.verts, 14)
	// side quads + two fans
	assert.Len(t, s.faces, 12+12)
	requireClosed(t, s)
	assert.Greater(t, volume(s), 0.0)
}

func TestRevolveWeldsCloseRings(t *testing.T) {
	p := polyProfile(8,
		profile.Point2D{X: -1},
		profile.Point2D{X: -0.5, Y: 0.5},
		profile.Point2D{X: -0.5 + DefaultWeldTolerance/2, Y: 0.5},
		profile.Point2D{Y: 1},
	)
	s := revolve(t, New(), p)

	// The two middle rings collapse into one.
	assert.Len(t, s.verts, 1+8+8+1)
	requireClosed(t, s)

	coarse := revolve(t, NewWithTolerance(0.1), polyProfile(8,
		profile.Point2D{X: -1},
		profile.Point2D{X: -0.5, Y: 0.5},
		profile.Point2D{Y: 1},
	))
	assert.Len(t, s.faces, len(coarse.faces))
}

func TestRevolveAxisSegment(t *testing.T) {
	// A profile that runs along the axis before leaving it sweeps no
	// surface for the axial run.
	s := revolve(t, New(), polyProfile(5,
		profile.Point2D{X: -3},
		profile.Point2D{X: -2},
		profile.Point2D{Y: 1},
	))
	requireClosed(t, s)
	assert.Len(t, s.faces, 10)
}

func TestRevolveEveryDefault(t *testing.T) {
	shapes := []profile.Shape{
		profile.DefaultTangentOgive(),
		profile.DefaultSecantOgive(),
		profile.DefaultProlateHemispheroid(),
		profile.DefaultParabolicCone(),
		profile.DefaultPowerSeriesCone(),
		profile.DefaultHaackSeriesCone(),
		profile.DefaultBluntedCone(),
		profile.DefaultConic(),
	}
	k := New()
	for _, shape := range shapes {
		t.Run(shape.Kind().String(), func(t *testing.T) {
			p, err := profile.Sample(shape)
			require.NoError(t, err)
			s := revolve(t, k, p)
			requireClosed(t, s)

			// Inscribed in the base cylinder of radius 1 and height 2.
			v := volume(s)
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 2*math.Pi)

			// Blunted tips stop short of the sharp apex.
			min, max := s.BoundingBox()
			assert.InDelta(t, 0, min[2], 1e-9)
			assert.LessOrEqual(t, max[2], 2+1e-9)
			assert.Greater(t, max[2], 1.5)
		})
	}
}

func TestRevolveErrors(t *testing.T) {
	k := New()
	_, err := k.Revolve(polyProfile(8, profile.Point2D{}))
	assert.ErrorIs(t, err, kernel.ErrEmptyProfile)

	_, err = k.Revolve(polyProfile(2, profile.Point2D{X: -1}, profile.Point2D{Y: 1}))
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	k := New()
	s := revolve(t, k, polyProfile(4, profile.Point2D{X: -2}, profile.Point2D{Y: 1}))
	moved := k.Translate(s, 10, 20, 30)

	min, max := moved.BoundingBox()
	assert.InDeltaSlice(t, []float64{9, 19, 30}, min[:], 1e-9)
	assert.InDeltaSlice(t, []float64{11, 21, 32}, max[:], 1e-9)

	// The original is untouched.
	min, _ = s.BoundingBox()
	assert.InDelta(t, 0, min[2], 1e-12)
}

func TestRotate(t *testing.T) {
	k := New()
	s := revolve(t, k, polyProfile(4, profile.Point2D{X: -2}, profile.Point2D{Y: 1}))

	// The tip along +Z rotated 90 degrees about Y points along +X.
	rotated := k.Rotate(s, 0, 90, 0)
	min, max := rotated.BoundingBox()
	assert.InDeltaSlice(t, []float64{0, -1, -1}, min[:], 1e-9)
	assert.InDeltaSlice(t, []float64{2, 1, 1}, max[:], 1e-9)

	// Rotation preserves the enclosed volume.
	assert.InDelta(t, volume(s), volume(rotated.(*latheSolid)), 1e-9)
}

func TestToMesh(t *testing.T) {
	k := New()
	s := revolve(t, k, polyProfile(8, profile.Point2D{X: -2}, profile.Point2D{Y: 1}))
	mesh, err := k.ToMesh(s)
	require.NoError(t, err)

	assert.Equal(t, 16, mesh.TriangleCount())
	assert.Equal(t, 48, mesh.VertexCount())
	assert.Len(t, mesh.Normals, len(mesh.Vertices))

	for i := 0; i < len(mesh.Normals); i += 3 {
		n := math.Sqrt(float64(mesh.Normals[i]*mesh.Normals[i] +
			mesh.Normals[i+1]*mesh.Normals[i+1] +
			mesh.Normals[i+2]*mesh.Normals[i+2]))
		assert.InDelta(t, 1, n, 1e-5)
	}

	// The last eight triangles are the base fan and face down.
	for tri := 8; tri < 16; tri++ {
		assert.InDelta(t, -1, mesh.Normals[tri*9+2], 1e-5)
	}
}

func TestWeldDropsCollapsedFaces(t *testing.T) {
	s := &latheSolid{}
	s.verts = append(s.verts,
		vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0),
		vec(1e-6, 0, 0), vec(1+1e-6, 0, 0),
	)
	s.faces = [][3]int{{0, 1, 2}, {0, 3, 2}, {1, 4, 2}}

	out := weld(s, 1e-4)
	assert.Len(t, out.verts, 3)
	assert.Equal(t, [][3]int{{0, 1, 2}}, out.faces)
}
