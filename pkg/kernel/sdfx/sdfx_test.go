package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/ogive/pkg/kernel"
	"github.com/chazu/ogive/pkg/profile"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// testCells keeps marching cubes fast in tests.
const testCells = 64

func sample(t *testing.T, s profile.Shape) *profile.Profile {
	t.Helper()
	p, err := profile.Sample(s)
	if err != nil {
		t.Fatalf("Sample(%s) failed: %v", s.Name(), err)
	}
	return p
}

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], wantMax[i])
		}
	}
}

func TestMeridian(t *testing.T) {
	tests := []struct {
		name string
		pts  []profile.Point2D
		want []v2.Vec
	}{
		{
			"sharp tip",
			[]profile.Point2D{{X: -2}, {X: -1, Y: 0.5}, {Y: 1}},
			[]v2.Vec{{X: 0, Y: 2}, {X: 0.5, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		},
		{
			"flat tip",
			[]profile.Point2D{{X: -2, Y: 1}, {Y: 1}},
			[]v2.Vec{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := meridian(profile.NewPolyline(tt.pts))
			if len(got) != len(tt.want) {
				t.Fatalf("meridian() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("vertex %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRevolveTangentOgive(t *testing.T) {
	k := NewWithCells(testCells)
	s, err := k.Revolve(sample(t, profile.DefaultTangentOgive()))
	if err != nil {
		t.Fatalf("Revolve failed: %v", err)
	}
	checkBounds(t, s, [3]float64{-1, -1, 0}, [3]float64{1, 1, 2}, 0.05)

	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	t.Logf("tangent ogive triangle count: %d", mesh.TriangleCount())
}

func TestRevolveEveryShape(t *testing.T) {
	k := NewWithCells(testCells)
	shapes := []profile.Shape{
		profile.DefaultSecantOgive(),
		profile.DefaultProlateHemispheroid(),
		profile.DefaultParabolicCone(),
		profile.DefaultHaackSeriesCone(),
		profile.DefaultBluntedCone(),
		profile.DefaultConic(),
	}
	for _, shape := range shapes {
		t.Run(shape.Kind().String(), func(t *testing.T) {
			s, err := k.Revolve(sample(t, shape))
			if err != nil {
				t.Fatalf("Revolve failed: %v", err)
			}
			mesh, err := k.ToMesh(s)
			if err != nil {
				t.Fatalf("ToMesh failed: %v", err)
			}
			if mesh.IsEmpty() {
				t.Fatal("mesh is empty")
			}
		})
	}
}

func TestRevolveCylinder(t *testing.T) {
	// n = 0 turns the power series into a cylinder with a flat tip.
	cyl := profile.DefaultPowerSeriesCone()
	cyl.N = 0
	k := NewWithCells(testCells)
	s, err := k.Revolve(sample(t, cyl))
	if err != nil {
		t.Fatalf("Revolve failed: %v", err)
	}
	checkBounds(t, s, [3]float64{-1, -1, 0}, [3]float64{1, 1, 2}, 0.05)
}

func TestRevolveRejectsEmptyProfile(t *testing.T) {
	_, err := New().Revolve(&profile.Profile{Segments: 32})
	if !errors.Is(err, kernel.ErrEmptyProfile) {
		t.Fatalf("Revolve() error = %v, want ErrEmptyProfile", err)
	}
}

func TestTranslate(t *testing.T) {
	k := NewWithCells(testCells)
	s, err := k.Revolve(sample(t, profile.DefaultConic()))
	if err != nil {
		t.Fatal(err)
	}
	moved := k.Translate(s, 100, 200, 300)
	checkBounds(t, moved, [3]float64{99, 199, 300}, [3]float64{101, 201, 302}, 0.05)
}

func TestRotate(t *testing.T) {
	k := NewWithCells(testCells)
	s, err := k.Revolve(sample(t, profile.DefaultConic()))
	if err != nil {
		t.Fatal(err)
	}

	// A cone along +Z rotated 90 degrees around Y should point along +X instead.
	rotated := k.Rotate(s, 0, 90, 0)
	checkBounds(t, rotated, [3]float64{0, -1, -1}, [3]float64{2, 1, 1}, 0.05)
}

func TestNewWithCells(t *testing.T) {
	if k := NewWithCells(0); k.cells != DefaultMeshCells {
		t.Errorf("NewWithCells(0).cells = %d, want %d", k.cells, DefaultMeshCells)
	}
	if k := NewWithCells(50); k.cells != 50 {
		t.Errorf("NewWithCells(50).cells = %d, want 50", k.cells)
	}
}
