package profile

import (
	"math"
	"testing"
)

func TestNewPolylineEdges(t *testing.T) {
	pl := NewPolyline([]Point2D{{X: -2}, {X: -1, Y: 0.5}, {X: 0, Y: 1}})
	diff(t, []Edge{{0, 1}, {1, 2}}, pl.Edges)
	if err := pl.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestNewPolylineDropsRepeatedVertex(t *testing.T) {
	pl := NewPolyline([]Point2D{{X: -1}, {X: -1}, {X: 0, Y: 1}, {X: 0, Y: 1}})
	if pl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pl.Len())
	}
	diff(t, []Edge{{0, 1}}, pl.Edges)
}

func TestNewPolylineSingleVertex(t *testing.T) {
	pl := NewPolyline([]Point2D{{X: 1, Y: 1}})
	if len(pl.Edges) != 0 {
		t.Errorf("single vertex polyline has %d edges", len(pl.Edges))
	}
	if err := pl.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestPolylineValidate(t *testing.T) {
	tests := []struct {
		name string
		pl   Polyline
	}{
		{"empty", Polyline{}},
		{"missing edge", Polyline{Points: []Point2D{{}, {X: 1}, {X: 2}}, Edges: []Edge{{0, 1}}}},
		{"skipping edge", Polyline{Points: []Point2D{{}, {X: 1}, {X: 2}}, Edges: []Edge{{0, 1}, {0, 2}}}},
		{"nan vertex", Polyline{Points: []Point2D{{}, {X: math.NaN()}}, Edges: []Edge{{0, 1}}}},
		{"below axis", Polyline{Points: []Point2D{{X: -2}, {X: -1, Y: -0.1}, {Y: 1}}, Edges: []Edge{{0, 1}, {1, 2}}}},
		{"turns back", Polyline{Points: []Point2D{{X: -2}, {X: -1, Y: 0.5}, {X: -1.5, Y: 0.7}, {Y: 1}}, Edges: []Edge{{0, 1}, {1, 2}, {2, 3}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pl.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestPolylineValidateTolerance(t *testing.T) {
	// Round-off scaled to the profile size is not a defect.
	pl := NewPolyline([]Point2D{{X: -20000, Y: -1e-9}, {X: -10000, Y: 3000}, {X: -10000 - 1e-9, Y: 4000}, {Y: 5000}})
	if err := pl.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestComposeJoinsSegments(t *testing.T) {
	tip := []Point2D{{X: -2}, {X: -1.9, Y: 0.1}}
	body := []Point2D{{X: -1.8, Y: 0.2}, {X: -1, Y: 0.6}}
	pl := compose(tip, body, Point2D{Y: 1})
	if pl.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", pl.Len())
	}
	if pl.First() != tip[0] || pl.Last() != (Point2D{Y: 1}) {
		t.Errorf("endpoints = %v, %v", pl.First(), pl.Last())
	}
	if err := pl.Validate(); err != nil {
		t.Error(err)
	}
}
