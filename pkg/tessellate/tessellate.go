// Package tessellate walks a design and produces triangle meshes using a
// geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/ogive/pkg/design"
	"github.com/chazu/ogive/pkg/kernel"
	"github.com/chazu/ogive/pkg/profile"
)

// Correction records an auto-correction applied while sampling a part.
type Correction struct {
	PartName string
	profile.Correction
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %s", c.PartName, c.Correction)
}

// Tessellate samples, revolves and places every part of d in definition
// order and returns one mesh per part together with the corrections
// sampling applied. The tessellator is read-only and never mutates the
// design. The first part that fails aborts the run.
func Tessellate(d *design.Design, k kernel.Kernel) ([]*kernel.Mesh, []Correction, error) {
	if d == nil {
		return nil, nil, nil
	}

	var (
		meshes      []*kernel.Mesh
		corrections []Correction
	)
	for _, p := range d.Ordered() {
		mesh, applied, err := tessellatePart(k, p)
		if err != nil {
			return nil, nil, fmt.Errorf("tessellate: part %s: %w", partName(p), err)
		}
		meshes = append(meshes, mesh)
		for _, c := range applied {
			corrections = append(corrections, Correction{PartName: partName(p), Correction: c})
		}
	}

	return meshes, corrections, nil
}

// tessellatePart creates geometry for a single part.
func tessellatePart(k kernel.Kernel, p *design.Part) (*kernel.Mesh, []profile.Correction, error) {
	prof, err := profile.Sample(p.Shape)
	if err != nil {
		return nil, nil, err
	}

	solid, err := k.Revolve(prof)
	if err != nil {
		return nil, nil, fmt.Errorf("revolve: %w", err)
	}

	// Apply rotation first, then translation.
	if rot := p.Rotation; rot != nil && !isZero(*rot) {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}
	if trans := p.Translation; trans != nil && !isZero(*trans) {
		solid = k.Translate(solid, trans.X, trans.Y, trans.Z)
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, nil, fmt.Errorf("ToMesh failed: %w", err)
	}
	mesh.PartName = partName(p)

	return mesh, prof.Corrections, nil
}

// partName prefers the part's Name and falls back to its short ID.
func partName(p *design.Part) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID.Short()
}

func isZero(v design.Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
