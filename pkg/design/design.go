package design

import (
	"fmt"

	"github.com/chazu/ogive/pkg/profile"
)

// Part is one named nose cone: a shape and where to put it.
type Part struct {
	ID    PartID        `json:"id"`
	Name  string        `json:"name"`
	Shape profile.Shape `json:"shape"`

	Rotation    *Vec3 `json:"rotation,omitempty"`    // Euler angles in degrees, applied X, Y, Z
	Translation *Vec3 `json:"translation,omitempty"` // applied after rotation
}

// Design is the top-level structure produced by evaluation.
type Design struct {
	Parts     map[PartID]*Part  `json:"parts"`
	Order     []PartID          `json:"order"` // definition order
	NameIndex map[string]PartID `json:"name_index"`
}

// New creates an empty Design.
func New() *Design {
	return &Design{
		Parts:     make(map[PartID]*Part),
		NameIndex: make(map[string]PartID),
	}
}

// AddPart adds p to the design and appends it to the definition order. It
// does not check for duplicates; Validate reports them.
func (d *Design) AddPart(p *Part) {
	if _, ok := d.Parts[p.ID]; !ok {
		d.Order = append(d.Order, p.ID)
	}
	d.Parts[p.ID] = p
	if p.Name != "" {
		d.NameIndex[p.Name] = p.ID
	}
}

// Lookup returns the part with the given name, or nil.
func (d *Design) Lookup(name string) *Part {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Parts[id]
}

// MustLookup returns the part with the given name, or panics.
func (d *Design) MustLookup(name string) *Part {
	p := d.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("design: no part named %q", name))
	}
	return p
}

// Get returns the part with the given ID, or nil.
func (d *Design) Get(id PartID) *Part {
	return d.Parts[id]
}

// Ordered returns the parts in definition order. IDs in Order that have no
// part are skipped.
func (d *Design) Ordered() []*Part {
	parts := make([]*Part, 0, len(d.Order))
	for _, id := range d.Order {
		if p := d.Parts[id]; p != nil {
			parts = append(parts, p)
		}
	}
	return parts
}

// PartCount returns the total number of parts.
func (d *Design) PartCount() int {
	return len(d.Parts)
}
