package lathe

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

type cell [3]int64

func cellOf(v v3.Vec, tol float64) cell {
	return cell{
		int64(math.Floor(v.X / tol)),
		int64(math.Floor(v.Y / tol)),
		int64(math.Floor(v.Z / tol)),
	}
}

// weld merges vertices closer than tol and drops the faces that collapse
// as a result. Surviving vertices keep their first-seen position.
func weld(s *latheSolid, tol float64) *latheSolid {
	grid := make(map[cell][]int)
	remap := make([]int, len(s.verts))
	out := &latheSolid{verts: make([]v3.Vec, 0, len(s.verts))}

	for i, v := range s.verts {
		c := cellOf(v, tol)
		remap[i] = -1
	search:
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						w := out.verts[j]
						if math.Hypot(math.Hypot(v.X-w.X, v.Y-w.Y), v.Z-w.Z) < tol {
							remap[i] = j
							break search
						}
					}
				}
			}
		}
		if remap[i] < 0 {
			remap[i] = len(out.verts)
			grid[c] = append(grid[c], remap[i])
			out.verts = append(out.verts, v)
		}
	}

	out.faces = make([][3]int, 0, len(s.faces))
	for _, f := range s.faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a == b || b == c || a == c {
			continue
		}
		out.faces = append(out.faces, [3]int{a, b, c})
	}
	return out
}
