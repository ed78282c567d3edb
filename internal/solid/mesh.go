// Package solid builds printable triangle meshes from 2D shapes. Solids
// in the pipeline are prisms: a planar footprint swept along the z axis.
// That makes every boolean exact in 2D, with the z splits handled as
// interval arithmetic, instead of approximate mesh/mesh intersection.
package solid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is one face, vertices in counter-clockwise order as seen from
// the outside of the solid.
type Triangle [3]r3.Vec

// Normal returns the unit face normal, or the zero vector for a
// degenerate triangle.
func (t Triangle) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Mesh is an indexless triangle soup.
type Mesh struct {
	Triangles []Triangle
}

func (m *Mesh) add(a, b, c r3.Vec) {
	m.Triangles = append(m.Triangles, Triangle{a, b, c})
}

// Merge appends the other mesh's triangles.
func (m *Mesh) Merge(other Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// IsEmpty reports whether the mesh has no faces.
func (m Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// BoundingBox returns the axis-aligned extent of the mesh. ok is false
// for an empty mesh.
func (m Mesh) BoundingBox() (min, max r3.Vec, ok bool) {
	if len(m.Triangles) == 0 {
		return r3.Vec{}, r3.Vec{}, false
	}
	min = m.Triangles[0][0]
	max = min
	for _, t := range m.Triangles {
		for _, v := range t {
			min.X = math.Min(min.X, v.X)
			min.Y = math.Min(min.Y, v.Y)
			min.Z = math.Min(min.Z, v.Z)
			max.X = math.Max(max.X, v.X)
			max.Y = math.Max(max.Y, v.Y)
			max.Z = math.Max(max.Z, v.Z)
		}
	}
	return min, max, true
}
