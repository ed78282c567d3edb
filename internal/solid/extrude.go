package solid

import (
	libtess2 "github.com/hajimehoshi/go-libtess2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gripforge/gripforge/internal/model"
)

// capTriangle is one triangulated footprint face in the XY plane.
type capTriangle [3]model.Point2D

func (t capTriangle) signedArea() float64 {
	return 0.5 * ((t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y))
}

// triangulate breaks the shape's footprint (outer boundary minus holes)
// into triangles. The even-odd winding rule makes the result independent
// of contour orientation, so holes need no special casing.
func triangulate(s model.Shape) []capTriangle {
	if len(s.Points) < 3 {
		return nil
	}
	contours := make([]libtess2.Contour, 0, 1+len(s.Holes))
	contours = append(contours, contour(s.Points))
	for _, h := range s.Holes {
		contours = append(contours, contour(h))
	}

	elements, verts, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil
	}

	tris := make([]capTriangle, 0, len(elements)/3)
	for i := 0; i+2 < len(elements); i += 3 {
		t := capTriangle{
			point(verts[elements[i]]),
			point(verts[elements[i+1]]),
			point(verts[elements[i+2]]),
		}
		if t.signedArea() == 0 {
			continue
		}
		// Normalize to counter-clockwise; cap emission picks the final
		// orientation per face.
		if t.signedArea() < 0 {
			t[1], t[2] = t[2], t[1]
		}
		tris = append(tris, t)
	}
	return tris
}

func contour(pts []model.Point2D) libtess2.Contour {
	c := make(libtess2.Contour, len(pts))
	for i, p := range pts {
		c[i] = libtess2.Vertex{X: float32(p.X), Y: float32(p.Y)}
	}
	return c
}

func point(v libtess2.Vertex) model.Point2D {
	return model.Point2D{X: float64(v.X), Y: float64(v.Y)}
}

// Extrude sweeps the shape from z0 to z1 into a closed mesh: a downward
// bottom cap, an upward top cap, and side walls along the outer boundary
// and every hole. A degenerate shape or an empty z interval yields an
// empty mesh.
func Extrude(s model.Shape, z0, z1 float64) Mesh {
	var m Mesh
	if z1 <= z0 || s.IsDegenerate() {
		return m
	}
	s = s.EnforceWinding()

	for _, t := range triangulate(s) {
		// Bottom cap faces down: clockwise seen from above.
		m.add(at(t[0], z0), at(t[2], z0), at(t[1], z0))
		// Top cap faces up.
		m.add(at(t[0], z1), at(t[1], z1), at(t[2], z1))
	}

	// With the outer boundary CCW and holes CW, the same edge sweep
	// produces outward-facing walls for both.
	walls(&m, s.Points, z0, z1)
	for _, h := range s.Holes {
		walls(&m, h, z0, z1)
	}
	return m
}

// ExtrudeAll extrudes every shape over the same z interval into one mesh.
func ExtrudeAll(shapes []model.Shape, z0, z1 float64) Mesh {
	var m Mesh
	for _, s := range shapes {
		m.Merge(Extrude(s, z0, z1))
	}
	return m
}

func walls(m *Mesh, pts []model.Point2D, z0, z1 float64) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		a0, b0 := at(a, z0), at(b, z0)
		a1, b1 := at(a, z1), at(b, z1)
		m.add(a0, b0, b1)
		m.add(a0, b1, a1)
	}
}

func at(p model.Point2D, z float64) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: z}
}
