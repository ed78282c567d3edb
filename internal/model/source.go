package model

// PatternSourceKind discriminates what kind of unit geometry a pattern
// source carries. The tag is checked once at ingestion; extrusion and
// bounds logic branch on it there, not at every consumption site.
type PatternSourceKind int

const (
	PatternPolygonal PatternSourceKind = iota // Point-set shapes, extruded by the pipeline
	PatternMesh                               // Pre-triangulated mesh buffers (e.g. from STL)
)

func (k PatternSourceKind) String() string {
	if k == PatternMesh {
		return "mesh"
	}
	return "polygonal"
}

// MeshBuffers holds raw triangle geometry supplied by a mesh importer:
// flat xyz position and normal triplets, triangle indices, and the
// precomputed bounding box the importer contract requires.
type MeshBuffers struct {
	Positions []float64 `json:"positions"`
	Normals   []float64 `json:"normals,omitempty"`
	Indices   []int     `json:"indices"`
	Min       [3]float64
	Max       [3]float64
}

// PatternSource is the tagged variant of a unit pattern's geometry:
// either polygonal shapes or raw mesh buffers.
type PatternSource struct {
	Kind   PatternSourceKind
	Shapes []Shape
	Mesh   MeshBuffers
}

// PolygonalSource wraps shapes as a pattern source.
func PolygonalSource(shapes ...Shape) PatternSource {
	return PatternSource{Kind: PatternPolygonal, Shapes: shapes}
}

// MeshSource wraps mesh buffers as a pattern source.
func MeshSource(m MeshBuffers) PatternSource {
	return PatternSource{Kind: PatternMesh, Mesh: m}
}

// IsZero reports whether the source carries no geometry at all.
func (ps PatternSource) IsZero() bool {
	return len(ps.Shapes) == 0 && len(ps.Mesh.Positions) == 0
}

// Bounds returns the XY footprint bounding box of the unit geometry.
func (ps PatternSource) Bounds() Rect {
	if ps.Kind == PatternMesh {
		return RectFromCorners(
			Point2D{X: ps.Mesh.Min[0], Y: ps.Mesh.Min[1]},
			Point2D{X: ps.Mesh.Max[0], Y: ps.Mesh.Max[1]},
		)
	}
	r, _ := BoundsOf(ps.Shapes)
	return r
}

// Height returns the native z-extent of a mesh source, or 0 for polygonal
// sources (their extrusion height comes from PatternSettings.ScaleZ).
func (ps PatternSource) Height() float64 {
	if ps.Kind == PatternMesh {
		return ps.Mesh.Max[2] - ps.Mesh.Min[2]
	}
	return 0
}
