// Package compose runs the solid composition pipeline: it resolves the
// active boundary, places pattern tiles, builds the base, pattern, and
// inlay solids with boolean trimming, and offloads the whole pass to a
// worker with staleness filtering.
package compose

import (
	"sort"

	"github.com/gripforge/gripforge/internal/geom"
	"github.com/gripforge/gripforge/internal/model"
)

// BoundaryContext is the resolved outline for one composition cycle:
// filled shapes with their derived holes attached, the standalone hole
// shapes for use as cutters, and the overall bounding box. It is computed
// once per outline-affecting change and read-only afterwards.
type BoundaryContext struct {
	Filled []model.Shape
	Holes  []model.Shape
	Bounds model.Rect
}

// NewBoundaryContext derives the active boundary from raw outline shapes
// and the outline settings. When no usable shapes are supplied, a default
// square of the configured size is substituted so pattern and inlay
// clipping always have a boundary. A shape fully contained inside a
// larger one is reclassified as a hole of that shape.
func NewBoundaryContext(outline []model.Shape, s model.OutlineSettings) BoundaryContext {
	var shapes []model.Shape
	for _, raw := range outline {
		if raw.IsDegenerate() {
			continue
		}
		t := raw
		if s.Mirror != model.MirrorNone {
			t = t.Mirror(s.Mirror)
		}
		if s.Rotation != 0 {
			t = t.Rotate(s.Rotation)
		}
		shapes = append(shapes, t.EnforceWinding())
	}
	if len(shapes) == 0 {
		size := s.Size
		if size <= 0 {
			size = 1
		}
		shapes = []model.Shape{model.NewSquare(size)}
	}

	// Largest first, so containers are seen before their holes.
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].Area() > shapes[j].Area()
	})

	ctx := BoundaryContext{}
	var filled []model.Shape
	var holesByParent [][]model.Shape
	for _, sh := range shapes {
		parent := containerOf(filled, sh)
		if parent < 0 {
			filled = append(filled, sh)
			holesByParent = append(holesByParent, nil)
			continue
		}
		holesByParent[parent] = append(holesByParent[parent], sh)
	}
	// Overlapping contained shapes must merge into one hole each, or the
	// even-odd cap triangulation re-fills their overlap.
	for parent, hs := range holesByParent {
		if len(hs) == 0 {
			continue
		}
		for _, h := range geom.Union(hs) {
			filled[parent].Holes = append(filled[parent].Holes, h.Points)
			ctx.Holes = append(ctx.Holes, h)
		}
		filled[parent] = filled[parent].EnforceWinding()
	}
	ctx.Filled = filled

	if b, ok := model.BoundsOf(ctx.Filled); ok {
		ctx.Bounds = b
	}
	return ctx
}

// containerOf returns the index of the filled shape that fully contains
// the candidate's outer boundary, or -1.
func containerOf(filled []model.Shape, sh model.Shape) int {
	for i, f := range filled {
		inside := true
		for _, p := range sh.Points {
			if !f.ContainsPoint(p.X, p.Y) {
				inside = false
				break
			}
		}
		if inside {
			return i
		}
	}
	return -1
}
