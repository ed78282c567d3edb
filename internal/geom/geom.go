// Package geom provides polygon offsetting and boolean operations on
// shapes, backed by the Clipper polygon engine. Offsetting resolves the
// self-intersections an erode/dilate can produce into disjoint output
// shapes, and Union merges overlapping cutters so boolean subtraction
// never sees self-overlapping input.
package geom

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/gripforge/gripforge/internal/model"
)

// Clipper works on integer coordinates. One mm maps to 1e4 units, i.e.
// 0.1 micron resolution, well below any tolerance in the pipeline.
const scale = 1e4

func toPath(pts []model.Point2D) clipper.Path {
	path := make(clipper.Path, 0, len(pts))
	for _, p := range pts {
		path = append(path, clipper.NewIntPoint(
			clipper.CInt(p.X*scale+0.5*sign(p.X)),
			clipper.CInt(p.Y*scale+0.5*sign(p.Y)),
		))
	}
	return path
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func fromPath(path clipper.Path) []model.Point2D {
	pts := make([]model.Point2D, 0, len(path))
	for _, ip := range path {
		pts = append(pts, model.Point2D{
			X: float64(ip.X) / scale,
			Y: float64(ip.Y) / scale,
		})
	}
	return pts
}

// shapePaths converts a shape to clipper paths: the outer boundary plus
// hole paths. Winding is enforced first so the non-zero fill rule sees
// outers CCW and holes CW.
func shapePaths(s model.Shape) clipper.Paths {
	s = s.EnforceWinding()
	paths := clipper.Paths{toPath(s.Points)}
	for _, h := range s.Holes {
		paths = append(paths, toPath(h))
	}
	return paths
}

// shapesFromTree rebuilds shapes-with-holes from a clipper PolyTree.
// Top-level nodes are outer boundaries; their children are holes; a hole's
// children are islands, which become separate shapes again.
func shapesFromTree(tree *clipper.PolyTree) []model.Shape {
	var out []model.Shape
	var walk func(nodes []*clipper.PolyNode)
	walk = func(nodes []*clipper.PolyNode) {
		for _, node := range nodes {
			if node.IsHole() {
				// Reached only for malformed trees; descend to stay safe.
				walk(node.Childs())
				continue
			}
			shape := model.Shape{Points: fromPath(node.Contour())}
			for _, hole := range node.Childs() {
				shape.Holes = append(shape.Holes, fromPath(hole.Contour()))
				// Islands inside the hole start new shapes.
				walk(hole.Childs())
			}
			if len(shape.Points) >= 3 {
				out = append(out, shape.EnforceWinding())
			}
		}
	}
	walk(tree.Childs())
	return out
}

// Offset erodes (delta < 0) or dilates (delta > 0) the shape boundary by
// |delta| mm. Eroding a concave shape until lobes collide yields multiple
// disjoint shapes; an erosion past the shape's width yields none.
func Offset(s model.Shape, delta float64) []model.Shape {
	if len(s.Points) < 3 {
		return nil
	}
	if delta == 0 {
		return []model.Shape{s.EnforceWinding()}
	}
	co := clipper.NewClipperOffset()
	co.AddPaths(shapePaths(s), clipper.JtMiter, clipper.EtClosedPolygon)
	tree := co.Execute2(delta * scale)
	return shapesFromTree(tree)
}

// OffsetAll offsets every shape and concatenates the results.
func OffsetAll(shapes []model.Shape, delta float64) []model.Shape {
	var out []model.Shape
	for _, s := range shapes {
		out = append(out, Offset(s, delta)...)
	}
	return out
}

// Union merges overlapping shapes into non-overlapping ones. Cutters must
// pass through here before boolean subtraction: subtracting self-overlapping
// cutters produces non-manifold artifacts.
func Union(shapes []model.Shape) []model.Shape {
	if len(shapes) == 0 {
		return nil
	}
	c := clipper.NewClipper(clipper.IoNone)
	for _, s := range shapes {
		if len(s.Points) < 3 {
			continue
		}
		c.AddPaths(shapePaths(s), clipper.PtSubject, true)
	}
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return shapes
	}
	return shapesFromTree(tree)
}

func boolean(op clipper.ClipType, subject, clip []model.Shape) []model.Shape {
	c := clipper.NewClipper(clipper.IoNone)
	added := false
	for _, s := range subject {
		if len(s.Points) < 3 {
			continue
		}
		c.AddPaths(shapePaths(s), clipper.PtSubject, true)
		added = true
	}
	if !added {
		return nil
	}
	for _, s := range clip {
		if len(s.Points) < 3 {
			continue
		}
		c.AddPaths(shapePaths(s), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return subject
	}
	return shapesFromTree(tree)
}

// Intersect returns the region covered by both subject and clip.
func Intersect(subject, clip []model.Shape) []model.Shape {
	return boolean(clipper.CtIntersection, subject, clip)
}

// Subtract returns the subject region not covered by clip.
func Subtract(subject, clip []model.Shape) []model.Shape {
	return boolean(clipper.CtDifference, subject, clip)
}

// AreaOf sums the hole-adjusted areas of all shapes.
func AreaOf(shapes []model.Shape) float64 {
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	return total
}
