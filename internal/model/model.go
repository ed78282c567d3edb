// Package model defines the planar shape model and the configuration
// surface shared by the tile placement engine and the composition pipeline.
package model

import (
	"math"

	"github.com/google/uuid"
)

// DistinctEpsilon is the tolerance used when de-duplicating shape points.
// Shapes with fewer than 3 distinct points at this tolerance are degenerate
// and must be skipped before extrusion.
const DistinctEpsilon = 1e-4

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromCorners builds a Rect from min/max corners.
func RectFromCorners(min, max Point2D) Rect {
	return Rect{X: min.X, Y: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

// Center returns the rect's center point.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point lies inside or on the rect.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Inset shrinks the rect by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.Width, o.X+o.Width)
	maxY := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MirrorAxis selects the axis a shape is mirrored across.
type MirrorAxis int

const (
	MirrorNone MirrorAxis = iota
	MirrorX               // Flip left/right (across the vertical center line)
	MirrorY               // Flip top/bottom (across the horizontal center line)
)

func (m MirrorAxis) String() string {
	switch m {
	case MirrorX:
		return "X"
	case MirrorY:
		return "Y"
	default:
		return "None"
	}
}

// Shape is a closed polygon boundary with optional hole paths.
// The boundary is implicitly closed: the last point connects back to the
// first. Invariant after EnforceWinding: the outer boundary is
// counter-clockwise and every hole is clockwise. Shapes are immutable;
// all transforms return a new Shape.
type Shape struct {
	Points []Point2D   `json:"points"`
	Holes  [][]Point2D `json:"holes,omitempty"`
}

// NewSquare returns a size x size square centered on the origin, wound
// counter-clockwise. Used as the default boundary when no outline is loaded.
func NewSquare(size float64) Shape {
	h := size / 2
	return Shape{Points: []Point2D{
		{X: -h, Y: -h},
		{X: h, Y: -h},
		{X: h, Y: h},
		{X: -h, Y: h},
	}}
}

// BoundingBox returns the min and max corners of the outer boundary.
func (s Shape) BoundingBox() (min, max Point2D) {
	if len(s.Points) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Bounds returns the outer boundary's bounding box as a Rect.
func (s Shape) Bounds() Rect {
	min, max := s.BoundingBox()
	return RectFromCorners(min, max)
}

// signedArea computes the signed shoelace area of a path.
// Positive means counter-clockwise.
func signedArea(pts []Point2D) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Y
		area -= pts[j].X * pts[i].Y
	}
	return area / 2
}

// SignedArea returns the signed area of the outer boundary.
func (s Shape) SignedArea() float64 {
	return signedArea(s.Points)
}

// Area returns the absolute area of the outer boundary minus its holes.
func (s Shape) Area() float64 {
	area := math.Abs(signedArea(s.Points))
	for _, h := range s.Holes {
		area -= math.Abs(signedArea(h))
	}
	if area < 0 {
		return 0
	}
	return area
}

func mapPoints(pts []Point2D, f func(Point2D) Point2D) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}

func (s Shape) transform(f func(Point2D) Point2D) Shape {
	out := Shape{Points: mapPoints(s.Points, f)}
	if len(s.Holes) > 0 {
		out.Holes = make([][]Point2D, len(s.Holes))
		for i, h := range s.Holes {
			out.Holes[i] = mapPoints(h, f)
		}
	}
	return out
}

// Translate shifts the shape and its holes by dx, dy.
func (s Shape) Translate(dx, dy float64) Shape {
	return s.transform(func(p Point2D) Point2D {
		return Point2D{X: p.X + dx, Y: p.Y + dy}
	})
}

// Scale scales the shape about the origin.
func (s Shape) Scale(factor float64) Shape {
	return s.transform(func(p Point2D) Point2D {
		return Point2D{X: p.X * factor, Y: p.Y * factor}
	})
}

// RotateAround rotates the shape by angle radians around the given center.
func (s Shape) RotateAround(angle float64, center Point2D) Shape {
	sin, cos := math.Sincos(angle)
	return s.transform(func(p Point2D) Point2D {
		dx := p.X - center.X
		dy := p.Y - center.Y
		return Point2D{
			X: center.X + dx*cos - dy*sin,
			Y: center.Y + dx*sin + dy*cos,
		}
	})
}

// Rotate rotates the shape by angleDeg degrees around its bounding-box
// center, then re-establishes the winding invariant.
func (s Shape) Rotate(angleDeg float64) Shape {
	if angleDeg == 0 {
		return s
	}
	rotated := s.RotateAround(angleDeg*math.Pi/180, s.Bounds().Center())
	return rotated.EnforceWinding()
}

// Mirror flips the shape across the chosen axis of its bounding-box center.
// Mirroring negates the signed area, so the winding invariant is
// re-established before returning.
func (s Shape) Mirror(axis MirrorAxis) Shape {
	if axis == MirrorNone {
		return s
	}
	c := s.Bounds().Center()
	mirrored := s.transform(func(p Point2D) Point2D {
		switch axis {
		case MirrorX:
			return Point2D{X: 2*c.X - p.X, Y: p.Y}
		default:
			return Point2D{X: p.X, Y: 2*c.Y - p.Y}
		}
	})
	return mirrored.EnforceWinding()
}

func reversePath(pts []Point2D) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// EnforceWinding returns a shape whose outer boundary is counter-clockwise
// and whose holes are clockwise. Downstream extrusion treats polygon
// orientation as the source of inside/outside truth, so this must run after
// every mirror or rotate. Applying it twice is a no-op.
func (s Shape) EnforceWinding() Shape {
	out := Shape{Points: s.Points}
	if signedArea(s.Points) < 0 {
		out.Points = reversePath(s.Points)
	}
	if len(s.Holes) > 0 {
		out.Holes = make([][]Point2D, len(s.Holes))
		for i, h := range s.Holes {
			if signedArea(h) > 0 {
				out.Holes[i] = reversePath(h)
			} else {
				out.Holes[i] = h
			}
		}
	}
	return out
}

// ContainsPoint reports whether the point lies inside the outer boundary
// using even-odd ray casting. Holes are not considered.
func (s Shape) ContainsPoint(x, y float64) bool {
	n := len(s.Points)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := s.Points[i], s.Points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// DistanceToEdge returns the minimum distance from the point to the outer
// boundary edges. Holes are not considered.
func (s Shape) DistanceToEdge(x, y float64) float64 {
	n := len(s.Points)
	if n == 0 {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		d := pointSegmentDistance(x, y, s.Points[i], s.Points[j])
		if d < best {
			best = d
		}
	}
	return best
}

// pointSegmentDistance returns the distance from (x, y) to segment ab.
func pointSegmentDistance(x, y float64, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((x-a.X)*dx + (y-a.Y)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	px := a.X + t*dx
	py := a.Y + t*dy
	return math.Hypot(x-px, y-py)
}

// IsDegenerate reports whether the outer boundary has fewer than 3 distinct
// points after de-duplication at DistinctEpsilon. Degenerate shapes are
// skipped by callers with a warning; they never reach extrusion.
func (s Shape) IsDegenerate() bool {
	distinct := 0
	for i, p := range s.Points {
		dup := false
		for _, q := range s.Points[:i] {
			if math.Abs(p.X-q.X) < DistinctEpsilon && math.Abs(p.Y-q.Y) < DistinctEpsilon {
				dup = true
				break
			}
		}
		if !dup {
			distinct++
			if distinct >= 3 {
				return false
			}
		}
	}
	return true
}

// BoundsOf returns the bounding box covering all shapes. The second return
// is false when the slice is empty.
func BoundsOf(shapes []Shape) (Rect, bool) {
	if len(shapes) == 0 {
		return Rect{}, false
	}
	r := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		r = r.Union(s.Bounds())
	}
	return r, true
}

// TileInstance is one placed copy of the unit pattern. Rotation is in
// radians. Instances are ephemeral: they are recomputed whenever any
// placement-affecting parameter changes.
type TileInstance struct {
	Position Point2D `json:"position"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// Inlay is a named solid overlaid on (or recessed into) the base plate.
type Inlay struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Shapes   []Shape       `json:"shapes"`
	Settings InlaySettings `json:"settings"`
}

func NewInlay(name string, shapes []Shape) Inlay {
	return Inlay{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Shapes:   shapes,
		Settings: DefaultInlaySettings(),
	}
}

// Bounds returns the bounding box over the inlay's untransformed shapes.
func (in Inlay) Bounds() Rect {
	r, _ := BoundsOf(in.Shapes)
	return r
}
