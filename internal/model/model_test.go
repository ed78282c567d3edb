package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ccwSquare(size float64) Shape {
	return NewSquare(size)
}

func cwTriangle() []Point2D {
	// Wound clockwise on purpose
	return []Point2D{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 3, Y: 0}}
}

func TestEnforceWinding_FixesOuterAndHoles(t *testing.T) {
	s := Shape{
		Points: cwTriangle(),
		Holes: [][]Point2D{
			// CCW hole, should come back clockwise
			{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1, Y: 1.5}},
		},
	}

	fixed := s.EnforceWinding()
	assert.Greater(t, fixed.SignedArea(), 0.0, "outer boundary should be CCW")
	assert.Less(t, signedArea(fixed.Holes[0]), 0.0, "hole should be CW")
}

func TestEnforceWinding_Idempotent(t *testing.T) {
	s := Shape{
		Points: cwTriangle(),
		Holes: [][]Point2D{
			{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1, Y: 1.5}},
		},
	}

	once := s.EnforceWinding()
	twice := once.EnforceWinding()
	assert.Equal(t, once, twice, "second application should be a fixed point")
}

func TestMirror_FlipsSignedAreaBeforeRewinding(t *testing.T) {
	s := ccwSquare(10)
	// Mirror re-establishes the winding, so the public result stays CCW,
	// but the raw reflection must have negated the area.
	raw := s.transform(func(p Point2D) Point2D {
		return Point2D{X: -p.X, Y: p.Y}
	})
	assert.Less(t, raw.SignedArea(), 0.0)

	mirrored := s.Mirror(MirrorX)
	assert.Greater(t, mirrored.SignedArea(), 0.0, "Mirror must re-enforce CCW winding")
	assert.InDelta(t, s.Area(), mirrored.Area(), 1e-9)
}

func TestMirror_KeepsBoundingBox(t *testing.T) {
	s := Shape{Points: []Point2D{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 3}, {X: 1, Y: 3}}}
	for _, axis := range []MirrorAxis{MirrorX, MirrorY} {
		m := s.Mirror(axis)
		assert.Equal(t, s.Bounds(), m.Bounds(), "mirroring about the bbox center keeps the bbox (%v)", axis)
	}
}

func TestRotate_PreservesAreaAndWinding(t *testing.T) {
	s := ccwSquare(10)
	r := s.Rotate(45)
	assert.InDelta(t, 100.0, r.Area(), 1e-6)
	assert.Greater(t, r.SignedArea(), 0.0)

	// 45 degree square bbox grows to size*sqrt(2)
	b := r.Bounds()
	assert.InDelta(t, 10*math.Sqrt2, b.Width, 1e-6)
}

func TestContainsPoint(t *testing.T) {
	s := ccwSquare(100)
	assert.True(t, s.ContainsPoint(0, 0))
	assert.True(t, s.ContainsPoint(49, -49))
	assert.False(t, s.ContainsPoint(51, 0))
	assert.False(t, s.ContainsPoint(0, -51))
}

func TestContainsPoint_Concave(t *testing.T) {
	// L-shape: the notch at top-right is outside
	l := Shape{Points: []Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50},
		{X: 50, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 100},
	}}
	assert.True(t, l.ContainsPoint(25, 75))
	assert.True(t, l.ContainsPoint(75, 25))
	assert.False(t, l.ContainsPoint(75, 75), "notch should be outside")
}

func TestDistanceToEdge(t *testing.T) {
	s := ccwSquare(100)
	assert.InDelta(t, 50.0, s.DistanceToEdge(0, 0), 1e-9)
	assert.InDelta(t, 10.0, s.DistanceToEdge(40, 0), 1e-9)
	assert.InDelta(t, 0.0, s.DistanceToEdge(50, 0), 1e-9)
}

func TestIsDegenerate(t *testing.T) {
	assert.False(t, ccwSquare(10).IsDegenerate())

	line := Shape{Points: []Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	assert.True(t, line.IsDegenerate())

	// Three points but two coincide within epsilon
	dup := Shape{Points: []Point2D{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1 + DistinctEpsilon/2, Y: 0},
	}}
	assert.True(t, dup.IsDegenerate())
}

func TestShapeTransformsAreImmutable(t *testing.T) {
	s := ccwSquare(10)
	orig := make([]Point2D, len(s.Points))
	copy(orig, s.Points)

	_ = s.Translate(5, 5)
	_ = s.Rotate(30)
	_ = s.Mirror(MirrorY)
	_ = s.Scale(2)

	assert.Equal(t, orig, s.Points, "transforms must not mutate the source shape")
}

func TestRect_Helpers(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	assert.Equal(t, Point2D{X: 50, Y: 25}, r.Center())
	assert.True(t, r.Contains(Point2D{X: 50, Y: 25}))
	assert.False(t, r.Contains(Point2D{X: 101, Y: 25}))

	in := r.Inset(10)
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 80, Height: 30}, in)

	u := r.Union(Rect{X: -10, Y: 40, Width: 20, Height: 20})
	assert.Equal(t, Rect{X: -10, Y: 0, Width: 110, Height: 60}, u)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	r, ok := BoundsOf([]Shape{ccwSquare(10), ccwSquare(20).Translate(100, 0)})
	require.True(t, ok)
	assert.InDelta(t, -5.0, r.X, 1e-9)
	assert.InDelta(t, 110.0, r.X+r.Width, 1e-9)
}

func TestSnapRotation(t *testing.T) {
	p := PatternSettings{RotationClamp: 45}
	assert.InDelta(t, math.Pi/4, p.SnapRotation(40*math.Pi/180), 1e-9)
	assert.InDelta(t, 0.0, p.SnapRotation(10*math.Pi/180), 1e-9)

	free := PatternSettings{RotationClamp: 0}
	assert.Equal(t, 0.3, free.SnapRotation(0.3), "zero clamp leaves angles untouched")
}

func TestPatternSource_Tagging(t *testing.T) {
	poly := PolygonalSource(ccwSquare(20))
	assert.Equal(t, PatternPolygonal, poly.Kind)
	assert.InDelta(t, 20.0, poly.Bounds().Width, 1e-9)
	assert.Equal(t, 0.0, poly.Height())

	mesh := MeshSource(MeshBuffers{
		Positions: []float64{0, 0, 0, 10, 0, 0, 0, 5, 3},
		Indices:   []int{0, 1, 2},
		Min:       [3]float64{0, 0, 0},
		Max:       [3]float64{10, 5, 3},
	})
	assert.Equal(t, PatternMesh, mesh.Kind)
	assert.InDelta(t, 10.0, mesh.Bounds().Width, 1e-9)
	assert.InDelta(t, 3.0, mesh.Height(), 1e-9)

	assert.True(t, PatternSource{}.IsZero())
	assert.False(t, poly.IsZero())
}

func TestNewInlay(t *testing.T) {
	in := NewInlay("Logo", []Shape{ccwSquare(30)})
	assert.Len(t, in.ID, 8)
	assert.Equal(t, "Logo", in.Name)
	assert.Equal(t, AnchorCenter, in.Settings.Anchor)
	assert.Equal(t, GripNone, in.Settings.GripMode)
	assert.InDelta(t, 30.0, in.Bounds().Width, 1e-9)
}

func TestDefaultAppConfig_RoundTrip(t *testing.T) {
	cfg := DefaultAppConfig()
	s := DefaultSettings()
	s.Outline.Thickness = 99
	cfg.ApplyToSettings(&s)
	assert.Equal(t, DefaultSettings().Outline.Thickness, s.Outline.Thickness)
	assert.Equal(t, DefaultSettings().Pattern.Distribution, s.Pattern.Distribution)
}
