package solid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gripforge/gripforge/internal/model"
)

// signedVolume computes the enclosed volume via the divergence theorem.
// It is positive only when every face is wound outward, so it doubles as
// an orientation check.
func signedVolume(m Mesh) float64 {
	var v float64
	for _, t := range m.Triangles {
		v += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return v / 6
}

func TestExtrude_SquareIsClosedAndOutward(t *testing.T) {
	m := Extrude(model.NewSquare(10), 0, 4)

	// 2 cap triangles per face plus 2 per wall edge.
	assert.Len(t, m.Triangles, 2+2+4*2)
	assert.InDelta(t, 10*10*4, signedVolume(m), 1e-6)

	min, max, ok := m.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, r3.Vec{X: -5, Y: -5, Z: 0}, min)
	assert.Equal(t, r3.Vec{X: 5, Y: 5, Z: 4}, max)
}

func TestExtrude_HoleVolumeSubtracts(t *testing.T) {
	s := model.NewSquare(20)
	s.Holes = [][]model.Point2D{model.NewSquare(6).Points}
	m := Extrude(s.EnforceWinding(), 0, 5)

	assert.InDelta(t, (20*20-6*6)*5, signedVolume(m), 1e-3)
}

func TestExtrude_DegenerateInput(t *testing.T) {
	line := model.Shape{Points: []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	assert.True(t, Extrude(line, 0, 4).IsEmpty())
	assert.True(t, Extrude(model.NewSquare(10), 4, 4).IsEmpty())
	assert.True(t, Extrude(model.NewSquare(10), 4, 2).IsEmpty())
}

func TestTriangle_Normal(t *testing.T) {
	up := Triangle{
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	assert.Equal(t, r3.Vec{Z: 1}, up.Normal())

	degenerate := Triangle{{}, {}, {}}
	assert.Equal(t, r3.Vec{}, degenerate.Normal())
}

func TestPrism_EmptyInputs(t *testing.T) {
	assert.True(t, Prism(nil, 0, 4).IsEmpty())
	assert.True(t, Prism([]model.Shape{model.NewSquare(10)}, 4, 4).IsEmpty())
	assert.False(t, Prism([]model.Shape{model.NewSquare(10)}, 0, 4).IsEmpty())
}

func TestIntersectFootprint_SplitsKeptAndWaste(t *testing.T) {
	op := Prism([]model.Shape{model.NewSquare(100)}, 0, 4)
	clip := []model.Shape{model.NewSquare(100).Translate(50, 0)}

	kept, waste := IntersectFootprint(op, clip)
	assert.InDelta(t, 50*100*4, kept.Volume(), 1.0)
	assert.InDelta(t, 50*100*4, waste.Volume(), 1.0)
	assert.InDelta(t, op.Volume(), kept.Volume()+waste.Volume(), 1.0)
}

func TestIntersectFootprint_Disjoint(t *testing.T) {
	op := Prism([]model.Shape{model.NewSquare(10)}, 0, 4)
	kept, waste := IntersectFootprint(op, []model.Shape{model.NewSquare(10).Translate(100, 0)})
	assert.True(t, kept.IsEmpty())
	assert.InDelta(t, op.Volume(), waste.Volume(), 1e-3)
}

func TestSubtractFootprint(t *testing.T) {
	op := Prism([]model.Shape{model.NewSquare(100)}, 0, 4)
	kept, waste := SubtractFootprint(op, []model.Shape{model.NewSquare(20)})

	assert.InDelta(t, (100*100-20*20)*4, kept.Volume(), 1.0)
	assert.InDelta(t, 20*20*4, waste.Volume(), 1.0)

	// The cut is interior, so the kept footprint carries it as a hole.
	fp := kept.Footprint()
	require.Len(t, fp, 1)
	require.Len(t, fp[0].Holes, 1)
}

func TestClampTop(t *testing.T) {
	op := Prism([]model.Shape{model.NewSquare(10)}, 0, 10)

	kept, waste := ClampTop(op, 6)
	require.Len(t, kept.Regions, 1)
	require.Len(t, waste.Regions, 1)
	assert.Equal(t, 6.0, kept.Regions[0].Z1)
	assert.Equal(t, 6.0, waste.Regions[0].Z0)
	assert.InDelta(t, op.Volume(), kept.Volume()+waste.Volume(), 1e-9)

	kept, waste = ClampTop(op, 20)
	assert.False(t, kept.IsEmpty())
	assert.True(t, waste.IsEmpty())

	kept, waste = ClampTop(op, 0)
	assert.True(t, kept.IsEmpty())
	assert.False(t, waste.IsEmpty())
}

func TestOperand_MeshSpansAllRegions(t *testing.T) {
	op := Operand{Regions: []Region{
		{Footprint: []model.Shape{model.NewSquare(10)}, Z0: 0, Z1: 4},
		{Footprint: []model.Shape{model.NewSquare(10).Translate(30, 0)}, Z0: 4, Z1: 8},
	}}
	m := op.Mesh()
	require.False(t, m.IsEmpty())

	min, max, ok := m.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, 0.0, min.Z)
	assert.Equal(t, 8.0, max.Z)
	assert.InDelta(t, 35.0, max.X, 1e-9)
}

func TestPlaceShape(t *testing.T) {
	unit := model.NewSquare(10)
	placed := PlaceShape(unit, model.TileInstance{
		Position: model.Point2D{X: 100, Y: 50},
		Rotation: math.Pi / 4,
		Scale:    2,
	})

	b := placed.Bounds()
	assert.InDelta(t, 100.0, b.Center().X, 1e-9)
	assert.InDelta(t, 50.0, b.Center().Y, 1e-9)
	// Scaled to 20, rotated 45 degrees: bbox side 20*sqrt(2).
	assert.InDelta(t, 20*math.Sqrt2, b.Width, 1e-9)
	assert.InDelta(t, 400.0, placed.Area(), 1e-6)
}

func TestPlaceShape_ZeroScaleDefaultsToOne(t *testing.T) {
	placed := PlaceShape(model.NewSquare(10), model.TileInstance{})
	assert.InDelta(t, 100.0, placed.Area(), 1e-9)
}

func TestPlaceMesh(t *testing.T) {
	buf := model.MeshBuffers{
		Positions: []float64{
			0, 0, 0,
			10, 0, 0,
			10, 6, 0,
			0, 0, 2,
		},
		Indices: []int{0, 1, 2, 0, 2, 3},
		Min:     [3]float64{0, 0, 0},
		Max:     [3]float64{10, 6, 2},
	}
	m := PlaceMesh(buf, model.TileInstance{
		Position: model.Point2D{X: 50, Y: 50},
		Scale:    1,
	}, 4, 2)
	require.Len(t, m.Triangles, 2)

	min, max, ok := m.BoundingBox()
	require.True(t, ok)
	// Recentered on the XY bbox center, lifted onto the base top, z
	// scaled by 2.
	assert.InDelta(t, 45.0, min.X, 1e-9)
	assert.InDelta(t, 55.0, max.X, 1e-9)
	assert.InDelta(t, 4.0, min.Z, 1e-9)
	assert.InDelta(t, 8.0, max.Z, 1e-9)
}

func TestMeshFootprint(t *testing.T) {
	buf := model.MeshBuffers{
		Min: [3]float64{0, 0, 0},
		Max: [3]float64{10, 6, 2},
	}
	fp := MeshFootprint(buf, model.TileInstance{
		Position: model.Point2D{X: 20, Y: 0},
		Scale:    2,
	})
	assert.InDelta(t, 10*6*4, fp.Area(), 1e-9)
	assert.InDelta(t, 20.0, fp.Bounds().Center().X, 1e-9)
}
