package tiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gripforge/gripforge/internal/model"
)

func baseRequest() Request {
	return Request{
		Bounds:       model.Rect{X: -150, Y: -150, Width: 300, Height: 300},
		TileWidth:    20,
		TileHeight:   20,
		Spacing:      5,
		AllowPartial: true,
		Distribution: model.DistributionGrid,
		Direction:    model.DirectionHorizontal,
		Orientation:  model.OrientationNone,
		Seed:         1,
	}
}

func TestGenerate_GridScenario(t *testing.T) {
	// 300x300 bounds, 20x20 tile, spacing 5: step is 25, so the lattice
	// should land on floor(300/25)+1 = 13 tiles per axis (within one for
	// centering rounding).
	tiles := Generate(baseRequest())

	perAxis := int(math.Round(math.Sqrt(float64(len(tiles)))))
	assert.InDelta(t, 13, perAxis, 1)
	assert.Len(t, tiles, perAxis*perAxis)

	for _, tile := range tiles {
		assert.Equal(t, 0.0, tile.Rotation)
		assert.Equal(t, 1.0, tile.Scale)
	}
}

func TestGenerate_GridCenteredOnBounds(t *testing.T) {
	tiles := Generate(baseRequest())
	require.NotEmpty(t, tiles)

	// The lattice is centered on the centroid, so tile positions must be
	// symmetric about it.
	var sumX, sumY float64
	for _, tile := range tiles {
		sumX += tile.Position.X
		sumY += tile.Position.Y
	}
	n := float64(len(tiles))
	assert.InDelta(t, 0.0, sumX/n, 1e-6)
	assert.InDelta(t, 0.0, sumY/n, 1e-6)
}

func TestGenerate_ZeroTileSize(t *testing.T) {
	req := baseRequest()
	req.TileWidth = 0
	assert.Nil(t, Generate(req))
}

func TestGenerate_StrictBoundsRejectEdgeTiles(t *testing.T) {
	strict := baseRequest()
	strict.AllowPartial = false
	partial := baseRequest()

	assert.Less(t, len(Generate(strict)), len(Generate(partial)),
		"strict mode must drop tiles whose corners cross the bounds")
}

func TestGenerate_MarginShrinksField(t *testing.T) {
	req := baseRequest()
	req.AllowPartial = false
	without := len(Generate(req))
	req.Margin = 30
	with := len(Generate(req))
	assert.Less(t, with, without)
}

func TestGenerate_BoundaryShapeAndMargin(t *testing.T) {
	req := baseRequest()
	req.AllowPartial = false
	req.Boundary = []model.Shape{model.NewSquare(300)}
	req.Margin = 20

	tiles := Generate(req)
	require.NotEmpty(t, tiles)
	for _, tile := range tiles {
		d := req.Boundary[0].DistanceToEdge(tile.Position.X, tile.Position.Y)
		assert.GreaterOrEqual(t, d, req.Margin,
			"tile center at (%.1f, %.1f) violates the margin", tile.Position.X, tile.Position.Y)
	}
}

func TestGenerate_ExclusionRejectsFullyCoveredTiles(t *testing.T) {
	req := baseRequest()
	// Exclusion covering the middle of the field. Tiles fully inside it
	// must vanish; tiles straddling its edge stay for the boolean stage.
	req.Exclusions = []model.Shape{model.NewSquare(100)}

	tiles := Generate(req)
	require.NotEmpty(t, tiles)
	for _, tile := range tiles {
		fully := true
		for _, p := range footprintSamples(tile.Position, req.TileWidth, req.TileHeight) {
			if !req.Exclusions[0].ContainsPoint(p.X, p.Y) {
				fully = false
				break
			}
		}
		assert.False(t, fully, "no surviving tile may sit fully inside the exclusion")
	}

	assert.Less(t, len(tiles), len(Generate(baseRequest())))
}

func TestGenerate_InclusionRescuesExcludedTiles(t *testing.T) {
	excluded := baseRequest()
	excluded.Exclusions = []model.Shape{model.NewSquare(100)}

	rescued := excluded
	rescued.Inclusions = []model.Shape{model.NewSquare(100)}

	// The inclusion covers the whole exclusion, so every tile comes back.
	assert.Greater(t, len(Generate(rescued)), len(Generate(excluded)))
	assert.Len(t, Generate(rescued), len(Generate(baseRequest())))
}

func TestGenerate_OffsetShiftsAlternateRows(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionOffset
	tiles := Generate(req)
	require.NotEmpty(t, tiles)

	// Collect distinct X positions per row; brick rows are shifted by half
	// a step, so the overall distinct X count must exceed the grid's.
	xs := map[float64]bool{}
	for _, tile := range tiles {
		xs[math.Round(tile.Position.X*100)/100] = true
	}
	gridXs := map[float64]bool{}
	for _, tile := range Generate(baseRequest()) {
		gridXs[math.Round(tile.Position.X*100)/100] = true
	}
	assert.Greater(t, len(xs), len(gridXs))
}

func TestGenerate_HexClustersOfSix(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionHex
	req.AllowPartial = true

	tiles := Generate(req)
	require.NotEmpty(t, tiles)

	// Ring radius per spec: max(tileW, tileH) + spacing.
	assert.Greater(t, len(tiles), 6)
}

func TestGenerate_RadialPlacesCenterTile(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionRadial

	tiles := Generate(req)
	require.NotEmpty(t, tiles)
	assert.InDelta(t, 0.0, tiles[0].Position.X, 1e-9)
	assert.InDelta(t, 0.0, tiles[0].Position.Y, 1e-9)
}

func TestGenerate_RandomRespectsMinimumDistance(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionRandom

	tiles := Generate(req)
	require.NotEmpty(t, tiles)

	minDist := (req.TileWidth+req.TileHeight)/2 + 0.8*req.Spacing
	for i, a := range tiles {
		for _, b := range tiles[i+1:] {
			d := math.Hypot(a.Position.X-b.Position.X, a.Position.Y-b.Position.Y)
			assert.Greater(t, d, minDist)
		}
	}
}

func TestGenerate_RandomIsDeterministicPerSeed(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionRandom

	assert.Equal(t, Generate(req), Generate(req))

	other := req
	other.Seed = 42
	assert.NotEqual(t, Generate(req), Generate(other))
}

func TestGenerate_RandomExhaustedBudgetReturnsPlaced(t *testing.T) {
	// A boundary far outside the sampling bounds makes every candidate
	// invalid: the budget must run out and return empty, not hang.
	req := baseRequest()
	req.Distribution = model.DistributionRandom
	req.Boundary = []model.Shape{model.NewSquare(10).Translate(10000, 10000)}

	assert.Empty(t, Generate(req))
}

func TestGenerate_AlternateOrientation(t *testing.T) {
	req := baseRequest()
	req.Orientation = model.OrientationAlternate
	tiles := Generate(req)
	require.GreaterOrEqual(t, len(tiles), 2)
	assert.Equal(t, 0.0, tiles[0].Rotation)
	assert.InDelta(t, math.Pi/2, tiles[1].Rotation, 1e-9)
}

func TestGenerate_AlignedOrientation(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionRadial
	req.Orientation = model.OrientationAligned

	tiles := Generate(req)
	require.NotEmpty(t, tiles)
	for _, tile := range tiles[1:] {
		want := math.Atan2(tile.Position.Y, tile.Position.X) + math.Pi/2
		assert.InDelta(t, want, tile.Rotation, 1e-9)
	}
}

func TestGenerate_WaveDisplacesRows(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionWave

	wave := Generate(req)
	grid := Generate(baseRequest())
	require.NotEmpty(t, wave)

	displaced := false
	for i := range wave {
		if i < len(grid) && math.Abs(wave[i].Position.Y-grid[i].Position.Y) > 1e-9 {
			displaced = true
			break
		}
	}
	assert.True(t, displaced, "wave must displace at least some tiles off the grid lattice")
}

func TestGenerate_ZigzagAmplitudeBound(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionZigzag
	req.Boundary = nil

	tiles := Generate(req)
	require.NotEmpty(t, tiles)

	// Offsets are bounded by 0.3x the cross-axis tile size.
	grid := Generate(baseRequest())
	for i := range tiles {
		if i >= len(grid) {
			break
		}
		assert.LessOrEqual(t, math.Abs(tiles[i].Position.Y-grid[i].Position.Y),
			0.3*req.TileHeight+1e-9)
	}
}

func TestGenerate_ZigzagOffsetIsPerColumn(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionZigzag

	tiles := Generate(req)
	grid := Generate(baseRequest())
	require.Equal(t, len(grid), len(tiles))

	// Every candidate carries exactly its own triangle-wave offset; a
	// running sum across the row would drift even where it stays inside
	// the amplitude bound.
	nx := int(math.Round(math.Sqrt(float64(len(grid)))))
	for i := range tiles {
		assert.InDelta(t, grid[i].Position.X, tiles[i].Position.X, 1e-9)
		want := 0.3 * req.TileHeight * triangleWave(i%nx)
		assert.InDelta(t, want, tiles[i].Position.Y-grid[i].Position.Y, 1e-9)
	}
}

func TestGenerate_WarpedDisplacesBothAxes(t *testing.T) {
	req := baseRequest()
	req.Distribution = model.DistributionWarped

	warped := Generate(req)
	grid := Generate(baseRequest())
	require.NotEmpty(t, warped)

	dxSeen, dySeen := false, false
	for i := range warped {
		if i >= len(grid) {
			break
		}
		if math.Abs(warped[i].Position.X-grid[i].Position.X) > 1e-9 {
			dxSeen = true
		}
		if math.Abs(warped[i].Position.Y-grid[i].Position.Y) > 1e-9 {
			dySeen = true
		}
	}
	assert.True(t, dxSeen, "warp must displace X")
	assert.True(t, dySeen, "warp must displace Y")
}

func footprintSamples(center model.Point2D, w, h float64) [5]model.Point2D {
	hw, hh := w/2, h/2
	return [5]model.Point2D{
		center,
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
}
