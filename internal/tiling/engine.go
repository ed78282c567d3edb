// Package tiling implements the tile placement engine: given a footprint
// size, spacing, boundary, margins, and exclusion/inclusion zones, it
// produces an ordered list of tile instances under one of eight
// distribution strategies.
package tiling

import (
	"math"
	"math/rand"

	"github.com/gripforge/gripforge/internal/model"
)

// Request carries every placement-affecting input for one generation run.
type Request struct {
	Bounds     model.Rect
	TileWidth  float64
	TileHeight float64
	Spacing    float64

	// Boundary shapes restrict placement; when empty, an axis-aligned box
	// test against Bounds (shrunk by Margin) is used instead.
	Boundary []model.Shape
	Margin   float64
	// AllowPartial keeps a tile when any of its five sample points is
	// valid; otherwise all five must be.
	AllowPartial bool

	Distribution model.Distribution
	Orientation  model.Orientation
	Direction    model.Direction

	Exclusions []model.Shape
	Inclusions []model.Shape

	Seed int64
}

// candidate is a tentative tile center plus the reference center used by
// the aligned orientation policy (bounds centroid for lattices, cluster or
// ring center for hex/radial).
type candidate struct {
	pos model.Point2D
	ref model.Point2D
}

type engine struct {
	req Request
	rng *rand.Rand
}

// Generate produces the ordered tile instances for the request. Candidates
// failing the validity gate are silently dropped, except under the random
// distribution, which retries by rejection sampling. When a constrained
// boundary exhausts the scatter budget the result is whatever was placed,
// possibly empty.
func Generate(req Request) []model.TileInstance {
	if req.TileWidth <= 0 || req.TileHeight <= 0 {
		return nil
	}
	if req.Bounds.Width <= 0 || req.Bounds.Height <= 0 {
		return nil
	}
	seed := req.Seed
	if seed == 0 {
		seed = 1
	}
	e := &engine{req: req, rng: rand.New(rand.NewSource(seed))}

	var cands []candidate
	switch req.Distribution {
	case model.DistributionOffset:
		cands = e.lattice(true, nil)
	case model.DistributionHex:
		cands = e.hex()
	case model.DistributionRadial:
		cands = e.radial()
	case model.DistributionRandom:
		return e.scatter()
	case model.DistributionWave:
		cands = e.lattice(false, e.waveOffset)
	case model.DistributionZigzag:
		cands = e.lattice(false, e.zigzagOffset)
	case model.DistributionWarped:
		cands = e.lattice(false, e.warpOffset)
	default: // grid
		cands = e.lattice(false, nil)
	}

	return e.collect(cands)
}

// collect runs every candidate through the validity gate and assigns
// rotations per the orientation policy.
func (e *engine) collect(cands []candidate) []model.TileInstance {
	var out []model.TileInstance
	for _, c := range cands {
		if !e.checkPosition(c.pos) {
			continue
		}
		out = append(out, model.TileInstance{
			Position: c.pos,
			Rotation: e.rotationFor(len(out), c),
			Scale:    1,
		})
	}
	return out
}

func (e *engine) rotationFor(index int, c candidate) float64 {
	switch e.req.Orientation {
	case model.OrientationAlternate:
		if index%2 == 1 {
			return math.Pi / 2
		}
		return 0
	case model.OrientationRandom:
		return e.rng.Float64() * 2 * math.Pi
	case model.OrientationAligned:
		// Tangential to the line from the reference center, plus a
		// quarter turn.
		return math.Atan2(c.pos.Y-c.ref.Y, c.pos.X-c.ref.X) + math.Pi/2
	default:
		return 0
	}
}

// checkPosition samples the tile center plus the four corners of its
// axis-aligned footprint and applies the exclusion and boundary rules.
func (e *engine) checkPosition(center model.Point2D) bool {
	hw := e.req.TileWidth / 2
	hh := e.req.TileHeight / 2
	samples := [5]model.Point2D{
		center,
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}

	// Exclusion rule: reject only when every sample is inside an exclusion
	// shape and none is rescued by an inclusion shape. Partially-excluded
	// tiles are kept on purpose; the boolean stage trims them exactly.
	if len(e.req.Exclusions) > 0 {
		allExcluded := true
		anyIncluded := false
		for _, p := range samples {
			if !insideAny(e.req.Exclusions, p) {
				allExcluded = false
			}
			if insideAny(e.req.Inclusions, p) {
				anyIncluded = true
			}
		}
		if allExcluded && !anyIncluded {
			return false
		}
	}

	// Boundary rule.
	if len(e.req.Boundary) > 0 {
		valid := 0
		for _, p := range samples {
			if e.pointInBoundary(p) {
				valid++
			}
		}
		if e.req.AllowPartial {
			return valid > 0
		}
		return valid == len(samples)
	}

	// Fallback: axis-aligned box test against bounds shrunk by margin.
	box := e.req.Bounds
	if e.req.Margin > 0 {
		box = box.Inset(e.req.Margin)
	}
	valid := 0
	for _, p := range samples {
		if box.Contains(p) {
			valid++
		}
	}
	if e.req.AllowPartial {
		return valid > 0
	}
	return valid == len(samples)
}

// pointInBoundary reports whether p lies inside any boundary shape while
// keeping at least Margin away from that shape's edge.
func (e *engine) pointInBoundary(p model.Point2D) bool {
	for _, b := range e.req.Boundary {
		if !b.ContainsPoint(p.X, p.Y) {
			continue
		}
		if e.req.Margin > 0 && b.DistanceToEdge(p.X, p.Y) < e.req.Margin {
			continue
		}
		return true
	}
	return false
}

func insideAny(shapes []model.Shape, p model.Point2D) bool {
	for _, s := range shapes {
		if s.ContainsPoint(p.X, p.Y) {
			return true
		}
	}
	return false
}

// lattice generates a regular grid sized to cover the bounds, centered on
// the bounds centroid, with step = tile size + spacing per axis. brick
// shifts every other row by half the horizontal step; warp, when non-nil,
// displaces each candidate as a function of its row/column indices.
func (e *engine) lattice(brick bool, warp func(row, col int) (dx, dy float64)) []candidate {
	stepX := e.req.TileWidth + e.req.Spacing
	stepY := e.req.TileHeight + e.req.Spacing
	c := e.req.Bounds.Center()

	nx := int(e.req.Bounds.Width/stepX) + 1
	ny := int(e.req.Bounds.Height/stepY) + 1

	cands := make([]candidate, 0, nx*ny)
	for row := 0; row < ny; row++ {
		y := c.Y + (float64(row)-float64(ny-1)/2)*stepY
		for col := 0; col < nx; col++ {
			x := c.X + (float64(col)-float64(nx-1)/2)*stepX
			if brick && row%2 == 1 {
				x += stepX / 2
			}
			py := y
			if warp != nil {
				dx, dy := warp(row, col)
				x += dx
				py += dy
			}
			cands = append(cands, candidate{pos: model.Point2D{X: x, Y: py}, ref: c})
		}
	}
	return cands
}

// waveOffset displaces rows (or columns) sinusoidally: amplitude 0.35x the
// cross-axis tile size, 0.6 rad per index.
func (e *engine) waveOffset(row, col int) (float64, float64) {
	if e.req.Direction == model.DirectionVertical {
		return 0.35 * e.req.TileWidth * math.Sin(0.6*float64(row)), 0
	}
	return 0, 0.35 * e.req.TileHeight * math.Sin(0.6*float64(col))
}

// zigzagOffset displaces rows (or columns) by a triangle wave with a
// period of 8 indices and amplitude 0.3x the cross-axis tile size.
func (e *engine) zigzagOffset(row, col int) (float64, float64) {
	if e.req.Direction == model.DirectionVertical {
		return 0.3 * e.req.TileWidth * triangleWave(row), 0
	}
	return 0, 0.3 * e.req.TileHeight * triangleWave(col)
}

// triangleWave maps an index to [-1, 1] with period 8.
func triangleWave(i int) float64 {
	phase := float64(i%8) / 8
	return 1 - 4*math.Abs(phase-0.5)
}

// warpOffset couples both axes: each axis is displaced by a sine/cosine of
// the other axis's index, amplitude 0.4x the tile size.
func (e *engine) warpOffset(row, col int) (float64, float64) {
	return 0.4 * e.req.TileWidth * math.Sin(0.5*float64(row)),
		0.4 * e.req.TileHeight * math.Cos(0.5*float64(col))
}

// hex places clusters of 6 tiles on a ring around cluster centers laid out
// on a staggered lattice.
func (e *engine) hex() []candidate {
	maxTile := math.Max(e.req.TileWidth, e.req.TileHeight)
	ringRadius := maxTile + e.req.Spacing
	stepX := 2*ringRadius + maxTile + 2*e.req.Spacing
	stepY := 0.866 * stepX
	c := e.req.Bounds.Center()

	nx := int(e.req.Bounds.Width/stepX) + 2
	ny := int(e.req.Bounds.Height/stepY) + 2

	var cands []candidate
	for row := 0; row < ny; row++ {
		cy := c.Y + (float64(row)-float64(ny-1)/2)*stepY
		for col := 0; col < nx; col++ {
			cx := c.X + (float64(col)-float64(nx-1)/2)*stepX
			if row%2 == 1 {
				cx += stepX / 2
			}
			cluster := model.Point2D{X: cx, Y: cy}
			for i := 0; i < 6; i++ {
				angle := float64(i)*math.Pi/3 + math.Pi/6
				cands = append(cands, candidate{
					pos: model.Point2D{
						X: cluster.X + ringRadius*math.Cos(angle),
						Y: cluster.Y + ringRadius*math.Sin(angle),
					},
					ref: cluster,
				})
			}
		}
	}
	return cands
}

// radial places concentric rings around the bounds centroid; alternate
// rings are angularly offset by half a step. A single tile goes at the
// centroid itself when valid.
func (e *engine) radial() []candidate {
	step := math.Max(e.req.TileWidth, e.req.TileHeight) + e.req.Spacing
	c := e.req.Bounds.Center()
	maxRadius := math.Hypot(e.req.Bounds.Width, e.req.Bounds.Height) / 2

	cands := []candidate{{pos: c, ref: c}}
	for ring := 1; ; ring++ {
		radius := float64(ring) * step
		if radius > maxRadius {
			break
		}
		count := int(2 * math.Pi * radius / step)
		if count < 1 {
			continue
		}
		angleStep := 2 * math.Pi / float64(count)
		phase := 0.0
		if ring%2 == 0 {
			phase = angleStep / 2
		}
		for i := 0; i < count; i++ {
			angle := phase + float64(i)*angleStep
			cands = append(cands, candidate{
				pos: model.Point2D{
					X: c.X + radius*math.Cos(angle),
					Y: c.Y + radius*math.Sin(angle),
				},
				ref: c,
			})
		}
	}
	return cands
}

// scatter rejection-samples tile centers within the bounds. Candidates
// must clear every previously accepted center by
// (tileWidth+tileHeight)/2 + 0.8*spacing and pass the validity gate. The
// attempt budget is 50x the estimated maximum tile count.
func (e *engine) scatter() []model.TileInstance {
	minDist := (e.req.TileWidth+e.req.TileHeight)/2 + 0.8*e.req.Spacing
	footprint := e.req.TileWidth * e.req.TileHeight
	estMax := int(e.req.Bounds.Width * e.req.Bounds.Height / footprint * 2)
	if estMax < 1 {
		estMax = 1
	}
	budget := 50 * estMax

	var out []model.TileInstance
	for attempt := 0; attempt < budget && len(out) < estMax; attempt++ {
		p := model.Point2D{
			X: e.req.Bounds.X + e.rng.Float64()*e.req.Bounds.Width,
			Y: e.req.Bounds.Y + e.rng.Float64()*e.req.Bounds.Height,
		}
		tooClose := false
		for _, placed := range out {
			if math.Hypot(p.X-placed.Position.X, p.Y-placed.Position.Y) <= minDist {
				tooClose = true
				break
			}
		}
		if tooClose || !e.checkPosition(p) {
			continue
		}
		out = append(out, model.TileInstance{
			Position: p,
			Rotation: e.rotationFor(len(out), candidate{pos: p, ref: e.req.Bounds.Center()}),
			Scale:    1,
		})
	}
	return out
}
