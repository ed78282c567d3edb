package compose

import (
	"fmt"
	"math"

	"github.com/gripforge/gripforge/internal/geom"
	"github.com/gripforge/gripforge/internal/model"
	"github.com/gripforge/gripforge/internal/solid"
	"github.com/gripforge/gripforge/internal/tiling"
)

// SlotKind names one of the output solid groups.
type SlotKind int

const (
	SlotBase SlotKind = iota
	SlotPattern
	SlotInlay
	SlotWaste
)

// WasteKind tags which boolean stage produced a waste solid.
type WasteKind int

const (
	WasteNone WasteKind = iota
	WasteExclusion
	WasteHoles
	WasteClip
	WasteHeightCap
	WasteInlay
)

// Slot keys one named solid in the output set. Using a comparable value
// instead of string names means a run replaces the whole set atomically
// and nothing is ever located by string matching.
type Slot struct {
	Kind  SlotKind
	Waste WasteKind
	Index int
}

func BaseSlot() Slot       { return Slot{Kind: SlotBase} }
func PatternSlot() Slot    { return Slot{Kind: SlotPattern} }
func InlaySlot(i int) Slot { return Slot{Kind: SlotInlay, Index: i} }

func WasteSlot(k WasteKind, i int) Slot {
	return Slot{Kind: SlotWaste, Waste: k, Index: i}
}

// Input is the parameter snapshot for one composition pass.
type Input struct {
	Outline  []model.Shape
	Pattern  model.PatternSource
	Inlays   []model.Inlay
	Settings model.Settings
}

// Result is the complete output set of one pass. Solids holds every
// named solid including debug waste; consumers replace their previous
// set with this one wholesale.
type Result struct {
	Job       uint64
	Solids    map[Slot]solid.Mesh
	Instances []model.TileInstance
	FastPath  bool
	Warnings  []string
}

// Run executes the composition pipeline synchronously. It never returns
// an error: malformed inputs and boolean faults degrade into warnings
// and omitted solids.
func Run(in Input) Result {
	p := &pass{
		in:  in,
		out: Result{Solids: map[Slot]solid.Mesh{}},
	}
	p.ctx = NewBoundaryContext(in.Outline, in.Settings.Outline)
	p.buildBase()
	p.buildPattern()
	p.buildInlays()
	return p.out
}

type pass struct {
	in  Input
	ctx BoundaryContext
	out Result
}

func (p *pass) warnf(format string, args ...interface{}) {
	p.out.Warnings = append(p.out.Warnings, fmt.Sprintf(format, args...))
}

// guard runs one boolean operation and recovers from evaluator panics on
// degenerate input, leaving the pre-failure operand in place.
func (p *pass) guard(stage string, op func()) {
	defer func() {
		if r := recover(); r != nil {
			p.warnf("%s: boolean operation failed: %v", stage, r)
		}
	}()
	op()
}

func (p *pass) thickness() float64 {
	return p.in.Settings.Outline.Thickness
}

func (p *pass) buildBase() {
	t := p.thickness()
	if t <= 0 {
		p.warnf("base: non-positive thickness %.3f, base omitted", t)
		return
	}
	base := solid.Prism(p.ctx.Filled, 0, t)
	if base.IsEmpty() {
		p.warnf("base: empty outline, base omitted")
		return
	}
	p.out.Solids[BaseSlot()] = base.Mesh()
}

// gripZones collects placed inlay footprints acting as placement
// exclusion or inclusion zones.
func (p *pass) gripZones() (exclusions, inclusions []model.Shape) {
	for _, in := range p.in.Inlays {
		switch in.Settings.GripMode {
		case model.GripExclude:
			exclusions = append(exclusions, placeInlayShapes(in, p.ctx.Bounds)...)
		case model.GripInclude:
			inclusions = append(inclusions, placeInlayShapes(in, p.ctx.Bounds)...)
		}
	}
	return exclusions, inclusions
}

func (p *pass) buildPattern() {
	if p.in.Pattern.IsZero() {
		return
	}
	exclusions, inclusions := p.gripZones()

	switch p.in.Pattern.Kind {
	case model.PatternMesh:
		p.buildMeshPattern(exclusions, inclusions)
	default:
		p.buildPolygonalPattern(exclusions, inclusions)
	}
}

// patternUnit centers the polygonal unit on the origin, applies the
// configured scale, and applies the clamp-snapped base rotation.
func (p *pass) patternUnit() ([]model.Shape, float64, float64) {
	ps := p.in.Settings.Pattern
	scale := ps.Scale
	if scale <= 0 {
		scale = 1
	}
	ub, ok := model.BoundsOf(p.in.Pattern.Shapes)
	if !ok {
		return nil, 0, 0
	}
	c := ub.Center()
	baseRot := ps.SnapRotation(ps.Rotation * math.Pi / 180)

	var units []model.Shape
	for _, s := range p.in.Pattern.Shapes {
		if s.IsDegenerate() {
			p.warnf("pattern: degenerate unit shape skipped")
			continue
		}
		u := s.Translate(-c.X, -c.Y).Scale(scale)
		if baseRot != 0 {
			u = u.RotateAround(baseRot, model.Point2D{})
		}
		units = append(units, u.EnforceWinding())
	}
	fb, ok := model.BoundsOf(units)
	if !ok {
		return nil, 0, 0
	}
	return units, fb.Width, fb.Height
}

// place runs the tile placement engine for the given footprint, or
// yields one centered instance when tiling is off. Instance rotations
// are clamp-snapped afterwards.
func (p *pass) place(tileW, tileH float64, exclusions, inclusions []model.Shape) []model.TileInstance {
	ps := p.in.Settings.Pattern
	if !ps.Tiled {
		return []model.TileInstance{{Position: p.ctx.Bounds.Center(), Scale: 1}}
	}
	instances := tiling.Generate(tiling.Request{
		Bounds:       p.ctx.Bounds,
		TileWidth:    tileW,
		TileHeight:   tileH,
		Spacing:      ps.Spacing,
		Boundary:     p.ctx.Filled,
		Margin:       ps.Margin,
		AllowPartial: true,
		Distribution: ps.Distribution,
		Orientation:  ps.Orientation,
		Direction:    ps.Direction,
		Exclusions:   exclusions,
		Inclusions:   inclusions,
		Seed:         ps.Seed,
	})
	for i := range instances {
		instances[i].Rotation = ps.SnapRotation(instances[i].Rotation)
	}
	return instances
}

// fastPathOK reports whether the pattern can skip boolean evaluation
// entirely: every instance solid is then a transform-only copy.
func (p *pass) fastPathOK(exclusions []model.Shape) bool {
	ps := p.in.Settings.Pattern
	return !ps.ClipToOutline && len(exclusions) == 0 &&
		len(p.ctx.Holes) == 0 && ps.MaxHeight <= 0
}

func (p *pass) buildPolygonalPattern(exclusions, inclusions []model.Shape) {
	ps := p.in.Settings.Pattern
	units, tileW, tileH := p.patternUnit()
	if len(units) == 0 {
		p.warnf("pattern: no usable unit shapes")
		return
	}
	unitH := ps.ScaleZ
	if unitH <= 0 {
		p.warnf("pattern: non-positive height %.3f, pattern omitted", unitH)
		return
	}

	instances := p.place(tileW, tileH, exclusions, inclusions)
	p.out.Instances = instances
	if len(instances) == 0 {
		p.warnf("pattern: no valid placements")
		return
	}

	t := p.thickness()
	var op solid.Operand
	for _, inst := range instances {
		op.Regions = append(op.Regions, solid.Region{
			Footprint: solid.PlaceShapes(units, inst),
			Z0:        t,
			Z1:        t + unitH,
		})
	}

	if p.fastPathOK(exclusions) {
		p.out.FastPath = true
		p.out.Solids[PatternSlot()] = op.Mesh()
		return
	}

	op = p.trimPattern(op, exclusions, inclusions)
	if op.IsEmpty() {
		p.warnf("pattern: empty after boolean trimming")
		return
	}
	p.out.Solids[PatternSlot()] = op.Mesh()
}

// trimPattern applies the boolean stages in their fixed order: exclusion
// minus inclusion, hole subtraction, outline clip, height cap. Each
// stage also captures its waste solid when the matching debug flag is
// on.
func (p *pass) trimPattern(op solid.Operand, exclusions, inclusions []model.Shape) solid.Operand {
	ps := p.in.Settings.Pattern
	debug := p.in.Settings.Debug
	t := p.thickness()

	if len(exclusions) > 0 {
		p.guard("pattern/exclusion", func() {
			// Inclusions carve their rescues out of the exclusion zones
			// before the zones touch the pattern.
			cutter := geom.Subtract(exclusions, inclusions)
			var waste solid.Operand
			op, waste = solid.SubtractFootprint(op, cutter)
			p.stashWaste(WasteExclusion, 0, waste, debug.ShowPatternCutter)
		})
	}

	if len(p.ctx.Holes) > 0 {
		p.guard("pattern/holes", func() {
			cutters := p.ctx.Holes
			if ps.MarginAppliesToHoles && ps.Margin > 0 {
				cutters = geom.OffsetAll(cutters, ps.Margin)
			}
			// Overlapping hole cutters become non-manifold seams unless
			// merged first.
			cutters = geom.Union(cutters)
			var waste solid.Operand
			op, waste = solid.SubtractFootprint(op, cutters)
			p.stashWaste(WasteHoles, 0, waste, debug.ShowHoleCutter)
		})
	}

	if ps.ClipToOutline {
		p.guard("pattern/clip", func() {
			clip := p.ctx.Filled
			if ps.Margin > 0 {
				clip = geom.OffsetAll(clip, -ps.Margin)
			}
			var waste solid.Operand
			op, waste = solid.IntersectFootprint(op, clip)
			p.stashWaste(WasteClip, 0, waste, debug.ShowPatternCutter)
		})
	}

	if ps.MaxHeight > 0 {
		p.guard("pattern/height", func() {
			var waste solid.Operand
			op, waste = solid.ClampTop(op, t+ps.MaxHeight)
			p.stashWaste(WasteHeightCap, 0, waste, debug.ShowPatternCutter)
		})
	}
	return op
}

func (p *pass) stashWaste(kind WasteKind, index int, waste solid.Operand, show bool) {
	if !show || waste.IsEmpty() {
		return
	}
	p.out.Solids[WasteSlot(kind, index)] = waste.Mesh()
}

// buildMeshPattern instances an imported mesh unit per placement. Exact
// mesh booleans are out of scope, so clipping is a per-instance keep or
// drop decision made from the unit's footprint bounding box.
func (p *pass) buildMeshPattern(exclusions, inclusions []model.Shape) {
	ps := p.in.Settings.Pattern
	buf := p.in.Pattern.Mesh
	if len(buf.Indices) < 3 {
		p.warnf("pattern: mesh unit has no faces")
		return
	}
	scale := ps.Scale
	if scale <= 0 {
		scale = 1
	}
	scaleZ := ps.ScaleZ
	if scaleZ <= 0 {
		p.warnf("pattern: non-positive height scale %.3f, pattern omitted", scaleZ)
		return
	}
	baseRot := ps.SnapRotation(ps.Rotation * math.Pi / 180)
	tileW := (buf.Max[0] - buf.Min[0]) * scale
	tileH := (buf.Max[1] - buf.Min[1]) * scale

	instances := p.place(tileW, tileH, exclusions, inclusions)
	p.out.Instances = instances
	if len(instances) == 0 {
		p.warnf("pattern: no valid placements")
		return
	}
	if ps.MaxHeight > 0 {
		p.warnf("pattern: height cap is not applied to mesh units")
	}
	p.out.FastPath = p.fastPathOK(exclusions)

	var clip []model.Shape
	if ps.ClipToOutline {
		clip = p.ctx.Filled
		if ps.Margin > 0 {
			clip = geom.OffsetAll(clip, -ps.Margin)
		}
	}

	t := p.thickness()
	var m solid.Mesh
	kept := 0
	for _, inst := range instances {
		placed := inst
		placed.Scale = scale * nonZero(inst.Scale)
		placed.Rotation = inst.Rotation + baseRot

		if clip != nil {
			fp := solid.MeshFootprint(buf, placed)
			if len(geom.Intersect([]model.Shape{fp}, clip)) == 0 {
				continue
			}
		}
		m.Merge(solid.PlaceMesh(buf, placed, t, scaleZ))
		kept++
	}
	if kept == 0 {
		p.warnf("pattern: every mesh instance fell outside the outline")
		return
	}
	p.out.Solids[PatternSlot()] = m
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// buildInlays generates one solid per inlay. The per-index epsilon on
// the top face keeps overlapping inlays in a deterministic z order.
func (p *pass) buildInlays() {
	t := p.thickness()
	debug := p.in.Settings.Debug

	for i, in := range p.in.Inlays {
		shapes := placeInlayShapes(in, p.ctx.Bounds)
		usable := shapes[:0]
		for _, s := range shapes {
			if s.IsDegenerate() {
				p.warnf("inlay %q: degenerate shape skipped", in.Name)
				continue
			}
			usable = append(usable, s)
		}
		if len(usable) == 0 {
			p.warnf("inlay %q: no usable shapes", in.Name)
			continue
		}

		z0 := t - in.Settings.Depth
		z1 := t + in.Settings.Extend + float64(i)*1e-4
		if z1 <= z0 {
			p.warnf("inlay %q: empty z range [%.3f, %.3f]", in.Name, z0, z1)
			continue
		}
		op := solid.Prism(usable, z0, z1)

		// The filled boundary carries its holes, so one intersection
		// covers both the outline clip and the hole subtraction.
		if len(p.in.Outline) > 0 || len(p.ctx.Holes) > 0 {
			idx := i
			p.guard("inlay/clip", func() {
				var waste solid.Operand
				op, waste = solid.IntersectFootprint(op, p.ctx.Filled)
				p.stashWaste(WasteInlay, idx, waste, debug.ShowInlayCutter)
			})
		}

		if op.IsEmpty() {
			p.warnf("inlay %q: empty after clipping", in.Name)
			continue
		}
		p.out.Solids[InlaySlot(i)] = op.Mesh()
	}
}
