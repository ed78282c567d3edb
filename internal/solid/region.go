package solid

import (
	"github.com/gripforge/gripforge/internal/geom"
	"github.com/gripforge/gripforge/internal/model"
)

// Region is a prism slab: a set of disjoint footprint shapes swept from
// Z0 to Z1.
type Region struct {
	Footprint []model.Shape
	Z0        float64
	Z1        float64
}

func (r Region) isEmpty() bool {
	return r.Z1 <= r.Z0 || len(r.Footprint) == 0
}

// Operand is a solid made of prism regions. Regions may differ in both
// footprint and z extent, which is how clipped pattern solids keep their
// varying heights.
type Operand struct {
	Regions []Region
}

// Prism builds a single-region operand.
func Prism(footprint []model.Shape, z0, z1 float64) Operand {
	r := Region{Footprint: footprint, Z0: z0, Z1: z1}
	if r.isEmpty() {
		return Operand{}
	}
	return Operand{Regions: []Region{r}}
}

// IsEmpty reports whether the operand encloses no volume.
func (o Operand) IsEmpty() bool {
	for _, r := range o.Regions {
		if !r.isEmpty() {
			return false
		}
	}
	return true
}

// Merge appends the other operand's regions.
func (o Operand) Merge(other Operand) Operand {
	out := Operand{Regions: make([]Region, 0, len(o.Regions)+len(other.Regions))}
	out.Regions = append(out.Regions, o.Regions...)
	out.Regions = append(out.Regions, other.Regions...)
	return out
}

// Footprint returns the merged XY footprint across all regions.
func (o Operand) Footprint() []model.Shape {
	var all []model.Shape
	for _, r := range o.Regions {
		all = append(all, r.Footprint...)
	}
	return geom.Union(all)
}

// Volume sums footprint area times height over all regions.
func (o Operand) Volume() float64 {
	var v float64
	for _, r := range o.Regions {
		v += geom.AreaOf(r.Footprint) * (r.Z1 - r.Z0)
	}
	return v
}

// Mesh extrudes every region into one triangle soup.
func (o Operand) Mesh() Mesh {
	var m Mesh
	for _, r := range o.Regions {
		m.Merge(ExtrudeAll(r.Footprint, r.Z0, r.Z1))
	}
	return m
}

// IntersectFootprint keeps the part of the operand inside the clip
// footprint. The returned waste is the complementary part that was cut
// away, region by region, so it can be rendered as a debug solid.
func IntersectFootprint(o Operand, clip []model.Shape) (kept, waste Operand) {
	for _, r := range o.Regions {
		in := geom.Intersect(r.Footprint, clip)
		out := geom.Subtract(r.Footprint, clip)
		if len(in) > 0 {
			kept.Regions = append(kept.Regions, Region{Footprint: in, Z0: r.Z0, Z1: r.Z1})
		}
		if len(out) > 0 {
			waste.Regions = append(waste.Regions, Region{Footprint: out, Z0: r.Z0, Z1: r.Z1})
		}
	}
	return kept, waste
}

// SubtractFootprint removes the cut footprint from the operand. The
// returned waste is the removed part.
func SubtractFootprint(o Operand, cut []model.Shape) (kept, waste Operand) {
	waste, kept = IntersectFootprint(o, cut)
	return kept, waste
}

// ClampTop cuts the operand at maxZ. Everything above becomes waste with
// its footprint intact, so the debug solid shows exactly what the height
// cap removed.
func ClampTop(o Operand, maxZ float64) (kept, waste Operand) {
	for _, r := range o.Regions {
		switch {
		case r.Z1 <= maxZ:
			kept.Regions = append(kept.Regions, r)
		case r.Z0 >= maxZ:
			waste.Regions = append(waste.Regions, r)
		default:
			kept.Regions = append(kept.Regions, Region{Footprint: r.Footprint, Z0: r.Z0, Z1: maxZ})
			waste.Regions = append(waste.Regions, Region{Footprint: r.Footprint, Z0: maxZ, Z1: r.Z1})
		}
	}
	return kept, waste
}
