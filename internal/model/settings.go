package model

import "math"

// Distribution selects the tile placement strategy.
type Distribution string

const (
	DistributionGrid   Distribution = "grid"   // Regular lattice
	DistributionOffset Distribution = "offset" // Brick: every other row shifted half a step
	DistributionHex    Distribution = "hex"    // Clusters of 6 tiles on staggered ring centers
	DistributionRadial Distribution = "radial" // Concentric rings around the bounds centroid
	DistributionRandom Distribution = "random" // Rejection-sampled scatter
	DistributionWave   Distribution = "wave"   // Grid with sinusoidal per-row offset
	DistributionZigzag Distribution = "zigzag" // Grid with triangle-wave per-row offset
	DistributionWarped Distribution = "warped" // Grid with coupled dual-axis sine/cosine warp
)

// Orientation selects how tile rotations are assigned.
type Orientation string

const (
	OrientationNone      Orientation = "none"
	OrientationAlternate Orientation = "alternate"
	OrientationRandom    Orientation = "random"
	// OrientationAligned rotates each tile tangentially to the line from
	// the relevant center to the tile position, plus a quarter turn.
	OrientationAligned Orientation = "aligned"
)

// Direction selects the primary axis for wave/zigzag strategies.
type Direction string

const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
)

// Anchor names a reference point on the outline's bounding box that an
// inlay is aligned to.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTop         Anchor = "top"
	AnchorBottom      Anchor = "bottom"
	AnchorLeft        Anchor = "left"
	AnchorRight       Anchor = "right"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorManual      Anchor = "manual"
)

// GripMode controls how an inlay's footprint affects pattern placement.
type GripMode string

const (
	GripNone    GripMode = "none"    // Inlay has no effect on the pattern
	GripExclude GripMode = "exclude" // Pattern is kept out of the inlay footprint
	GripInclude GripMode = "include" // Footprint rescues tiles from exclusion zones
)

// OutlineSettings configures the base plate outline.
type OutlineSettings struct {
	Size      float64    `json:"size"`      // Side length of the default square, mm
	Thickness float64    `json:"thickness"` // Base plate extrusion height, mm
	Color     string     `json:"color"`     // Display color hint, passed through to exporters
	Mirror    MirrorAxis `json:"mirror"`
	Rotation  float64    `json:"rotation"` // Degrees
}

// PatternSettings configures the repeating surface pattern.
type PatternSettings struct {
	Scale         float64      `json:"scale"`          // Uniform XY scale of the unit footprint
	ScaleZ        float64      `json:"scale_z"`        // Extrusion height (mm) for polygonal units; height multiplier for mesh units
	Margin        float64      `json:"margin"`         // Clip margin against the outline, mm
	Spacing       float64      `json:"spacing"`        // Gap between tiles, mm
	Tiled         bool         `json:"is_tiled"`       // false = single centered instance
	Distribution  Distribution `json:"distribution"`
	Direction     Direction    `json:"direction"`
	Orientation   Orientation  `json:"orientation_policy"`
	Rotation      float64      `json:"rotation"`       // Base unit rotation, degrees
	RotationClamp float64      `json:"rotation_clamp"` // Snap increment in degrees, 0 = off
	ClipToOutline bool         `json:"clip_to_outline"`
	MaxHeight     float64      `json:"max_height"` // Height cap above the base top, 0 = off
	// MarginAppliesToHoles grows hole cutters by +Margin before subtraction.
	// The sign is deliberately asymmetric with the outline clip margin:
	// holes must clear more material than the outline keeps.
	MarginAppliesToHoles bool  `json:"margin_applies_to_holes"`
	Seed                 int64 `json:"seed"` // Seed for random distribution/orientation
}

// SnapRotation snaps an angle in radians to the configured clamp increment.
// A zero clamp leaves the angle untouched.
func (p PatternSettings) SnapRotation(angle float64) float64 {
	if p.RotationClamp <= 0 {
		return angle
	}
	clamp := p.RotationClamp * math.Pi / 180
	return math.Round(angle/clamp) * clamp
}

// InlaySettings configures one inlay's placement and solid generation.
type InlaySettings struct {
	Depth    float64    `json:"depth"`  // Recess into the base from its top face, mm
	Scale    float64    `json:"scale"`  // Uniform XY scale
	Rotation float64    `json:"rotation"` // Degrees
	Extend   float64    `json:"extend"` // Extra height above the base top, mm
	Mirror   MirrorAxis `json:"mirror"`
	Anchor   Anchor     `json:"anchor"`
	ManualX  float64    `json:"manual_x"`
	ManualY  float64    `json:"manual_y"`
	GripMode GripMode   `json:"grip_mode"`
}

// DebugFlags toggle visibility of the waste solids each boolean stage
// produces. Waste geometry is never exported unless explicitly requested.
type DebugFlags struct {
	ShowPatternCutter bool `json:"show_pattern_cutter"`
	ShowHoleCutter    bool `json:"show_hole_cutter"`
	ShowInlayCutter   bool `json:"show_inlay_cutter"`
}

// Settings aggregates the full configuration surface consumed by one
// composition pass.
type Settings struct {
	Outline OutlineSettings `json:"outline"`
	Pattern PatternSettings `json:"pattern"`
	Debug   DebugFlags      `json:"debug"`
}

func DefaultSettings() Settings {
	return Settings{
		Outline: OutlineSettings{
			Size:      300.0,
			Thickness: 4.0,
			Color:     "#4a4a4a",
		},
		Pattern: PatternSettings{
			Scale:         1.0,
			ScaleZ:        2.0,
			Spacing:       5.0,
			Tiled:         true,
			Distribution:  DistributionGrid,
			Direction:     DirectionHorizontal,
			Orientation:   OrientationNone,
			ClipToOutline: true,
			Seed:          1,
		},
	}
}

func DefaultInlaySettings() InlaySettings {
	return InlaySettings{
		Depth:    1.0,
		Scale:    1.0,
		Anchor:   AnchorCenter,
		GripMode: GripNone,
	}
}
