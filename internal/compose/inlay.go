package compose

import (
	"math"

	"github.com/gripforge/gripforge/internal/model"
)

// transformedHalfExtent returns the half width/height of the inlay's
// bounding box after scale and rotation. Mirroring never changes the box
// extent.
func transformedHalfExtent(inlayBounds model.Rect, s model.InlaySettings) (hw, hh float64) {
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	w := inlayBounds.Width * scale
	h := inlayBounds.Height * scale
	if s.Rotation != 0 {
		rad := s.Rotation * math.Pi / 180
		sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
		w, h = w*cos+h*sin, w*sin+h*cos
	}
	return w / 2, h / 2
}

// InlayOffset computes the world offset (dx, dy) that moves the inlay's
// bounding-box center onto the requested anchor of the outline's bounding
// box, with the inlay's scale/rotation/mirror already accounted for. The
// manual anchor passes the stored coordinates through unchanged.
//
// The composition pipeline and any interactive drag math must both call
// this function; computing the offset twice in two places is how exported
// geometry drifts away from what is shown on screen.
func InlayOffset(inlayBounds, outlineBounds model.Rect, s model.InlaySettings) (dx, dy float64) {
	if s.Anchor == model.AnchorManual {
		return s.ManualX, s.ManualY
	}

	hw, hh := transformedHalfExtent(inlayBounds, s)
	oc := outlineBounds.Center()
	left := outlineBounds.X + hw
	right := outlineBounds.X + outlineBounds.Width - hw
	bottom := outlineBounds.Y + hh
	top := outlineBounds.Y + outlineBounds.Height - hh

	var target model.Point2D
	switch s.Anchor {
	case model.AnchorTop:
		target = model.Point2D{X: oc.X, Y: top}
	case model.AnchorBottom:
		target = model.Point2D{X: oc.X, Y: bottom}
	case model.AnchorLeft:
		target = model.Point2D{X: left, Y: oc.Y}
	case model.AnchorRight:
		target = model.Point2D{X: right, Y: oc.Y}
	case model.AnchorTopLeft:
		target = model.Point2D{X: left, Y: top}
	case model.AnchorTopRight:
		target = model.Point2D{X: right, Y: top}
	case model.AnchorBottomLeft:
		target = model.Point2D{X: left, Y: bottom}
	case model.AnchorBottomRight:
		target = model.Point2D{X: right, Y: bottom}
	default: // center
		target = oc
	}

	ic := inlayBounds.Center()
	return target.X - ic.X, target.Y - ic.Y
}

// placeInlayShapes applies the inlay's scale/rotation/mirror about its
// own bounding-box center, then translates by the resolved offset.
func placeInlayShapes(in model.Inlay, outlineBounds model.Rect) []model.Shape {
	b := in.Bounds()
	center := b.Center()
	scale := in.Settings.Scale
	if scale == 0 {
		scale = 1
	}

	dx, dy := InlayOffset(b, outlineBounds, in.Settings)

	out := make([]model.Shape, 0, len(in.Shapes))
	for _, s := range in.Shapes {
		t := s
		// Shape.Mirror reflects about the shape's own box; reflecting the
		// whole set about the set center adds a translation per shape.
		switch in.Settings.Mirror {
		case model.MirrorX:
			t = t.Mirror(model.MirrorX).Translate(2*(center.X-s.Bounds().Center().X), 0)
		case model.MirrorY:
			t = t.Mirror(model.MirrorY).Translate(0, 2*(center.Y-s.Bounds().Center().Y))
		}
		if scale != 1 {
			t = t.Translate(-center.X, -center.Y).Scale(scale).Translate(center.X, center.Y)
		}
		if in.Settings.Rotation != 0 {
			t = t.RotateAround(in.Settings.Rotation*math.Pi/180, center)
		}
		out = append(out, t.Translate(dx, dy).EnforceWinding())
	}
	return out
}
