package solid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gripforge/gripforge/internal/model"
)

// PlaceShape maps an origin-centered unit footprint to its placed
// position: scale about the origin, rotate about the origin, then
// translate to the tile center.
func PlaceShape(s model.Shape, inst model.TileInstance) model.Shape {
	scale := inst.Scale
	if scale == 0 {
		scale = 1
	}
	out := s.Scale(scale)
	if inst.Rotation != 0 {
		out = out.RotateAround(inst.Rotation, model.Point2D{})
	}
	return out.Translate(inst.Position.X, inst.Position.Y)
}

// PlaceShapes applies PlaceShape to every unit shape.
func PlaceShapes(shapes []model.Shape, inst model.TileInstance) []model.Shape {
	out := make([]model.Shape, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, PlaceShape(s, inst))
	}
	return out
}

// PlaceMesh instances imported mesh geometry at a tile position. The
// source is recentered on its XY bounding-box center, scaled (XY by the
// instance scale, Z by scaleZ), rotated about the z axis, and lifted so
// its lowest point sits on baseZ.
func PlaceMesh(buf model.MeshBuffers, inst model.TileInstance, baseZ, scaleZ float64) Mesh {
	var m Mesh
	if len(buf.Indices) < 3 || scaleZ <= 0 {
		return m
	}
	scale := inst.Scale
	if scale == 0 {
		scale = 1
	}
	cx := (buf.Min[0] + buf.Max[0]) / 2
	cy := (buf.Min[1] + buf.Max[1]) / 2
	sin, cos := math.Sincos(inst.Rotation)

	place := func(idx int) r3.Vec {
		x := (buf.Positions[3*idx] - cx) * scale
		y := (buf.Positions[3*idx+1] - cy) * scale
		z := (buf.Positions[3*idx+2] - buf.Min[2]) * scaleZ
		return r3.Vec{
			X: inst.Position.X + x*cos - y*sin,
			Y: inst.Position.Y + x*sin + y*cos,
			Z: baseZ + z,
		}
	}

	for i := 0; i+2 < len(buf.Indices); i += 3 {
		m.add(place(buf.Indices[i]), place(buf.Indices[i+1]), place(buf.Indices[i+2]))
	}
	return m
}

// MeshFootprint is the placed XY bounding box of a mesh unit, as a
// shape. Mesh units participate in footprint booleans through this box;
// clip decisions for them are per-instance, keep or drop, never a
// partial trim.
func MeshFootprint(buf model.MeshBuffers, inst model.TileInstance) model.Shape {
	w := buf.Max[0] - buf.Min[0]
	h := buf.Max[1] - buf.Min[1]
	scale := inst.Scale
	if scale == 0 {
		scale = 1
	}
	box := model.Shape{Points: []model.Point2D{
		{X: -w / 2 * scale, Y: -h / 2 * scale},
		{X: w / 2 * scale, Y: -h / 2 * scale},
		{X: w / 2 * scale, Y: h / 2 * scale},
		{X: -w / 2 * scale, Y: h / 2 * scale},
	}}
	if inst.Rotation != 0 {
		box = box.RotateAround(inst.Rotation, model.Point2D{})
	}
	return box.Translate(inst.Position.X, inst.Position.Y)
}
