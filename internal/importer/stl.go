package importer

import (
	"fmt"
	"math"

	"github.com/hschendel/stl"

	"github.com/gripforge/gripforge/internal/model"
)

// ImportSTL imports a triangulated mesh for use as a mesh-typed pattern
// unit. The mesh is flattened into raw buffers with the bounding box
// precomputed, which is all the pipeline needs from a mesh source.
func ImportSTL(path string) ImportResult {
	result := ImportResult{}

	sol, err := stl.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open STL file: %v", err))
		return result
	}
	if len(sol.Triangles) == 0 {
		result.Errors = append(result.Errors, "STL file contains no triangles")
		return result
	}

	buf := model.MeshBuffers{
		Positions: make([]float64, 0, len(sol.Triangles)*9),
		Normals:   make([]float64, 0, len(sol.Triangles)*9),
		Indices:   make([]int, 0, len(sol.Triangles)*3),
		Min:       [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max:       [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}

	degenerate := 0
	for _, tri := range sol.Triangles {
		if isDegenerateTriangle(tri) {
			degenerate++
			continue
		}
		for _, v := range tri.Vertices {
			buf.Indices = append(buf.Indices, len(buf.Positions)/3)
			for axis := 0; axis < 3; axis++ {
				c := float64(v[axis])
				buf.Positions = append(buf.Positions, c)
				buf.Min[axis] = math.Min(buf.Min[axis], c)
				buf.Max[axis] = math.Max(buf.Max[axis], c)
			}
			for axis := 0; axis < 3; axis++ {
				buf.Normals = append(buf.Normals, float64(tri.Normal[axis]))
			}
		}
	}
	if degenerate > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d degenerate triangles", degenerate))
	}
	if len(buf.Indices) == 0 {
		result.Errors = append(result.Errors, "STL file contains no usable triangles")
		return result
	}

	result.Mesh = buf
	return result
}

func isDegenerateTriangle(t stl.Triangle) bool {
	return t.Vertices[0] == t.Vertices[1] ||
		t.Vertices[1] == t.Vertices[2] ||
		t.Vertices[0] == t.Vertices[2]
}
