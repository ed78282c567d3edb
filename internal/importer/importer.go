// Package importer loads outline, pattern, and inlay geometry from
// external files. DXF files produce planar shapes; STL files produce raw
// mesh buffers for mesh-typed pattern units. The front door Import
// discriminates by file extension.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gripforge/gripforge/internal/model"
)

// ImportResult holds the results of an import operation. Shapes is
// populated for planar sources, Mesh for triangulated ones; Errors and
// Warnings collect everything non-fatal encountered on the way.
type ImportResult struct {
	Shapes   []model.Shape
	Mesh     model.MeshBuffers
	Errors   []string
	Warnings []string
}

// HasMesh reports whether the result carries mesh geometry.
func (r ImportResult) HasMesh() bool {
	return len(r.Mesh.Positions) > 0
}

// Source converts the result into a pattern source, branching on what
// was imported.
func (r ImportResult) Source() model.PatternSource {
	if r.HasMesh() {
		return model.MeshSource(r.Mesh)
	}
	return model.PolygonalSource(r.Shapes...)
}

// Import loads geometry from the given path, dispatching on the file
// extension. SVG is recognized but not supported.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		return ImportDXF(path)
	case ".stl":
		return ImportSTL(path)
	case ".svg":
		return ImportResult{Errors: []string{"SVG import is not supported"}}
	default:
		return ImportResult{Errors: []string{
			fmt.Sprintf("Unsupported file type %q (expected .dxf or .stl)", filepath.Ext(path)),
		}}
	}
}
