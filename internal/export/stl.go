// Package export writes the composed solids to STL files, one file per
// named solid. Waste solids exist for debugging and stay out of the
// export unless explicitly requested.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hschendel/stl"

	"github.com/gripforge/gripforge/internal/compose"
	"github.com/gripforge/gripforge/internal/solid"
)

// wasteNames maps each boolean stage's waste tag to a file name stem.
var wasteNames = map[compose.WasteKind]string{
	compose.WasteExclusion: "waste_exclusion",
	compose.WasteHoles:     "waste_holes",
	compose.WasteClip:      "waste_clip",
	compose.WasteHeightCap: "waste_heightcap",
	compose.WasteInlay:     "waste_inlay",
}

// FileName returns the STL file name for a solid slot.
func FileName(s compose.Slot) string {
	switch s.Kind {
	case compose.SlotBase:
		return "base.stl"
	case compose.SlotPattern:
		return "pattern.stl"
	case compose.SlotInlay:
		return fmt.Sprintf("inlay_%d.stl", s.Index)
	default:
		name, ok := wasteNames[s.Waste]
		if !ok {
			name = "waste"
		}
		return fmt.Sprintf("%s_%d.stl", name, s.Index)
	}
}

// WriteResult writes every named solid of a composition result into dir
// as binary STL, skipping waste solids unless includeWaste is set. It
// returns the written paths in a stable order.
func WriteResult(dir string, res compose.Result, includeWaste bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	slots := make([]compose.Slot, 0, len(res.Solids))
	for s := range res.Solids {
		if s.Kind == compose.SlotWaste && !includeWaste {
			continue
		}
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Waste != b.Waste {
			return a.Waste < b.Waste
		}
		return a.Index < b.Index
	})

	var written []string
	for _, s := range slots {
		m := res.Solids[s]
		if m.IsEmpty() {
			continue
		}
		path := filepath.Join(dir, FileName(s))
		if err := WriteMesh(path, FileName(s), m); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteMesh writes one mesh as binary STL with recomputed face normals.
func WriteMesh(path, name string, m solid.Mesh) error {
	sol := &stl.Solid{
		Name:      name,
		IsAscii:   false,
		Triangles: make([]stl.Triangle, 0, len(m.Triangles)),
	}
	for _, t := range m.Triangles {
		n := t.Normal()
		sol.Triangles = append(sol.Triangles, stl.Triangle{
			Normal: stl.Vec3{float32(n.X), float32(n.Y), float32(n.Z)},
			Vertices: [3]stl.Vec3{
				{float32(t[0].X), float32(t[0].Y), float32(t[0].Z)},
				{float32(t[1].X), float32(t[1].Y), float32(t[1].Z)},
				{float32(t[2].X), float32(t[2].Y), float32(t[2].Z)},
			},
		})
	}
	if err := sol.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
