// GripForge generates procedural grip surfaces.
//
// Composes a 3D-printable base plate with a repeating surface pattern
// and optional inlays, then writes the result as STL files.
//
// Build:
//   go build -o gripforge ./cmd/gripforge
//
// Example:
//   gripforge -outline plate.dxf -pattern bump.dxf -out ./print
//   gripforge -pattern knob.stl -inlay logo.dxf -waste -out ./debug

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gripforge/gripforge/internal/compose"
	"github.com/gripforge/gripforge/internal/export"
	"github.com/gripforge/gripforge/internal/importer"
	"github.com/gripforge/gripforge/internal/model"
	"github.com/gripforge/gripforge/internal/project"
)

func main() {
	var (
		outlinePath  = flag.String("outline", "", "outline file (.dxf); omit for the default square")
		patternPath  = flag.String("pattern", "", "pattern unit file (.dxf or .stl)")
		inlayPaths   multiFlag
		settingsPath = flag.String("settings", "", "settings JSON (default: built-in defaults)")
		outDir       = flag.String("out", ".", "output directory for STL files")
		waste        = flag.Bool("waste", false, "also export debug waste solids")
	)
	flag.Var(&inlayPaths, "inlay", "inlay file (.dxf); repeatable")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("gripforge: ")

	settings := model.DefaultSettings()
	if *settingsPath != "" {
		var err error
		settings, err = project.LoadSettings(*settingsPath)
		if err != nil {
			log.Fatalf("load settings: %v", err)
		}
	}
	if *waste {
		settings.Debug = model.DebugFlags{
			ShowPatternCutter: true,
			ShowHoleCutter:    true,
			ShowInlayCutter:   true,
		}
	}

	in := compose.Input{Settings: settings}

	if *outlinePath != "" {
		res := importer.Import(*outlinePath)
		reportImport("outline", *outlinePath, res)
		in.Outline = res.Shapes
	}
	if *patternPath != "" {
		res := importer.Import(*patternPath)
		reportImport("pattern", *patternPath, res)
		in.Pattern = res.Source()
	}
	for _, path := range inlayPaths {
		res := importer.Import(path)
		reportImport("inlay", path, res)
		if len(res.Shapes) == 0 {
			continue
		}
		inlay := model.NewInlay(baseName(path), res.Shapes)
		in.Inlays = append(in.Inlays, inlay)
	}

	result := compose.Run(in)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	if len(result.Solids) == 0 {
		log.Fatal("nothing to export")
	}

	written, err := export.WriteResult(*outDir, result, *waste)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	for _, path := range written {
		fmt.Println(path)
	}
	log.Printf("%d instances placed, %d solids written", len(result.Instances), len(written))
}

func reportImport(role, path string, res importer.ImportResult) {
	for _, w := range res.Warnings {
		log.Printf("%s %s: %s", role, path, w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			log.Printf("%s %s: %s", role, path, e)
		}
		os.Exit(1)
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// multiFlag collects repeated string flags.
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
