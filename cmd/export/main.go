package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfpardy/s3dx-viewer/internal/export"
	"github.com/jfpardy/s3dx-viewer/internal/mesh"
	"github.com/jfpardy/s3dx-viewer/internal/s3dx"
)

func main() {
	format := flag.String("format", "stl", "Output format: stl or obj")
	out := flag.String("o", "", "Output path (default: input name with new extension)")
	lengthSteps := flag.Int("usteps", 0, "Longitudinal quad count (default: builder default)")
	girthSteps := flag.Int("vsteps", 0, "Circumferential quad count (default: builder default)")

	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: export [-format stl|obj] [-o out] <file.s3dx>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	doc, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	design, err := s3dx.Decode(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	buf, err := mesh.BuildWithOptions(design, mesh.Options{
		LengthSteps: *lengthSteps,
		GirthSteps:  *girthSteps,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mesh.ComputeNormals(buf)

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + "." + *format
	}
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	switch *format {
	case "stl":
		err = export.WriteSTL(f, buf)
	case "obj":
		err = export.WriteOBJ(f, design.Board.Name, buf)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d vertices, %d triangles → %s\n",
		design.Board.Name, buf.VertexCount(), buf.TriangleCount(), outPath)
}
