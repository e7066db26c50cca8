package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jfpardy/s3dx-viewer/internal/mesh"
	"github.com/jfpardy/s3dx-viewer/internal/s3dx"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <file.s3dx>")
		os.Exit(1)
	}
	path := os.Args[1]

	doc, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	design, err := s3dx.Decode(doc)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	b := &design.Board
	fmt.Printf("Board: %q by %q\n", b.Name, b.Author)
	if b.Category != "" || b.Construction != "" {
		fmt.Printf("  Category: %s, Construction: %s\n", b.Category, b.Construction)
	}
	fmt.Printf("  Length: %.1f  Width: %.1f  Thickness: %.2f\n", b.Length, b.Width, b.Thickness)
	fmt.Printf("  Rocker: nose %.2f / tail %.2f\n", b.NoseRocker, b.TailRocker)
	fmt.Printf("  Volume: %.2f L  Projected surface: %.2f\n", b.Volume, b.SurfaceProj)

	fmt.Printf("Curves:\n")
	fmt.Printf("  Outline: %d control points\n", len(b.Outline.Control.Points))
	fmt.Printf("  Bottom rocker: %d control points\n", len(b.BottomRocker.Control.Points))
	if b.HasDeck {
		fmt.Printf("  Deck rocker: %d control points\n", len(b.DeckRocker.Control.Points))
	} else {
		fmt.Printf("  Deck rocker: absent (derived from thickness)\n")
	}

	fmt.Printf("Cross sections: %d\n", len(b.CrossSections))
	positions := make([]float64, len(b.CrossSections))
	for i := range b.CrossSections {
		cs := &b.CrossSections[i]
		positions[i] = cs.Bezier.Position()
		fmt.Printf("  [%d] x=%.2f points=%d displayed=%d\n",
			i, positions[i], len(cs.Bezier.Control.Points), cs.Displayed)
	}
	sorted := append([]float64(nil), positions...)
	sort.Float64s(sorted)
	fmt.Printf("  sorted positions: %v\n", sorted)

	buf, err := mesh.Build(design)
	if err != nil {
		fmt.Printf("Mesh: not buildable: %v\n", err)
		return
	}
	fmt.Printf("Mesh: %d vertices, %d triangles\n", buf.VertexCount(), buf.TriangleCount())

	minX, minY, minZ := buf.Vertices[0], buf.Vertices[1], buf.Vertices[2]
	maxX, maxY, maxZ := minX, minY, minZ
	for i := 0; i < buf.VertexCount(); i++ {
		x, y, z := buf.Vertices[i*3], buf.Vertices[i*3+1], buf.Vertices[i*3+2]
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if z < minZ {
			minZ = z
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
		if z > maxZ {
			maxZ = z
		}
	}
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", minX, maxX, minY, maxY, minZ, maxZ)
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", maxX-minX, maxY-minY, maxZ-minZ)
}
