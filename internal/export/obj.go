package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/jfpardy/s3dx-viewer/internal/mesh"
)

// Mesh is the buffer layout the writers consume. It matches
// mesh.Buffers so the synthesizer output plugs in directly.
type Mesh = mesh.Buffers

func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}

// WriteOBJ writes the mesh as Wavefront OBJ with positions, texture
// coordinates, normals and v/vt/vn faces. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, name string, b *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", objName(name))
	nVerts := b.VertexCount()
	for i := 0; i < nVerts; i++ {
		fmt.Fprintf(bw, "v %g %g %g\n", b.Vertices[i*3], b.Vertices[i*3+1], b.Vertices[i*3+2])
	}
	for i := 0; i < len(b.UV)/2; i++ {
		fmt.Fprintf(bw, "vt %g %g\n", b.UV[i*2], b.UV[i*2+1])
	}
	for i := 0; i < len(b.Normals)/3; i++ {
		fmt.Fprintf(bw, "vn %g %g %g\n", b.Normals[i*3], b.Normals[i*3+1], b.Normals[i*3+2])
	}
	for t := 0; t+2 < len(b.Indices); t += 3 {
		a := b.Indices[t] + 1
		c := b.Indices[t+1] + 1
		d := b.Indices[t+2] + 1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, c, c, c, d, d, d)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: obj write: %w", err)
	}
	return nil
}

func objName(name string) string {
	if name == "" {
		return "board"
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' || r == '\t' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
