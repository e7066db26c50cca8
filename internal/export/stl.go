// Package export writes a synthesized board mesh to interchange
// formats consumed by external modeling tools.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then 50 bytes per triangle (normal, three vertices,
// attribute word). Per-triangle normals come from the mesh's averaged
// vertex normals; run mesh.ComputeNormals first.
func WriteSTL(w io.Writer, b *Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "s3dx-viewer board mesh")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("export: stl header: %w", err)
	}

	nTri := len(b.Indices) / 3
	if err := binary.Write(bw, binary.LittleEndian, uint32(nTri)); err != nil {
		return fmt.Errorf("export: stl count: %w", err)
	}

	rec := make([]byte, 50)
	for t := 0; t < nTri; t++ {
		i0 := int(b.Indices[t*3])
		i1 := int(b.Indices[t*3+1])
		i2 := int(b.Indices[t*3+2])

		// Face normal: average of the three vertex normals. Zero when
		// normals were never computed, which viewers tolerate.
		for c := 0; c < 3; c++ {
			n := (b.Normals[i0*3+c] + b.Normals[i1*3+c] + b.Normals[i2*3+c]) / 3
			binary.LittleEndian.PutUint32(rec[c*4:], floatBits(n))
		}
		for v, idx := range [3]int{i0, i1, i2} {
			for c := 0; c < 3; c++ {
				binary.LittleEndian.PutUint32(rec[12+v*12+c*4:], floatBits(b.Vertices[idx*3+c]))
			}
		}
		rec[48], rec[49] = 0, 0

		if _, err := bw.Write(rec); err != nil {
			return fmt.Errorf("export: stl triangle %d: %w", t, err)
		}
	}

	return bw.Flush()
}
