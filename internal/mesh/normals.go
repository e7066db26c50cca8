package mesh

import "math"

// ComputeNormals fills the Normals buffer by accumulating
// area-weighted face normals per vertex and normalizing. Build leaves
// normals zeroed so that consumers which never shade skip this pass.
// Vertices referenced by no triangle, and degenerate accumulations,
// get the render up axis.
func ComputeNormals(b *Buffers) {
	for i := range b.Normals {
		b.Normals[i] = 0
	}

	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0 := int(b.Indices[t]) * 3
		i1 := int(b.Indices[t+1]) * 3
		i2 := int(b.Indices[t+2]) * 3

		e1x := float64(b.Vertices[i1] - b.Vertices[i0])
		e1y := float64(b.Vertices[i1+1] - b.Vertices[i0+1])
		e1z := float64(b.Vertices[i1+2] - b.Vertices[i0+2])
		e2x := float64(b.Vertices[i2] - b.Vertices[i0])
		e2y := float64(b.Vertices[i2+1] - b.Vertices[i0+1])
		e2z := float64(b.Vertices[i2+2] - b.Vertices[i0+2])

		// Cross product length carries the face area weighting.
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x

		for _, i := range [3]int{i0, i1, i2} {
			b.Normals[i] += float32(nx)
			b.Normals[i+1] += float32(ny)
			b.Normals[i+2] += float32(nz)
		}
	}

	for i := 0; i+2 < len(b.Normals); i += 3 {
		nx := float64(b.Normals[i])
		ny := float64(b.Normals[i+1])
		nz := float64(b.Normals[i+2])
		l := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if l < 1e-12 {
			b.Normals[i] = 0
			b.Normals[i+1] = 1
			b.Normals[i+2] = 0
			continue
		}
		b.Normals[i] = float32(nx / l)
		b.Normals[i+1] = float32(ny / l)
		b.Normals[i+2] = float32(nz / l)
	}
}
