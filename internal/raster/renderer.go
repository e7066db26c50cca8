package raster

import (
	"image"
	"math"

	"github.com/jfpardy/s3dx-viewer/internal/mathutil"
	"github.com/jfpardy/s3dx-viewer/internal/mesh"
	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// defaultBoardColor is the blank-foam white used when the design
// carries no outline color.
const defaultBoardColor = 0xF0EFE8

// RenderMesh renders a synthesized board mesh to an NRGBA image using
// an orthographic fit of the view-transformed bounding box. The scene
// record supplies lighting and background; supersample scales the
// working resolution for later downsampling.
func RenderMesh(buf *mesh.Buffers, design *model.Design, view mathutil.Mat3, size, supersample int) *image.NRGBA {
	renderSize := size * supersample
	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	n := buf.VertexCount()
	if n == 0 {
		return img
	}

	// Transform vertices and find extents in one pass.
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	minV := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxV := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < n; i++ {
		v := view.MulVec3(mathutil.Vec3{
			float64(buf.Vertices[i*3]),
			float64(buf.Vertices[i*3+1]),
			float64(buf.Vertices[i*3+2]),
		})
		px[i], py[i], pz[i] = v[0], v[1], v[2]
		for k := 0; k < 3; k++ {
			minV[k] = math.Min(minV[k], v[k])
			maxV[k] = math.Max(maxV[k], v[k])
		}
	}

	center := mathutil.Vec3{
		(minV[0] + maxV[0]) / 2,
		(minV[1] + maxV[1]) / 2,
		(minV[2] + maxV[2]) / 2,
	}
	span := math.Max(maxV[0]-minV[0], maxV[1]-minV[1])
	if span < 0.001 {
		span = 0.001
	}

	margin := fitMargin(renderSize, supersample)
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2
	for i := 0; i < n; i++ {
		px[i] = (px[i]-center[0])*scale + half
		py[i] = -(py[i]-center[1])*scale + half
	}

	// Background fill
	bg := design.Scene.View.Background
	br, bgc, bb := unpackRGB(bg)
	fb := NewFrameBuffer(renderSize, renderSize)
	for i := 0; i < renderSize*renderSize; i++ {
		fb.Color[i*4] = br
		fb.Color[i*4+1] = bgc
		fb.Color[i*4+2] = bb
		fb.Color[i*4+3] = 255
	}

	cr, cg, cb := boardColor(&design.Board)
	lc := NewLightConfig(design.Scene.Lighting)

	for t := 0; t+2 < len(buf.Indices); t += 3 {
		vi := [3]int{int(buf.Indices[t]), int(buf.Indices[t+1]), int(buf.Indices[t+2])}
		RasterizeTriangle(fb, px, py, pz, vi, cr, cg, cb, &lc)
	}

	copy(img.Pix, fb.Color)
	return img
}

// fitMargin returns the border left around the projected mesh. Small
// render sizes clamp it to a quarter of the frame so the orthographic
// scale stays positive.
func fitMargin(renderSize, supersample int) int {
	margin := 16 * supersample
	if max := renderSize / 4; margin > max {
		margin = max
	}
	return margin
}

// boardColor picks the render tint from the outline's first control
// point color when the exporter set one.
func boardColor(b *model.Board) (uint8, uint8, uint8) {
	c := defaultBoardColor
	if pts := b.Outline.Control.Points; len(pts) > 0 && pts[0].Color != 0 {
		c = pts[0].Color
	}
	return unpackRGB(c)
}

func unpackRGB(c int) (uint8, uint8, uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
