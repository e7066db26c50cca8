package raster

import (
	"math"

	"github.com/jfpardy/s3dx-viewer/internal/mathutil"
	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// LightConfig holds precomputed lighting parameters for one render.
// Direction, intensity and ambient come from the design's scene
// record; the rim and specular terms are fixed presentation choices.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// NewLightConfig builds the lighting setup from a scene record. A
// zero light direction falls back to the scene defaults so decoded
// documents without lighting still shade.
func NewLightConfig(l model.Lighting) LightConfig {
	dir := mathutil.Vec3{l.X, l.Y, l.Z}
	if dir.Len() < 1e-9 {
		dir = mathutil.Vec3(model.DefaultLightDir)
	}
	lightDir := dir.Normalize()
	rimDir := mathutil.Vec3{0.6, 0.3, 0.75}.Normalize()
	viewDir := mathutil.Vec3{0, 0, -1}

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: lightDir.Sub(viewDir).Normalize(),
		Ambient:  l.Ambient,
		Direct:   l.Intensity * 1.6,
		Rim:      0.35,
		SpecInt:  0.4,
		SpecPow:  16.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit face normal.
func (lc *LightConfig) Shade(n mathutil.Vec3) float64 {
	ndl := math.Abs(n.Dot(lc.LightDir))
	ndr := math.Abs(n.Dot(lc.RimDir))

	ndh := n.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + ndl*lc.Direct + ndr*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
