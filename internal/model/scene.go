package model

// Scene holds the presentation records carried through for the
// renderer. The core never branches on a missing scene: the decoder
// substitutes these defaults field by field.
type Scene struct {
	Camera   Camera
	Lighting Lighting
	View     View
}

// Camera is the viewpoint record. Z is negative: the camera sits in
// front of the board looking down +Z.
type Camera struct {
	X   float64
	Y   float64
	Z   float64
	Fov float64
}

// Lighting is a single directional light plus an ambient term.
type Lighting struct {
	Intensity float64
	Ambient   float64
	X         float64
	Y         float64
	Z         float64
}

// View holds display toggles for the external viewer.
type View struct {
	Mode       int // 0 = perspective, 1 = top, 2 = side
	Wireframe  bool
	Background int // packed 0xRRGGBB
}

// Scene defaults. These literals come from the source format's
// exporter and are load-bearing: documents without a Scene subtree
// must render identically to ones that spell these out.
const (
	DefaultCameraZ        = -361.95
	DefaultCameraFov      = 45.0
	DefaultLightIntensity = 0.8
	DefaultLightAmbient   = 0.35
	DefaultBackground     = 0x1A1A22
)

// DefaultLightDir is the default light direction (normalized at use).
var DefaultLightDir = [3]float64{-0.5, -0.5, -1}

// DefaultScene returns the fully populated scene used when the
// document has no Scene subtree.
func DefaultScene() Scene {
	return Scene{
		Camera: Camera{X: 0, Y: 0, Z: DefaultCameraZ, Fov: DefaultCameraFov},
		Lighting: Lighting{
			Intensity: DefaultLightIntensity,
			Ambient:   DefaultLightAmbient,
			X:         DefaultLightDir[0],
			Y:         DefaultLightDir[1],
			Z:         DefaultLightDir[2],
		},
		View: View{Mode: 0, Wireframe: false, Background: DefaultBackground},
	}
}
