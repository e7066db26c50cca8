// Package model holds the geometric data structures produced by the
// s3dx decoder. Everything here is plain data: the decoder fills it in
// one pass and every downstream consumer treats it as read-only.
package model

// Point3D is a control or sample point. U carries the curve parameter
// (or texture) coordinate; Color is packed 0xRRGGBB.
type Point3D struct {
	X     float64
	Y     float64
	Z     float64
	U     float64
	Color int
}

// ControlPolygon is one polyline role within a Bezier record: either
// the control points themselves or one of the three tangent sets.
type ControlPolygon struct {
	PointCount     int
	Open           bool
	Symmetry       int
	SymmetryCenter Point3D
	Plane          int
	Points         []Point3D
}

// BezierCurve is one curve record. TangentOut/TangentIn drive
// per-segment cubic evaluation when both cover the control points;
// otherwise evaluation falls back on the control-point count.
type BezierCurve struct {
	Name        string
	Degree      int
	Open        bool
	Symmetry    int
	Plane       int
	Control     ControlPolygon
	TangentOut  ControlPolygon
	TangentIn   ControlPolygon
	TangentMix  ControlPolygon
	ControlTags []int
	TangentTags []int
}

// Position returns the longitudinal coordinate of the curve's first
// control point, which is how a cross-section is located along the
// board. Returns 0 for a curve with no control points.
func (c *BezierCurve) Position() float64 {
	if len(c.Control.Points) == 0 {
		return 0
	}
	return c.Control.Points[0].X
}

// CrossSection is a transverse half-profile slice ("couple" in the
// source format) at a fixed longitudinal position.
type CrossSection struct {
	Upper     int
	Lower     int
	Displayed int
	Bezier    BezierCurve
}

// Board is the decoded shape: identity metadata, overall dimensions,
// the three principal curves, and the cross-section slices in file
// declaration order (NOT sorted by position).
type Board struct {
	Name         string
	Author       string
	Category     string
	Construction string
	Comment      string
	RiderName    string
	RiderWeight  float64

	Length      float64
	Width       float64
	Thickness   float64
	NoseRocker  float64
	TailRocker  float64
	Volume      float64 // liters; stored x100 in the file
	SurfaceProj float64 // stored x100 in the file

	Outline      BezierCurve
	BottomRocker BezierCurve
	DeckRocker   BezierCurve
	HasDeck      bool

	CrossSections []CrossSection
}

// Design is the root aggregate for one decoded document.
type Design struct {
	Board Board
	Scene Scene
}
