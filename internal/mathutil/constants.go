package mathutil

// View matrices for the snapshot renderer. The mesh builder emits
// render space with X along the board's length and Y up, so the side
// view is the identity and the other presets are single rotations
// away from it.
var (
	// SideView looks along the width axis: length right, rocker up.
	SideView = Mat3Identity()

	// TopView looks down onto the deck: Rx(-90°).
	TopView = RotX(Deg2Rad(-90))

	// PerspView is the default three-quarter presentation view:
	// Rx(-20°) @ Ry(35°).
	PerspView = Mat3Mul(RotX(Deg2Rad(-20)), RotY(Deg2Rad(35)))
)

// ViewForMode maps a scene view mode to its preset matrix.
// 0 = perspective, 1 = top, 2 = side; anything else falls back to
// perspective.
func ViewForMode(mode int) Mat3 {
	switch mode {
	case 1:
		return TopView
	case 2:
		return SideView
	default:
		return PerspView
	}
}
