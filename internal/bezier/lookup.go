package bezier

import (
	"math"

	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// centerEps is the threshold under which a leading profile point is
// treated as sitting on the centerline and skipped when mirroring.
const centerEps = 1e-6

// InterpolateY returns the linearly interpolated Y value of a sampled
// polyline at longitudinal coordinate x. The polyline is assumed
// monotonic in X; queries outside the sampled range clamp to the
// first/last sample. An empty polyline yields 0.
func InterpolateY(pts []model.Point3D, x float64) float64 {
	return interpolate(pts, x, func(p model.Point3D) float64 { return p.Y })
}

// InterpolateZ is InterpolateY for the Z component (rocker height).
func InterpolateZ(pts []model.Point3D, x float64) float64 {
	return interpolate(pts, x, func(p model.Point3D) float64 { return p.Z })
}

func interpolate(pts []model.Point3D, x float64, dep func(model.Point3D) float64) float64 {
	if len(pts) == 0 {
		return 0
	}
	if x <= pts[0].X {
		return dep(pts[0])
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return dep(last)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].X < x {
			continue
		}
		a, b := pts[i-1], pts[i]
		span := b.X - a.X
		if span == 0 {
			return dep(a)
		}
		f := (x - a.X) / span
		return dep(a) + f*(dep(b)-dep(a))
	}
	return dep(last)
}

// MirrorProfile closes a half cross-section profile into a full loop
// by appending a Y-negated copy of its points in reverse order. A
// leading point already on the centerline is not duplicated. If any
// input point has negative Y the profile is treated as already full
// and returned unchanged, which makes the operation idempotent.
func MirrorProfile(half []model.Point3D) []model.Point3D {
	for _, p := range half {
		if p.Y < 0 {
			return half
		}
	}
	if len(half) == 0 {
		return half
	}

	start := 0
	if math.Abs(half[0].Y) < centerEps {
		start = 1
	}

	full := make([]model.Point3D, len(half), 2*len(half))
	copy(full, half)
	for i := len(half) - 1; i >= start; i-- {
		p := half[i]
		p.Y = -p.Y
		full = append(full, p)
	}
	return full
}
