// Package bezier evaluates the curve records of a decoded design into
// sampled polylines and provides the lookup helpers the mesh builder
// runs on those samples.
package bezier

import (
	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// Sample evaluates curve into exactly n points, or none when the curve
// has fewer than 2 control points. Evaluation picks the first matching
// case:
//
//  1. per-segment cubics when both tangent sets cover the control
//     points (segment i uses control[i], tangentOut[i], tangentIn[i+1],
//     control[i+1])
//  2. one quadratic for exactly 3 control points without tangents
//  3. one linear segment for exactly 2 control points
//  4. a chorded polyline for >3 control points without tangents
//
// X, Y, Z and U are blended polynomially; Color always inherits the
// segment's first endpoint.
func Sample(curve *model.BezierCurve, n int) []model.Point3D {
	ctrl := curve.Control.Points
	count := len(ctrl)
	if count < 2 || n <= 0 {
		return nil
	}

	tout := curve.TangentOut.Points
	tin := curve.TangentIn.Points
	hasTangents := len(tout) >= count && len(tin) >= count

	switch {
	case hasTangents:
		return sampleSegments(n, count-1, func(seg int, t float64) model.Point3D {
			return cubicPoint(ctrl[seg], tout[seg], tin[seg+1], ctrl[seg+1], t)
		})
	case count == 3:
		out := make([]model.Point3D, 0, n)
		for i := 0; i < n; i++ {
			t := paramAt(i, n)
			out = append(out, quadraticPoint(ctrl[0], ctrl[1], ctrl[2], t))
		}
		return out
	case count == 2:
		out := make([]model.Point3D, 0, n)
		for i := 0; i < n; i++ {
			t := paramAt(i, n)
			out = append(out, linearPoint(ctrl[0], ctrl[1], t))
		}
		return out
	default:
		return sampleSegments(n, count-1, func(seg int, t float64) model.Point3D {
			return linearPoint(ctrl[seg], ctrl[seg+1], t)
		})
	}
}

// sampleSegments distributes n samples over k segments: floor(n/k)
// each, the last segment absorbing the remainder so the total is
// exactly n.
func sampleSegments(n, k int, eval func(seg int, t float64) model.Point3D) []model.Point3D {
	out := make([]model.Point3D, 0, n)
	per := n / k
	for seg := 0; seg < k; seg++ {
		m := per
		if seg == k-1 {
			m = n - per*(k-1)
		}
		for i := 0; i < m; i++ {
			out = append(out, eval(seg, paramAt(i, m)))
		}
	}
	return out
}

// paramAt steps t from 0 to 1 inclusive over m samples; a single
// sample lands at t=0.
func paramAt(i, m int) float64 {
	if m <= 1 {
		return 0
	}
	return float64(i) / float64(m-1)
}

func cubicPoint(p0, p1, p2, p3 model.Point3D, t float64) model.Point3D {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return model.Point3D{
		X:     a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y:     a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		Z:     a*p0.Z + b*p1.Z + c*p2.Z + d*p3.Z,
		U:     a*p0.U + b*p1.U + c*p2.U + d*p3.U,
		Color: p0.Color,
	}
}

func quadraticPoint(p0, p1, p2 model.Point3D, t float64) model.Point3D {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return model.Point3D{
		X:     a*p0.X + b*p1.X + c*p2.X,
		Y:     a*p0.Y + b*p1.Y + c*p2.Y,
		Z:     a*p0.Z + b*p1.Z + c*p2.Z,
		U:     a*p0.U + b*p1.U + c*p2.U,
		Color: p0.Color,
	}
}

func linearPoint(p0, p1 model.Point3D, t float64) model.Point3D {
	mt := 1 - t
	return model.Point3D{
		X:     mt*p0.X + t*p1.X,
		Y:     mt*p0.Y + t*p1.Y,
		Z:     mt*p0.Z + t*p1.Z,
		U:     mt*p0.U + t*p1.U,
		Color: p0.Color,
	}
}
