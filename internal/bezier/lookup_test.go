package bezier

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jfpardy/s3dx-viewer/internal/model"
)

func TestInterpolateClamps(t *testing.T) {
	pts := []model.Point3D{
		{X: 0, Y: 1, Z: -2},
		{X: 10, Y: 5, Z: 0},
		{X: 20, Y: 3, Z: 4},
	}
	if got := InterpolateY(pts, -5); got != 1 {
		t.Errorf("below range: got %g, want first sample's Y", got)
	}
	if got := InterpolateY(pts, 25); got != 3 {
		t.Errorf("above range: got %g, want last sample's Y", got)
	}
	if got := InterpolateY(pts, 5); got != 3 {
		t.Errorf("midpoint: got %g, want 3", got)
	}
	if got := InterpolateZ(pts, 15); got != 2 {
		t.Errorf("Z midpoint: got %g, want 2", got)
	}
}

func TestInterpolateEmpty(t *testing.T) {
	if got := InterpolateY(nil, 3); got != 0 {
		t.Errorf("empty polyline: got %g, want 0", got)
	}
}

func TestMirrorProfile(t *testing.T) {
	half := []model.Point3D{
		{X: 40, Y: 0, Z: 0},
		{X: 40, Y: 9, Z: 1},
		{X: 40, Y: 10, Z: 5},
		{X: 40, Y: 9, Z: 9},
		{X: 40, Y: 0, Z: 10},
	}
	full := MirrorProfile(half)

	// Leading centerline point is not duplicated: 5 + (5-1).
	if len(full) != 9 {
		t.Fatalf("got %d points, want 9", len(full))
	}
	want := []model.Point3D{
		{X: 40, Y: 0, Z: 0},
		{X: 40, Y: 9, Z: 1},
		{X: 40, Y: 10, Z: 5},
		{X: 40, Y: 9, Z: 9},
		{X: 40, Y: 0, Z: 10},
		{X: 40, Y: 0, Z: 10},
		{X: 40, Y: -9, Z: 9},
		{X: 40, Y: -10, Z: 5},
		{X: 40, Y: -9, Z: 1},
	}
	if diff := cmp.Diff(want, full); diff != "" {
		t.Errorf("mirrored profile mismatch (-want +got):\n%s", diff)
	}
}

func TestMirrorProfileIdempotent(t *testing.T) {
	half := []model.Point3D{
		{Y: 0, Z: 0},
		{Y: 4, Z: 2},
		{Y: 0, Z: 4},
	}
	once := MirrorProfile(half)
	twice := MirrorProfile(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second mirror was not a no-op (-once +twice):\n%s", diff)
	}
}

func TestMirrorProfileEmpty(t *testing.T) {
	if got := MirrorProfile(nil); len(got) != 0 {
		t.Errorf("empty input: got %d points", len(got))
	}
}
