package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// testDesign builds a small but complete board: quadratic outline,
// linear bottom rocker, no deck curve, and two cross-sections
// declared tail-first to exercise the unsorted bracketing path.
func testDesign() *model.Design {
	outline := model.BezierCurve{
		Control: model.ControlPolygon{Points: []model.Point3D{
			{X: 0, Y: 0},
			{X: 91.5, Y: 52}, // quadratic peak = 26, the half-width
			{X: 183, Y: 0},
		}},
	}
	bottom := model.BezierCurve{
		Control: model.ControlPolygon{Points: []model.Point3D{
			{X: 0, Z: 4},
			{X: 183, Z: 10},
		}},
	}
	profile := func(x, halfWidth float64) model.BezierCurve {
		return model.BezierCurve{
			Control: model.ControlPolygon{Points: []model.Point3D{
				{X: x, Y: 0, Z: 0},
				{X: x, Y: halfWidth * 0.9, Z: 1},
				{X: x, Y: halfWidth, Z: 3},
				{X: x, Y: halfWidth * 0.9, Z: 5},
				{X: x, Y: 0, Z: 6},
			}},
		}
	}
	return &model.Design{
		Board: model.Board{
			Name:         "test",
			Length:       183,
			Width:        52,
			Thickness:    6,
			Outline:      outline,
			BottomRocker: bottom,
			CrossSections: []model.CrossSection{
				{Bezier: profile(140, 20)},
				{Bezier: profile(40, 24)},
			},
		},
		Scene: model.DefaultScene(),
	}
}

func TestBuildNoCrossSections(t *testing.T) {
	design := testDesign()
	design.Board.CrossSections = nil
	_, err := Build(design)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}
}

func TestBuildBufferShapes(t *testing.T) {
	opts := Options{LengthSteps: 24, GirthSteps: 12}
	buf, err := BuildWithOptions(testDesign(), opts)
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}

	rows, cols := opts.LengthSteps+1, opts.GirthSteps+1
	if got, want := buf.VertexCount(), rows*cols; got != want {
		t.Errorf("vertex count %d, want %d", got, want)
	}
	if got, want := len(buf.UV), rows*cols*2; got != want {
		t.Errorf("uv length %d, want %d", got, want)
	}
	if got, want := len(buf.Normals), rows*cols*3; got != want {
		t.Errorf("normals length %d, want %d", got, want)
	}
	// One wrap quad per row on top of the regular grid.
	if got, want := buf.TriangleCount(), opts.LengthSteps*(opts.GirthSteps+1)*2; got != want {
		t.Errorf("triangle count %d, want %d", got, want)
	}

	for i, idx := range buf.Indices {
		if int(idx) >= buf.VertexCount() {
			t.Fatalf("index %d out of range at %d", idx, i)
		}
	}
	for _, n := range buf.Normals {
		if n != 0 {
			t.Fatal("Build must leave normals zeroed")
		}
	}
}

func TestBuildRowMajorIndexing(t *testing.T) {
	opts := Options{LengthSteps: 4, GirthSteps: 3}
	buf, err := BuildWithOptions(testDesign(), opts)
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}
	cols := uint32(opts.GirthSteps + 1)
	// First quad: (0,0)-(1,0)-(0,1) and (0,1)-(1,0)-(1,1).
	want := []uint32{0, cols, 1, 1, cols, cols + 1}
	for i, w := range want {
		if buf.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, buf.Indices[i], w)
		}
	}

	// Last quad of the first row wraps the final column back to 0.
	last := cols - 1
	wrap := []uint32{last, cols + last, 0, 0, cols + last, cols}
	off := int(last) * 6
	for i, w := range wrap {
		if buf.Indices[off+i] != w {
			t.Errorf("wrap index %d = %d, want %d", i, buf.Indices[off+i], w)
		}
	}
}

func TestBuildClosesToPoints(t *testing.T) {
	opts := Options{LengthSteps: 30, GirthSteps: 8}
	buf, err := BuildWithOptions(testDesign(), opts)
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}
	cols := opts.GirthSteps + 1

	// The first and last rows sit beyond the outline (closure
	// margin), so every vertex in each collapses to one point.
	checkRow := func(row int) {
		base := row * cols * 3
		x0, y0, z0 := buf.Vertices[base], buf.Vertices[base+1], buf.Vertices[base+2]
		for j := 1; j < cols; j++ {
			o := base + j*3
			if buf.Vertices[o] != x0 || buf.Vertices[o+1] != y0 || buf.Vertices[o+2] != z0 {
				t.Errorf("row %d vertex %d not collapsed", row, j)
				return
			}
		}
	}
	checkRow(0)
	checkRow(opts.LengthSteps)
}

func TestBuildWatertight(t *testing.T) {
	buf, err := BuildWithOptions(testDesign(), Options{LengthSteps: 12, GirthSteps: 8})
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}

	// Merge positionally identical vertices so collapsed rows and the
	// circumferential wrap share one id, then count edges used by
	// exactly one triangle. A closed surface has none.
	type pos [3]float32
	ids := make(map[pos]int)
	remap := make([]int, buf.VertexCount())
	for i := 0; i < buf.VertexCount(); i++ {
		p := pos{buf.Vertices[i*3], buf.Vertices[i*3+1], buf.Vertices[i*3+2]}
		id, ok := ids[p]
		if !ok {
			id = len(ids)
			ids[p] = id
		}
		remap[i] = id
	}

	edges := make(map[[2]int]int)
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edges[[2]int{a, b}]++
	}
	for i := 0; i+2 < len(buf.Indices); i += 3 {
		a := remap[buf.Indices[i]]
		b := remap[buf.Indices[i+1]]
		c := remap[buf.Indices[i+2]]
		if a == b || b == c || c == a {
			continue // degenerate quads at collapsed rows
		}
		add(a, b)
		add(b, c)
		add(c, a)
	}

	open := 0
	for _, uses := range edges {
		if uses == 1 {
			open++
		}
	}
	if open != 0 {
		t.Errorf("surface has %d boundary edges, want 0", open)
	}
}

func TestBuildRenderUnitsAndAxisSwap(t *testing.T) {
	buf, err := BuildWithOptions(testDesign(), Options{LengthSteps: 40, GirthSteps: 16})
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}

	// The source board is 183 units long; render X spans roughly
	// 1.83 plus the closure margin on both ends.
	minX, maxX := float64(buf.Vertices[0]), float64(buf.Vertices[0])
	maxAbsZ := 0.0
	for i := 0; i < buf.VertexCount(); i++ {
		x := float64(buf.Vertices[i*3])
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		maxAbsZ = math.Max(maxAbsZ, math.Abs(float64(buf.Vertices[i*3+2])))
	}
	span := maxX - minX
	if span < 1.8 || span > 1.9 {
		t.Errorf("render length span %g, want about 1.84", span)
	}
	// Width lands on the render Z axis after the Y/Z swap; the board
	// half-width peaks at 26 source units = 0.26 render units.
	if maxAbsZ < 0.2 || maxAbsZ > 0.27 {
		t.Errorf("render half-width %g, want about 0.26", maxAbsZ)
	}
}

func TestDensify(t *testing.T) {
	if densify(0) != 0 || densify(1) != 1 {
		t.Errorf("endpoints moved: %g, %g", densify(0), densify(1))
	}
	if got := densify(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("midpoint %g, want 0.5", got)
	}
	prev := densify(0.0)
	for i := 1; i <= 100; i++ {
		cur := densify(float64(i) / 100)
		if cur < prev {
			t.Fatalf("not monotonic at %d: %g < %g", i, cur, prev)
		}
		prev = cur
	}
	// End densification: the first step must be smaller than a
	// uniform step.
	if densify(0.02) >= 0.02 {
		t.Errorf("no densification near the nose: %g", densify(0.02))
	}
}

func TestOutlineWidthBeyondRange(t *testing.T) {
	outline := []model.Point3D{
		{X: 0, Y: 0},
		{X: 10, Y: 5},
		{X: 20, Y: 0},
	}
	if got := outlineWidthAt(outline, -1); got != 0 {
		t.Errorf("before range: got %g, want 0", got)
	}
	if got := outlineWidthAt(outline, 21); got != 0 {
		t.Errorf("past range: got %g, want 0", got)
	}
	if got := outlineWidthAt(outline, 10); got != 5 {
		t.Errorf("exact sample: got %g, want 5", got)
	}
	if got := outlineWidthAt(outline, 5); got != 2.5 {
		t.Errorf("interpolated: got %g, want 2.5", got)
	}
}

func TestBracketUnsortedAndTies(t *testing.T) {
	mk := func(x float64) model.CrossSection {
		return model.CrossSection{Bezier: model.BezierCurve{
			Control: model.ControlPolygon{Points: []model.Point3D{{X: x, Y: 0, Z: 0}, {X: x, Y: 1, Z: 1}}},
		}}
	}
	// Declared out of order with a duplicate position.
	cs := newCoupleSet([]model.CrossSection{mk(120), mk(40), mk(40)})

	prev, next, f := cs.bracket(80)
	if cs.pos[prev] != 40 || cs.pos[next] != 120 {
		t.Errorf("bracket(80): prev=%g next=%g", cs.pos[prev], cs.pos[next])
	}
	if math.Abs(f-0.5) > 1e-12 {
		t.Errorf("bracket(80): f=%g, want 0.5", f)
	}

	// Before every couple: the first sorted couple serves both sides.
	prev, next, f = cs.bracket(10)
	if prev != 0 || next != 0 || f != 0 {
		t.Errorf("bracket(10): %d %d %g", prev, next, f)
	}

	// After every couple: the last couple is reused as "next".
	prev, next, _ = cs.bracket(500)
	if cs.pos[prev] != 120 || next != prev {
		t.Errorf("bracket(500): prev=%g next=%d", cs.pos[prev], next)
	}

	// Tied positions keep declaration order after the stable sort.
	if cs.pos[0] != 40 || cs.pos[1] != 40 || cs.pos[2] != 120 {
		t.Errorf("sorted positions: %v", cs.pos)
	}
}

func TestComputeNormalsUnitLength(t *testing.T) {
	buf, err := BuildWithOptions(testDesign(), Options{LengthSteps: 20, GirthSteps: 10})
	if err != nil {
		t.Fatalf("BuildWithOptions: %v", err)
	}
	ComputeNormals(buf)
	for i := 0; i+2 < len(buf.Normals); i += 3 {
		l := math.Sqrt(float64(buf.Normals[i]*buf.Normals[i] +
			buf.Normals[i+1]*buf.Normals[i+1] +
			buf.Normals[i+2]*buf.Normals[i+2]))
		if math.Abs(l-1) > 1e-3 {
			t.Fatalf("normal %d has length %g", i/3, l)
		}
	}
}

func TestNormalizeProfileBounds(t *testing.T) {
	src := []model.Point3D{
		{Y: 0, Z: 0},
		{Y: 10, Z: 3},
		{Y: 0, Z: 6},
		{Y: -10, Z: 3},
	}
	p := normalizeProfile(src, 13, 4)
	minY, maxY := p.y[0], p.y[0]
	minZ, maxZ := p.z[0], p.z[0]
	for i := range p.y {
		minY = math.Min(minY, p.y[i])
		maxY = math.Max(maxY, p.y[i])
		minZ = math.Min(minZ, p.z[i])
		maxZ = math.Max(maxZ, p.z[i])
	}
	if math.Abs(minY+13) > 1e-9 || math.Abs(maxY-13) > 1e-9 {
		t.Errorf("width bounds [%g, %g], want [-13, 13]", minY, maxY)
	}
	if math.Abs(minZ+2) > 1e-9 || math.Abs(maxZ-2) > 1e-9 {
		t.Errorf("thickness bounds [%g, %g], want [-2, 2]", minZ, maxZ)
	}
}
