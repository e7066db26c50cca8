// Package mesh synthesizes a closed triangulated surface from a
// decoded design by blending cross-section profiles along the board's
// length (S-Linear interpolation). The output is a fresh set of
// position/index/UV buffers in render units; the caller owns them.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jfpardy/s3dx-viewer/internal/bezier"
	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// ErrInsufficientData reports a board without cross-sections, which
// the S-Linear path cannot surface.
var ErrInsufficientData = errors.New("board has no cross sections")

const (
	// outlineSamples is the density used to find the board's true
	// longitudinal extent and to answer width queries.
	outlineSamples = 300

	// closureMargin extends the sampled extent at both ends (source
	// units) so the surface tapers to a point instead of leaving an
	// open edge.
	closureMargin = 0.5

	// widthEps is the half-width below which a row collapses to a
	// single centerline point.
	widthEps = 1e-4

	// matchTol is the exact-match tolerance for outline width lookups.
	matchTol = 1e-6

	// profileSamples is the per-half sample count of a cross-section
	// before mirroring.
	profileSamples = 64

	// unitScale converts source length units to render units.
	unitScale = 100.0

	defaultLengthSteps = 160
	defaultGirthSteps  = 48
)

// Options overrides the grid resolution. Zero fields keep defaults.
type Options struct {
	LengthSteps int // U: longitudinal quad count
	GirthSteps  int // V: circumferential quad count
}

// Buffers is the synthesized mesh. Vertices/Normals/UV are interleaved
// float32 (xyz, xyz, uv); Indices is a triangle list. Normals are all
// zero until ComputeNormals runs.
type Buffers struct {
	Vertices []float32
	Normals  []float32
	UV       []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in the buffers.
func (b *Buffers) VertexCount() int { return len(b.Vertices) / 3 }

// TriangleCount returns the number of triangles in the index buffer.
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }

// Build synthesizes the surface with default resolution.
func Build(design *model.Design) (*Buffers, error) {
	return BuildWithOptions(design, Options{})
}

// BuildWithOptions synthesizes the surface. It fails only when the
// board declares no cross-sections; every other irregularity (missing
// deck curve, unsorted couples, queries past the outline) resolves to
// a documented fallback.
func BuildWithOptions(design *model.Design, opts Options) (*Buffers, error) {
	board := &design.Board
	if len(board.CrossSections) == 0 {
		return nil, fmt.Errorf("mesh: %q: %w", board.Name, ErrInsufficientData)
	}

	uSteps := opts.LengthSteps
	if uSteps <= 0 {
		uSteps = defaultLengthSteps
	}
	vSteps := opts.GirthSteps
	if vSteps <= 0 {
		vSteps = defaultGirthSteps
	}

	outline := bezier.Sample(&board.Outline, outlineSamples)
	bottom := bezier.Sample(&board.BottomRocker, outlineSamples)
	var deck []model.Point3D
	if board.HasDeck {
		deck = bezier.Sample(&board.DeckRocker, outlineSamples)
	}

	start, end := longitudinalExtent(outline, board.Length)
	start -= closureMargin
	end += closureMargin

	couples := newCoupleSet(board.CrossSections)

	rows := uSteps + 1
	cols := vSteps + 1
	buf := &Buffers{
		Vertices: make([]float32, 0, rows*cols*3),
		Normals:  make([]float32, rows*cols*3),
		UV:       make([]float32, 0, rows*cols*2),
		Indices:  make([]uint32, 0, uSteps*cols*6),
	}

	for i := 0; i < rows; i++ {
		s := float64(i) / float64(uSteps)
		x := start + densify(s)*(end-start)

		halfWidth := outlineWidthAt(outline, x)
		bottomZ := bezier.InterpolateZ(bottom, x)
		deckZ := bottomZ + board.Thickness
		if len(deck) > 0 {
			deckZ = bezier.InterpolateZ(deck, x)
		}
		thickness := deckZ - bottomZ
		centerZ := bottomZ + thickness/2

		rowU := float32(s)
		if halfWidth < widthEps {
			// Collapse the whole row to one centerline point. Every
			// circumferential index shares it, so the nose and tail
			// close to a clean point instead of a sliver fan.
			emitRow(buf, cols, rowU, func(j int) (float64, float64, float64) {
				return x, 0, centerZ
			})
			continue
		}

		profile := couples.blendedProfile(x, halfWidth, thickness)
		emitRow(buf, cols, rowU, func(j int) (float64, float64, float64) {
			// Half-open loop fraction: column cols-1 stops short of 1
			// so the wrap quad below closes the loop without a
			// doubled seam vertex.
			a := float64(j) / float64(cols)
			y, z := profile.at(a)
			return x, y, z + centerZ
		})
	}

	// Each row of quads includes a wrap quad joining the last column
	// back to column 0, so the loop is watertight circumferentially.
	for i := 0; i < uSteps; i++ {
		for j := 0; j < cols; j++ {
			jn := (j + 1) % cols
			a := uint32(i*cols + j)
			an := uint32(i*cols + jn)
			b := uint32((i+1)*cols + j)
			bn := uint32((i+1)*cols + jn)
			buf.Indices = append(buf.Indices, a, b, an, an, b, bn)
		}
	}

	return buf, nil
}

// emitRow appends one circumferential row of vertices, converting
// from source units to render units and swapping Z and Y so the
// board's flat plane faces the render up axis.
func emitRow(buf *Buffers, cols int, rowU float32, at func(j int) (x, y, z float64)) {
	for j := 0; j < cols; j++ {
		x, y, z := at(j)
		buf.Vertices = append(buf.Vertices,
			float32(x/unitScale),
			float32(z/unitScale),
			float32(y/unitScale),
		)
		buf.UV = append(buf.UV, rowU, float32(j)/float32(cols))
	}
}

// densify remaps a uniform parameter through mirrored smoothstep
// halves, concentrating longitudinal samples near nose and tail where
// curvature is highest, without changing the step count.
func densify(s float64) float64 {
	if s <= 0.5 {
		return 0.5 * smoothstep(2*s)
	}
	return 1 - 0.5*smoothstep(2*(1-s))
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// longitudinalExtent scans the sampled outline for the true length
// range. An empty outline falls back to [0, length].
func longitudinalExtent(outline []model.Point3D, length float64) (float64, float64) {
	if len(outline) == 0 {
		return 0, length
	}
	lo, hi := outline[0].X, outline[0].X
	for _, p := range outline[1:] {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	return lo, hi
}

// outlineWidthAt returns the half-width of the outline at x: an
// exact-tolerance sample match first, else linear interpolation
// between the two bracketing samples. Beyond the sampled range it
// returns 0, which is what drives the taper closure at the tips.
func outlineWidthAt(outline []model.Point3D, x float64) float64 {
	for i := range outline {
		if math.Abs(outline[i].X-x) < matchTol {
			return math.Abs(outline[i].Y)
		}
	}
	for i := 1; i < len(outline); i++ {
		a, b := outline[i-1], outline[i]
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		if x < lo || x > hi {
			continue
		}
		span := b.X - a.X
		if span == 0 {
			return math.Abs(a.Y)
		}
		f := (x - a.X) / span
		return math.Abs(a.Y + f*(b.Y-a.Y))
	}
	return 0
}

// coupleSet holds the declared cross-sections sorted by longitudinal
// position (stable, so document order breaks position ties) together
// with their mirrored full profiles, sampled once.
type coupleSet struct {
	pos      []float64
	profiles [][]model.Point3D
}

func newCoupleSet(sections []model.CrossSection) *coupleSet {
	idx := make([]int, len(sections))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return sections[idx[a]].Bezier.Position() < sections[idx[b]].Bezier.Position()
	})

	cs := &coupleSet{
		pos:      make([]float64, len(sections)),
		profiles: make([][]model.Point3D, len(sections)),
	}
	for i, k := range idx {
		sec := &sections[k]
		cs.pos[i] = sec.Bezier.Position()
		cs.profiles[i] = bezier.MirrorProfile(bezier.Sample(&sec.Bezier, profileSamples))
	}
	return cs
}

// bracket finds the couples surrounding x. When x precedes every
// couple the first one serves as both sides; when it follows every
// couple the last one serves as "next", leaving f at its boundary
// value. Ties between equal positions resolve to declaration order
// via the stable sort.
func (cs *coupleSet) bracket(x float64) (prev, next int, f float64) {
	prev = -1
	for i, p := range cs.pos {
		if p <= x {
			prev = i
		}
	}
	if prev < 0 {
		return 0, 0, 0
	}
	next = prev + 1
	if next >= len(cs.pos) {
		return prev, prev, 0
	}
	span := cs.pos[next] - cs.pos[prev]
	if span <= 0 {
		return prev, next, 0
	}
	f = (x - cs.pos[prev]) / span
	return prev, next, f
}

// blendedProfile rescales the two bracketing profiles to the local
// target width and thickness and blends them by the fractional
// position between their anchors.
func (cs *coupleSet) blendedProfile(x, halfWidth, thickness float64) *stationProfile {
	prev, next, f := cs.bracket(x)
	a := normalizeProfile(cs.profiles[prev], halfWidth, thickness)
	if next == prev || f == 0 {
		return a
	}
	b := normalizeProfile(cs.profiles[next], halfWidth, thickness)
	return blendProfiles(a, b, f)
}

// stationProfile is a closed profile loop reduced to (y, z) pairs,
// already normalized to local width/thickness and centered on z=0.
type stationProfile struct {
	y []float64
	z []float64
}

// at maps a circumferential fraction in [0,1] to a point on the loop
// by linear index scaling. The profile's natural point ordering
// stands in for angle; no polar lookup happens.
func (p *stationProfile) at(a float64) (float64, float64) {
	n := len(p.y)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return p.y[0], p.z[0]
	}
	fi := a * float64(n-1)
	i := int(fi)
	if i >= n-1 {
		return p.y[n-1], p.z[n-1]
	}
	f := fi - float64(i)
	return p.y[i] + f*(p.y[i+1]-p.y[i]), p.z[i] + f*(p.z[i+1]-p.z[i])
}

// normalizeProfile uniformly stretches and re-centers a source
// profile so its bounds match the target full width and thickness:
// the bottom lands at -thickness/2, the deck at +thickness/2. The
// shape itself is preserved; this is a normalization, not a resample.
func normalizeProfile(src []model.Point3D, halfWidth, thickness float64) *stationProfile {
	p := &stationProfile{
		y: make([]float64, len(src)),
		z: make([]float64, len(src)),
	}
	if len(src) == 0 {
		return p
	}

	minY, maxY := src[0].Y, src[0].Y
	minZ, maxZ := src[0].Z, src[0].Z
	for _, pt := range src[1:] {
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
		minZ = math.Min(minZ, pt.Z)
		maxZ = math.Max(maxZ, pt.Z)
	}

	scaleY := 0.0
	if w := maxY - minY; w > widthEps {
		scaleY = 2 * halfWidth / w
	}
	scaleZ := 0.0
	if t := maxZ - minZ; t > widthEps {
		scaleZ = thickness / t
	}

	midY := (minY + maxY) / 2
	for i, pt := range src {
		p.y[i] = (pt.Y - midY) * scaleY
		p.z[i] = (pt.Z-minZ)*scaleZ - thickness/2
	}
	return p
}

// blendProfiles linearly blends two normalized profiles station by
// station, tolerating different source point counts.
func blendProfiles(a, b *stationProfile, f float64) *stationProfile {
	n := len(a.y)
	if len(b.y) > n {
		n = len(b.y)
	}
	out := &stationProfile{
		y: make([]float64, n),
		z: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		ay, az := a.at(frac)
		by, bz := b.at(frac)
		out.y[i] = ay + f*(by-ay)
		out.z[i] = az + f*(bz-az)
	}
	return out
}
