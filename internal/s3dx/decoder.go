// Package s3dx decodes the vendor board-design document format into
// the geometric model. The format is a tag-nested text document whose
// exporters populate it inconsistently, so decoding is permissive:
// only the root container and the board subtree are mandatory, and
// every other missing record or unparsable scalar falls back to a
// documented default instead of raising an error.
package s3dx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jfpardy/s3dx-viewer/internal/model"
)

// ErrFormat reports a document whose mandatory structure (root
// container or board subtree) is absent. Everything else decodes.
var ErrFormat = errors.New("invalid s3dx document")

// Fixed tag names of the format. Case-sensitive.
const (
	tagRoot  = "Shape3d"
	tagBoard = "Board"
	tagScene = "Scene"

	tagOutline   = "Outline"
	tagBottom    = "Str_bot"
	tagDeck      = "Str_deck"
	couplePrefix = "Couple_"

	tagControlPolygon = "Control_polygon"
	tagTangentsOut    = "Tangents_polygon_out"
	tagTangentsIn     = "Tangents_polygon_in"
	tagTangentsMixed  = "Tangents_polygon"

	controlTagPrefix = "Control_type_point_"
	tangentTagPrefix = "Tangent_type_point_"
	pointPrefix      = "Point_"
)

// volumeScale converts the file's centiliter-style x100 encoding of
// volume-like fields into the model's unit.
const volumeScale = 100.0

// Decode parses doc and returns the populated design. It fails only
// when the root container or the board subtree is missing; the error
// wraps ErrFormat.
func Decode(doc []byte) (*model.Design, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(doc); err != nil {
		return nil, fmt.Errorf("s3dx: unreadable document: %w", ErrFormat)
	}

	root := tree.SelectElement(tagRoot)
	if root == nil {
		return nil, fmt.Errorf("s3dx: missing %s root container: %w", tagRoot, ErrFormat)
	}
	boardEl := root.SelectElement(tagBoard)
	if boardEl == nil {
		return nil, fmt.Errorf("s3dx: missing %s subtree: %w", tagBoard, ErrFormat)
	}

	return &model.Design{
		Board: decodeBoard(boardEl),
		Scene: decodeScene(root.SelectElement(tagScene)),
	}, nil
}

func decodeBoard(e *etree.Element) model.Board {
	deckEl := e.SelectElement(tagDeck)

	b := model.Board{
		Name:         childText(e, "Name"),
		Author:       childText(e, "Author"),
		Category:     childText(e, "Category"),
		Construction: childText(e, "Construction"),
		Comment:      childText(e, "Comment"),
		RiderName:    childText(e, "Rider_name"),
		RiderWeight:  childFloat(e, "Rider_weight"),

		Length:      childFloat(e, "Length"),
		Width:       childFloat(e, "Width"),
		Thickness:   childFloat(e, "Thickness"),
		NoseRocker:  childFloat(e, "Nose_rocker"),
		TailRocker:  childFloat(e, "Tail_rocker"),
		Volume:      childFloat(e, "Volume") / volumeScale,
		SurfaceProj: childFloat(e, "Surface_proj") / volumeScale,

		Outline:      decodeCurve(e.SelectElement(tagOutline)),
		BottomRocker: decodeCurve(e.SelectElement(tagBottom)),
		DeckRocker:   decodeCurve(deckEl),
		HasDeck:      deckEl != nil,
	}

	// Couples are collected by tag family in document order. The file
	// does not sort them by position and neither do we.
	for _, child := range e.ChildElements() {
		if strings.HasPrefix(child.Tag, couplePrefix) {
			b.CrossSections = append(b.CrossSections, decodeCouple(child))
		}
	}

	return b
}

func decodeCouple(e *etree.Element) model.CrossSection {
	return model.CrossSection{
		Upper:     childInt(e, "Upper"),
		Lower:     childInt(e, "Lower"),
		Displayed: childInt(e, "Displayed"),
		Bezier:    decodeCurve(e.SelectElement("Bezier")),
	}
}

func decodeCurve(e *etree.Element) model.BezierCurve {
	if e == nil {
		return model.BezierCurve{}
	}
	return model.BezierCurve{
		Name:        childText(e, "Name"),
		Degree:      childInt(e, "Degree"),
		Open:        childInt(e, "Open") != 0,
		Symmetry:    childInt(e, "Symmetry"),
		Plane:       childInt(e, "Plane"),
		Control:     decodePolygon(e.SelectElement(tagControlPolygon)),
		TangentOut:  decodePolygon(e.SelectElement(tagTangentsOut)),
		TangentIn:   decodePolygon(e.SelectElement(tagTangentsIn)),
		TangentMix:  decodePolygon(e.SelectElement(tagTangentsMixed)),
		ControlTags: collectIndexedInts(e, controlTagPrefix),
		TangentTags: collectIndexedInts(e, tangentTagPrefix),
	}
}

func decodePolygon(e *etree.Element) model.ControlPolygon {
	if e == nil {
		return model.ControlPolygon{}
	}
	p := model.ControlPolygon{
		PointCount:     childInt(e, "Number_of_points"),
		Open:           childInt(e, "Open") != 0,
		Symmetry:       childInt(e, "Symmetry"),
		SymmetryCenter: decodePoint(e.SelectElement("Center_of_symmetry"), 0),
		Plane:          childInt(e, "Plane"),
	}
	// Indexed points have no count field; probe ascending from 0
	// until the first missing index.
	for i := 0; ; i++ {
		pe := e.SelectElement(fmt.Sprintf("%s%d", pointPrefix, i))
		if pe == nil {
			break
		}
		p.Points = append(p.Points, decodePoint(pe, -1))
	}
	return p
}

// decodePoint decodes a point record. defaultU applies when the U
// field is absent: -1 inside polygons, 0 for symmetry centers.
func decodePoint(e *etree.Element, defaultU float64) model.Point3D {
	if e == nil {
		return model.Point3D{U: defaultU}
	}
	p := model.Point3D{
		X:     childFloat(e, "X"),
		Y:     childFloat(e, "Y"),
		Z:     childFloat(e, "Z"),
		U:     defaultU,
		Color: childInt(e, "Color"),
	}
	if u := e.SelectElement("U"); u != nil {
		p.U = parseFloat(u.Text())
	}
	return p
}

func decodeScene(e *etree.Element) model.Scene {
	s := model.DefaultScene()
	if e == nil {
		return s
	}
	if cam := e.SelectElement("Camera"); cam != nil {
		s.Camera = model.Camera{
			X:   childFloat(cam, "X"),
			Y:   childFloat(cam, "Y"),
			Z:   childFloat(cam, "Z"),
			Fov: childFloat(cam, "Fov"),
		}
	}
	if li := e.SelectElement("Lighting"); li != nil {
		s.Lighting = model.Lighting{
			Intensity: childFloat(li, "Intensity"),
			Ambient:   childFloat(li, "Ambient"),
			X:         childFloat(li, "X"),
			Y:         childFloat(li, "Y"),
			Z:         childFloat(li, "Z"),
		}
	}
	if v := e.SelectElement("View"); v != nil {
		s.View = model.View{
			Mode:       childInt(v, "Mode"),
			Wireframe:  childInt(v, "Wireframe") != 0,
			Background: childInt(v, "Background"),
		}
	}
	return s
}

func collectIndexedInts(e *etree.Element, prefix string) []int {
	var out []int
	for i := 0; ; i++ {
		c := e.SelectElement(fmt.Sprintf("%s%d", prefix, i))
		if c == nil {
			break
		}
		out = append(out, parseInt(c.Text()))
	}
	return out
}
