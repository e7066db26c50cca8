package mesh_test

import (
	"errors"
	"testing"

	"github.com/jfpardy/s3dx-viewer/internal/mesh"
	"github.com/jfpardy/s3dx-viewer/internal/s3dx"
)

const boardDoc = `<Shape3d>
 <Board>
  <Name>Mini Simmons</Name>
  <Length>160</Length>
  <Width>54</Width>
  <Thickness>6.5</Thickness>
  <Outline>
   <Control_polygon>
    <Point_0><X>0</X><Y>0</Y></Point_0>
    <Point_1><X>80</X><Y>54</Y></Point_1>
    <Point_2><X>160</X><Y>0</Y></Point_2>
   </Control_polygon>
  </Outline>
  <Str_bot>
   <Control_polygon>
    <Point_0><X>0</X><Z>3.5</Z></Point_0>
    <Point_1><X>160</X><Z>8</Z></Point_1>
   </Control_polygon>
  </Str_bot>
  <Couple_0>
   <Bezier>
    <Control_polygon>
     <Point_0><X>80</X><Y>0</Y><Z>0</Z></Point_0>
     <Point_1><X>80</X><Y>25</Y><Z>1</Z></Point_1>
     <Point_2><X>80</X><Y>27</Y><Z>3</Z></Point_2>
     <Point_3><X>80</X><Y>25</Y><Z>5.5</Z></Point_3>
     <Point_4><X>80</X><Y>0</Y><Z>6.5</Z></Point_4>
    </Control_polygon>
   </Bezier>
  </Couple_0>
 </Board>
</Shape3d>`

func TestDecodeThenBuild(t *testing.T) {
	design, err := s3dx.Decode([]byte(boardDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	buf, err := mesh.Build(design)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if buf.VertexCount() == 0 || buf.TriangleCount() == 0 {
		t.Fatalf("empty mesh: %d vertices, %d triangles", buf.VertexCount(), buf.TriangleCount())
	}
	mesh.ComputeNormals(buf)
	if len(buf.Normals) != len(buf.Vertices) {
		t.Errorf("normals length %d, vertices %d", len(buf.Normals), len(buf.Vertices))
	}
}

func TestBuildNeedsCrossSections(t *testing.T) {
	doc := `<Shape3d><Board><Name>empty</Name></Board></Shape3d>`
	design, err := s3dx.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	_, err = mesh.Build(design)
	if !errors.Is(err, mesh.ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}
}
