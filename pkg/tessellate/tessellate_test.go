package tessellate_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/scene"
	"github.com/minsley/Matth/pkg/sdf"
	"github.com/minsley/Matth/pkg/tessellate"
)

// testCells keeps marching cubes fast in tests.
const testCells = 32

func ballNode(name string, at v3.Vec, r float64) *scene.Node {
	return &scene.Node{Name: name, Kind: scene.NodeSphere, Shape: sdf.NewSphere(at, r)}
}

func checkMeshConsistent(t *testing.T, m *tessellate.Mesh) {
	t.Helper()
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(m.Vertices) != len(m.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(m.Vertices), len(m.Normals))
	}
	if len(m.Indices) != m.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(m.Indices), m.TriangleCount()*3)
	}
	if m.VertexCount() != m.TriangleCount()*3 {
		t.Fatalf("vertex count %d != 3 * triangle count %d", m.VertexCount(), m.TriangleCount())
	}
}

func TestSolidSphere(t *testing.T) {
	m, err := tessellate.Solid(sdf.NewSphere(v3.Vec{}, 5), testCells)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	checkMeshConsistent(t, m)

	// Every vertex lies on the surface to within a grid cell.
	tol := 10.0 / testCells
	for i := 0; i < len(m.Vertices); i += 3 {
		p := v3.Vec{X: float64(m.Vertices[i]), Y: float64(m.Vertices[i+1]), Z: float64(m.Vertices[i+2])}
		if d := math.Abs(p.Length() - 5); d > tol {
			t.Fatalf("vertex %v is %v from the surface", p, d)
		}
	}
}

func TestSolidCapsule(t *testing.T) {
	c := sdf.NewCapsule(v3.Vec{Y: -10}, v3.Vec{Y: 10}, 5)
	m, err := tessellate.Solid(c, testCells)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	checkMeshConsistent(t, m)

	tol := 30.0 / testCells
	for i := 0; i < len(m.Vertices); i += 3 {
		p := v3.Vec{X: float64(m.Vertices[i]), Y: float64(m.Vertices[i+1]), Z: float64(m.Vertices[i+2])}
		if d := math.Abs(c.Distance(p)); d > tol {
			t.Fatalf("vertex %v is %v from the surface", p, d)
		}
	}
}

func TestSolidErrors(t *testing.T) {
	tests := []struct {
		name    string
		shape   *sdf.Group
		cells   int
		wantErr string
	}{
		{"zero cells", sdf.NewGroup(sdf.NewSphere(v3.Vec{}, 1)), 0, "must be positive"},
		{"empty group", sdf.NewGroup(), testCells, "is empty"},
		{"zero radius", sdf.NewGroup(sdf.NewSphere(v3.Vec{}, 0)), testCells, "is empty"},
		{"infinite origin", sdf.NewGroup(sdf.NewSphere(v3.Vec{X: math.Inf(1)}, 1)), testCells, "not finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tessellate.Solid(tt.shape, tt.cells)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSceneOneMeshPerRoot(t *testing.T) {
	sc := scene.New()
	sc.AddNode(ballNode("left", v3.Vec{X: -10}, 3))
	sc.AddNode(ballNode("right", v3.Vec{X: 10}, 3))
	sc.AddNode(ballNode("hidden", v3.Vec{}, 3))
	sc.AddRoot("left")
	sc.AddRoot("right")

	meshes, err := tessellate.Scene(sc, testCells)
	if err != nil {
		t.Fatalf("Scene failed: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}
	if meshes[0].PartName != "left" || meshes[1].PartName != "right" {
		t.Errorf("unexpected part names %q, %q", meshes[0].PartName, meshes[1].PartName)
	}
	for _, m := range meshes {
		checkMeshConsistent(t, m)
	}
	// Left mesh stays on the left.
	for i := 0; i < len(meshes[0].Vertices); i += 3 {
		if meshes[0].Vertices[i] > 0 {
			t.Fatalf("left mesh has vertex with x=%v", meshes[0].Vertices[i])
		}
	}
}

func TestSceneNilAndEmpty(t *testing.T) {
	meshes, err := tessellate.Scene(nil, testCells)
	if err != nil || meshes != nil {
		t.Errorf("Scene(nil) = %v, %v; want nil, nil", meshes, err)
	}

	meshes, err = tessellate.Scene(scene.New(), testCells)
	if err != nil || len(meshes) != 0 {
		t.Errorf("Scene(empty) = %v, %v; want no meshes", meshes, err)
	}
}

func TestSceneNamesFailingRoot(t *testing.T) {
	sc := scene.New()
	sc.AddNode(ballNode("flat", v3.Vec{}, 0))
	sc.AddRoot("flat")

	_, err := tessellate.Scene(sc, testCells)
	if err == nil {
		t.Fatal("expected an error for a zero-volume root")
	}
	if !strings.Contains(err.Error(), `root "flat"`) {
		t.Errorf("error %q does not name the root", err)
	}
}

func TestWriteSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.stl")
	if err := tessellate.WriteSTL(sdf.NewSphere(v3.Vec{}, 5), path, testCells); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header, 4-byte count, 50 bytes per triangle.
	if info.Size() <= 84 || (info.Size()-84)%50 != 0 {
		t.Errorf("unexpected STL size %d", info.Size())
	}
}

func TestWriteSTLRejectsEmptySolid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.stl")
	if err := tessellate.WriteSTL(sdf.NewGroup(), path, testCells); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file to be written, stat err = %v", err)
	}
}
