// Package tessellate turns scene solids into triangle meshes with sdfx's
// marching cubes renderer. One mesh is produced per scene root.
package tessellate

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	sdfx "github.com/deadsy/sdfx/sdf"
	"github.com/minsley/Matth/pkg/scene"
)

// DefaultCells is the marching cubes resolution along the longest axis of
// a solid's bounding box.
const DefaultCells = 200

// checkBounds rejects boxes marching cubes cannot sample: non-finite
// corners or no volume.
func checkBounds(bb sdfx.Box3) error {
	for _, c := range []float64{bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("bounding box %v is not finite", bb)
		}
	}
	size := bb.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("bounding box %v is empty", bb)
	}
	return nil
}

// triangles renders s with a uniform marching cubes grid.
func triangles(s sdfx.SDF3, cells int) ([]*sdfx.Triangle3, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("mesh cells must be positive, got %d", cells)
	}
	if err := checkBounds(s.BoundingBox()); err != nil {
		return nil, err
	}
	return render.ToTriangles(s, render.NewMarchingCubesUniform(cells)), nil
}

// Solid converts s to a triangle mesh using marching cubes with the given
// resolution.
func Solid(s sdfx.SDF3, cells int) (*Mesh, error) {
	tris, err := triangles(s, cells)
	if err != nil {
		return nil, err
	}

	m := newMesh(len(tris))
	for _, tri := range tris {
		m.addTriangle(tri)
	}
	return m, nil
}

// Scene produces one mesh per root of sc, named after the root. The scene
// is read-only and never mutated.
func Scene(sc *scene.Scene, cells int) ([]*Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var meshes []*Mesh
	for _, root := range sc.Solids() {
		m, err := Solid(root.SDF, cells)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %q: %w", root.Name, err)
		}
		m.PartName = root.Name
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// WriteSTL renders s and writes it to path as a binary STL file.
func WriteSTL(s sdfx.SDF3, path string, cells int) error {
	tris, err := triangles(s, cells)
	if err != nil {
		return fmt.Errorf("tessellate: %w", err)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("tessellate: write %s: %w", path, err)
	}
	return nil
}
