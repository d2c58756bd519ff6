package tessellate

import (
	sdfx "github.com/deadsy/sdfx/sdf"
)

// Mesh is a triangle soup suitable for rendering. Triangles do not share
// vertices: vertices has 3 floats per vertex (x,y,z), normals repeats the
// face normal for each of a triangle's vertices, and indices has 3 uint32s
// per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // scene root this came from
}

func newMesh(triangles int) *Mesh {
	return &Mesh{
		Vertices: make([]float32, 0, triangles*9),
		Normals:  make([]float32, 0, triangles*9),
		Indices:  make([]uint32, 0, triangles*3),
	}
}

// addTriangle appends tri with its face normal.
func (m *Mesh) addTriangle(tri *sdfx.Triangle3) {
	n := tri.Normal()
	base := uint32(m.VertexCount())
	for j, v := range tri {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.Indices = append(m.Indices, base+uint32(j))
	}
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }
