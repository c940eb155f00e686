package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering and export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
// A Mesh returned by this module is never mutated afterwards.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // design name the mesh was generated from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Position returns vertex i.
func (m *Mesh) Position(i uint32) [3]float64 {
	j := int(i) * 3
	return [3]float64{float64(m.Vertices[j]), float64(m.Vertices[j+1]), float64(m.Vertices[j+2])}
}

// Triangle returns the three vertex positions of triangle t in winding order.
func (m *Mesh) Triangle(t int) [3][3]float64 {
	j := t * 3
	return [3][3]float64{
		m.Position(m.Indices[j]),
		m.Position(m.Indices[j+1]),
		m.Position(m.Indices[j+2]),
	}
}

// BoundingBox returns the axis-aligned bounding box of all vertices.
// An empty mesh returns zero vectors.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	min = m.Position(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}
	return min, max
}

// Finite reports whether every vertex and normal component is a finite number.
func (m *Mesh) Finite() bool {
	for _, buf := range [2][]float32{m.Vertices, m.Normals} {
		for _, v := range buf {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
