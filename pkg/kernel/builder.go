package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Builder accumulates an indexed triangle mesh in float64 precision.
// The mesh generators write into a Builder and convert to a Mesh once at
// the end, so float32 rounding happens in exactly one place.
type Builder struct {
	Positions []v3.Vec
	Indices   []uint32
}

// NewBuilder returns a Builder with capacity for the given counts.
func NewBuilder(vertices, triangles int) *Builder {
	return &Builder{
		Positions: make([]v3.Vec, 0, vertices),
		Indices:   make([]uint32, 0, triangles*3),
	}
}

// AddVertex appends a vertex and returns its index.
func (b *Builder) AddVertex(p v3.Vec) uint32 {
	b.Positions = append(b.Positions, p)
	return uint32(len(b.Positions) - 1)
}

// AddTriangle appends a triangle in the given winding order.
func (b *Builder) AddTriangle(i0, i1, i2 uint32) {
	b.Indices = append(b.Indices, i0, i1, i2)
}

// VertexCount returns the number of vertices.
func (b *Builder) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangles.
func (b *Builder) TriangleCount() int {
	return len(b.Indices) / 3
}

// Clone returns a deep copy.
func (b *Builder) Clone() *Builder {
	return &Builder{
		Positions: append([]v3.Vec(nil), b.Positions...),
		Indices:   append([]uint32(nil), b.Indices...),
	}
}

// Append copies all vertices and triangles of o into b, offsetting o's
// indices so they reference the combined vertex buffer. It returns the
// offset applied.
func (b *Builder) Append(o *Builder) uint32 {
	offset := uint32(len(b.Positions))
	b.Positions = append(b.Positions, o.Positions...)
	for _, idx := range o.Indices {
		b.Indices = append(b.Indices, idx+offset)
	}
	return offset
}

// Translate moves every vertex by d.
func (b *Builder) Translate(d v3.Vec) {
	for i := range b.Positions {
		b.Positions[i] = b.Positions[i].Add(d)
	}
}

// weldKey quantizes a position onto a grid of the weld tolerance.
type weldKey [3]int64

func quantize(p v3.Vec, tol float64) weldKey {
	return weldKey{
		int64(math.Round(p.X / tol)),
		int64(math.Round(p.Y / tol)),
		int64(math.Round(p.Z / tol)),
	}
}

// Weld merges vertices that fall into the same tolerance cell, keeping the
// first occurrence, and drops triangles that become degenerate. Vertex order
// of the survivors is preserved, so the result is deterministic. It returns
// the number of vertices removed.
func (b *Builder) Weld(tol float64) int {
	remap := make([]uint32, len(b.Positions))
	seen := make(map[weldKey]uint32, len(b.Positions))
	kept := b.Positions[:0:0]
	for i, p := range b.Positions {
		k := quantize(p, tol)
		if j, ok := seen[k]; ok {
			remap[i] = j
			continue
		}
		j := uint32(len(kept))
		seen[k] = j
		remap[i] = j
		kept = append(kept, p)
	}
	removed := len(b.Positions) - len(kept)

	indices := b.Indices[:0:0]
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := remap[b.Indices[t]], remap[b.Indices[t+1]], remap[b.Indices[t+2]]
		if i0 == i1 || i1 == i2 || i2 == i0 {
			continue
		}
		indices = append(indices, i0, i1, i2)
	}

	b.Positions = kept
	b.Indices = indices
	return removed
}

// faceNormal returns the unnormalized normal of a triangle; its length is
// twice the triangle area.
func faceNormal(a, b, c v3.Vec) v3.Vec {
	return b.Sub(a).Cross(c.Sub(a))
}

// VertexNormals returns area-weighted vertex normals. Vertices not used by
// any triangle, or whose faces cancel out, get a zero normal.
func (b *Builder) VertexNormals() []v3.Vec {
	acc := make([]v3.Vec, len(b.Positions))
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		n := faceNormal(b.Positions[i0], b.Positions[i1], b.Positions[i2])
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}
	for i, n := range acc {
		if l := n.Length(); l > 0 {
			acc[i] = n.MulScalar(1 / l)
		}
	}
	return acc
}

// Mesh converts the builder into the flat float32 mesh format.
func (b *Builder) Mesh(name string) *Mesh {
	normals := b.VertexNormals()
	m := &Mesh{
		Vertices: make([]float32, 0, len(b.Positions)*3),
		Normals:  make([]float32, 0, len(b.Positions)*3),
		Indices:  append([]uint32(nil), b.Indices...),
		PartName: name,
	}
	for i, p := range b.Positions {
		n := normals[i]
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return m
}
