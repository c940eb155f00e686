package kernel

import "math"

// EdgeReport summarizes the edge topology of an indexed mesh.
type EdgeReport struct {
	Edges       int // distinct undirected edges
	Boundary    int // edges used by exactly one triangle
	NonManifold int // edges used by more than two triangles
	Misoriented int // directed edges used twice, i.e. neighbours with opposite winding
}

// Watertight reports whether every edge is shared by exactly two triangles.
func (r EdgeReport) Watertight() bool {
	return r.Edges > 0 && r.Boundary == 0 && r.NonManifold == 0
}

// Oriented reports whether neighbouring triangles wind consistently.
func (r EdgeReport) Oriented() bool {
	return r.Misoriented == 0
}

type edgeKey [2]uint32

func undirected(a, b uint32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Edges analyses the index topology of the mesh. Vertices are compared by
// index, not position: geometrically coincident but unwelded vertices count
// as distinct.
func (m *Mesh) Edges() EdgeReport {
	uses := make(map[edgeKey]int, len(m.Indices))
	directed := make(map[edgeKey]int, len(m.Indices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3]uint32{m.Indices[t], m.Indices[t+1], m.Indices[t+2]}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			uses[undirected(a, b)]++
			directed[edgeKey{a, b}]++
		}
	}

	var r EdgeReport
	r.Edges = len(uses)
	for _, n := range uses {
		switch {
		case n == 1:
			r.Boundary++
		case n > 2:
			r.NonManifold++
		}
	}
	for _, n := range directed {
		if n > 1 {
			r.Misoriented++
		}
	}
	return r
}

// IsWatertight reports whether the mesh is closed with no boundary or
// non-manifold edges.
func (m *Mesh) IsWatertight() bool {
	return m.Edges().Watertight()
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// SurfaceArea returns the total triangle area.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		v := m.Triangle(t)
		n := cross(sub(v[1], v[0]), sub(v[2], v[0]))
		total += 0.5 * math.Sqrt(dot(n, n))
	}
	return total
}

// Volume returns the signed enclosed volume. It is positive for a closed
// mesh whose triangles wind counter-clockwise seen from outside.
func (m *Mesh) Volume() float64 {
	total := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		v := m.Triangle(t)
		total += dot(v[0], cross(v[1], v[2]))
	}
	return total / 6
}
