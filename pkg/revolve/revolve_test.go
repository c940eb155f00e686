package revolve

import (
	"math"
	"testing"

	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightWall(samples int, radius, height float64) profile.Profile {
	p := make(profile.Profile, samples)
	for i := range p {
		p[i] = v2.Vec{X: radius, Y: height * float64(i) / float64(samples-1)}
	}
	return p
}

func TestRevolveCounts(t *testing.T) {
	for _, n := range []int{3, 8, 64} {
		p := straightWall(10, 25, 100)
		s, warnings := Revolve(p, n)
		require.Empty(t, warnings)
		assert.Equal(t, len(p)*n, s.VertexCount(), "segments=%d", n)
		assert.Equal(t, 2*(len(p)-1)*n, s.TriangleCount(), "segments=%d", n)
		assert.Equal(t, n, s.Segments)
	}
}

func TestRevolveDefaultsSegments(t *testing.T) {
	s, _ := Revolve(straightWall(2, 1, 1), 0)
	assert.Equal(t, DefaultSegments, s.Segments)
}

func TestRevolveSeam(t *testing.T) {
	const n = 64
	p := profile.Profile{{X: 50, Y: 0}, {X: 30, Y: 40}, {X: 42.5, Y: 120}}
	for i, pt := range p {
		first := Position(pt, 0, n)
		wrapped := Position(pt, n, n)
		assert.InDelta(t, 0, wrapped.Sub(first).Length(), 1e-9, "sample %d", i)
	}
	s, _ := Revolve(p, n)
	for i := range p {
		assert.Equal(t, s.Vertex(i, 0), s.Vertex(i, n), "sample %d seam vertex", i)
	}
}

func TestRevolveWindingFacesOutward(t *testing.T) {
	s, _ := Revolve(straightWall(5, 10, 40), 16)
	m := s.Mesh("")
	for tri := 0; tri < m.TriangleCount(); tri++ {
		v := m.Triangle(tri)
		a := v3.Vec{X: v[0][0], Y: v[0][1], Z: v[0][2]}
		b := v3.Vec{X: v[1][0], Y: v[1][1], Z: v[1][2]}
		c := v3.Vec{X: v[2][0], Y: v[2][1], Z: v[2][2]}
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).MulScalar(1.0 / 3)
		radial := v3.Vec{X: centroid.X, Y: centroid.Y}
		require.Greater(t, n.Dot(radial), 0.0, "triangle %d faces inward", tri)
	}
	r := m.Edges()
	assert.True(t, r.Oriented())
	// An open tube has two boundary loops of 16 edges.
	assert.Equal(t, 32, r.Boundary)
}

func TestRevolveAxisCollapse(t *testing.T) {
	const n = 32
	// A closed puck: bottom disc, wall, top disc.
	p := profile.Profile{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	s, warnings := Revolve(p, n)
	require.Empty(t, warnings)
	assert.True(t, s.Collapsed(0))
	assert.True(t, s.Collapsed(3))
	assert.Equal(t, 2+2*n, s.VertexCount())
	assert.Equal(t, 4*n, s.TriangleCount())

	m := s.Mesh("puck")
	r := m.Edges()
	assert.True(t, r.Watertight(), "%+v", r)
	assert.True(t, r.Oriented(), "%+v", r)

	polygonArea := 0.5 * n * 100 * math.Sin(2*math.Pi/n)
	assert.InEpsilon(t, polygonArea*10, m.Volume(), 1e-5)

	// Axis vertex normals follow the caps.
	bottom := s.Rings[0][0]
	assert.InDelta(t, -1, float64(m.Normals[bottom*3+2]), 1e-6)
	top := s.Rings[3][0]
	assert.InDelta(t, 1, float64(m.Normals[top*3+2]), 1e-6)
}

func TestRevolveSkipsCoincidentSamples(t *testing.T) {
	const n = 12
	p := profile.Profile{{X: 10, Y: 0}, {X: 10, Y: 5}, {X: 10, Y: 5}, {X: 10, Y: 10}}
	s, warnings := Revolve(p, n)
	require.Len(t, warnings, 1)
	assert.Equal(t, vessel.CoincidentSamples, warnings[0].Kind)
	assert.Equal(t, 1, warnings[0].Sample)
	assert.Equal(t, []int{1}, s.Skipped)
	assert.Equal(t, 3*n, s.VertexCount())
	assert.Equal(t, 2*(len(p)-1-len(s.Skipped))*n, s.TriangleCount())

	m := s.Mesh("")
	for i := 0; i < m.TriangleCount(); i++ {
		v := m.Triangle(i)
		assert.NotEqual(t, v[0], v[1])
		assert.NotEqual(t, v[1], v[2])
	}
	// Sharing the ring keeps the tube connected: only the two end loops are open.
	assert.Equal(t, 2*n, m.Edges().Boundary)
}

func TestRevolveAggregatesCoincidentRuns(t *testing.T) {
	const n = 8
	p := profile.Profile{
		{X: 10, Y: 0},
		{X: 10, Y: 5}, {X: 10, Y: 5}, {X: 10, Y: 5}, {X: 10, Y: 5},
		{X: 12, Y: 8},
		{X: 12, Y: 10}, {X: 12, Y: 10},
	}
	s, warnings := Revolve(p, n)
	assert.Equal(t, []int{1, 2, 3, 6}, s.Skipped)
	require.Len(t, warnings, 2, "one warning per run of coincident samples")

	assert.Equal(t, vessel.CoincidentSamples, warnings[0].Kind)
	assert.Equal(t, 1, warnings[0].Sample)
	assert.Contains(t, warnings[0].Message, "3 segments skipped")

	assert.Equal(t, 6, warnings[1].Sample)
	assert.Contains(t, warnings[1].Message, "samples 6 and 7")

	assert.Equal(t, 4*n, s.VertexCount())
	assert.Equal(t, 2*n, s.Mesh("").Edges().Boundary)
}

func TestFlipAndShift(t *testing.T) {
	s, _ := Revolve(straightWall(3, 5, 5), 4)
	before := append([]uint32(nil), s.Indices...)
	s.Flip()
	assert.Equal(t, before[0], s.Indices[0])
	assert.Equal(t, before[1], s.Indices[2])
	assert.Equal(t, before[2], s.Indices[1])

	shifted := s.Shift(100)
	assert.Equal(t, s.Rings[1][2]+100, shifted[1][2])
}
