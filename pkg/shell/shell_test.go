package shell

import (
	"math"
	"testing"

	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(samples int, from, to v2.Vec) profile.Profile {
	p := make(profile.Profile, samples)
	for i := range p {
		u := float64(i) / float64(samples-1)
		p[i] = from.Add(to.Sub(from).MulScalar(u))
	}
	return p
}

func TestOffsetStraightWall(t *testing.T) {
	outer := line(6, v2.Vec{X: 50, Y: 0}, v2.Vec{X: 50, Y: 100})
	inner, warnings := Offset(outer, 5)
	require.Empty(t, warnings)
	for i, s := range inner {
		assert.InDelta(t, 45, s.X, 1e-9, "sample %d", i)
		assert.InDelta(t, outer[i].Y, s.Y, 1e-9, "sample %d", i)
	}
}

func TestOffsetSlopedWall(t *testing.T) {
	from, to := v2.Vec{X: 50, Y: 0}, v2.Vec{X: 30, Y: 100}
	outer := line(11, from, to)
	inner, warnings := Offset(outer, 4)
	require.Empty(t, warnings)

	// Rims stay flat.
	assert.Equal(t, v2.Vec{X: 46, Y: 0}, inner[0])
	assert.Equal(t, v2.Vec{X: 26, Y: 100}, inner[len(inner)-1])

	// Interior samples sit one wall thickness inside the outer line.
	dir := to.Sub(from)
	for i := 1; i < len(inner)-1; i++ {
		d := inner[i].Sub(from)
		dist := math.Abs(dir.X*d.Y-dir.Y*d.X) / dir.Length()
		assert.InDelta(t, 4, dist, 1e-9, "sample %d", i)
		assert.Less(t, inner[i].X, outer[i].X, "sample %d", i)
	}
}

func TestOffsetClampsAtAxis(t *testing.T) {
	outer := line(5, v2.Vec{X: 3, Y: 0}, v2.Vec{X: 3, Y: 20})
	inner, warnings := Offset(outer, 5)
	require.Len(t, warnings, 1)
	assert.Equal(t, vessel.WallExceedsRadius, warnings[0].Kind)
	assert.Equal(t, 0, warnings[0].Sample)
	for i, s := range inner {
		assert.Equal(t, 0.0, s.X, "sample %d", i)
	}
}

func TestBuildClosedShell(t *testing.T) {
	const n = 48
	outer := line(8, v2.Vec{X: 50, Y: 0}, v2.Vec{X: 50, Y: 100})
	s, warnings := Build(outer, 5, n)
	require.Empty(t, warnings)

	m := s.Mesh("shell")
	r := m.Edges()
	assert.True(t, r.Watertight(), "%+v", r)
	assert.True(t, r.Oriented(), "%+v", r)

	ring := 0.5 * n * math.Sin(2*math.Pi/n)
	want := ring * (50*50 - 45*45) * 100
	assert.InEpsilon(t, want, m.Volume(), 1e-5)
}

func TestBuildInnerWallFacesCavity(t *testing.T) {
	const n = 16
	outer := line(4, v2.Vec{X: 20, Y: 0}, v2.Vec{X: 25, Y: 30})
	s, _ := Build(outer, 2, n)
	m := s.Mesh("")

	outerTris := 2 * (len(outer) - 1) * n
	for tri := outerTris; tri < s.BottomRim.Start; tri++ {
		v := m.Triangle(tri)
		e1 := [3]float64{v[1][0] - v[0][0], v[1][1] - v[0][1], v[1][2] - v[0][2]}
		e2 := [3]float64{v[2][0] - v[0][0], v[2][1] - v[0][1], v[2][2] - v[0][2]}
		nx := e1[1]*e2[2] - e1[2]*e2[1]
		ny := e1[2]*e2[0] - e1[0]*e2[2]
		cx := (v[0][0] + v[1][0] + v[2][0]) / 3
		cy := (v[0][1] + v[1][1] + v[2][1]) / 3
		require.Less(t, nx*cx+ny*cy, 0.0, "inner triangle %d faces away from the axis", tri)
	}
}

func TestBuildRimLips(t *testing.T) {
	const n = 12
	outer := line(5, v2.Vec{X: 30, Y: 0}, v2.Vec{X: 30, Y: 40})
	s, _ := Build(outer, 3, n)
	last := len(outer) - 1

	assert.Equal(t, 2*n, s.BottomRim.Len())
	assert.Equal(t, 2*n, s.TopRim.Len())
	assert.Equal(t, s.TriangleCount(), s.TopRim.End)

	rims := []struct {
		name         string
		rng          Range
		outer, inner []uint32
	}{
		{"bottom", s.BottomRim, s.OuterRings[0], s.InnerRings[0]},
		{"top", s.TopRim, s.OuterRings[last], s.InnerRings[last]},
	}
	for _, rim := range rims {
		t.Run(rim.name, func(t *testing.T) {
			// Each outer rim vertex is joined to its inner partner by
			// exactly two lip triangles.
			for j := 0; j < n; j++ {
				o, i := rim.outer[j], rim.inner[j]
				shared := 0
				for tri := rim.rng.Start; tri < rim.rng.End; tri++ {
					idx := s.Indices[tri*3 : tri*3+3]
					if has(idx, o) && has(idx, i) {
						shared++
					}
				}
				assert.Equal(t, 2, shared, "step %d", j)
			}
		})
	}
}

func TestBuildWallExceedsRadius(t *testing.T) {
	outer := line(6, v2.Vec{X: 3, Y: 0}, v2.Vec{X: 3, Y: 50})
	s, warnings := Build(outer, 5, 24)
	require.NotEmpty(t, warnings)
	assert.Equal(t, vessel.WallExceedsRadius, warnings[0].Kind)

	m := s.Mesh("")
	assert.True(t, m.Finite())
	assert.Greater(t, m.TriangleCount(), 0)
	// The inner wall collapsed onto the axis; the lips become discs and
	// the result is a closed solid cylinder.
	assert.True(t, m.Edges().Watertight())
	assert.Equal(t, 24, s.BottomRim.Len())
	assert.Greater(t, m.Volume(), 0.0)
}

func has(idx []uint32, v uint32) bool {
	for _, x := range idx {
		if x == v {
			return true
		}
	}
	return false
}
