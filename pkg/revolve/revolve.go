// Package revolve sweeps a 2D profile a full turn around the Z axis into
// an indexed triangle tube. The tube is open at both ends; capping is left
// to the shell and assembly stages.
package revolve

import (
	"fmt"
	"math"

	"github.com/chazu/potter/pkg/kernel"
	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultSegments is the default number of angular steps.
const DefaultSegments = 64

// MinSegments is the fewest angular steps that enclose any area.
const MinSegments = 3

const (
	axisEps       = 1e-9 // radius at or below which a sample sits on the axis
	coincidentEps = 1e-9 // distance at or below which two samples coincide
)

// Surface is a revolved profile: the vertex rings and the lateral triangles.
type Surface struct {
	*kernel.Builder

	// Rings[i] holds the vertex indices of profile sample i, one per
	// angular step. A sample on the axis has a single shared vertex.
	Rings    [][]uint32
	Segments int
	// Skipped lists profile segments (i, i+1) that emitted no triangles
	// because the two samples coincide.
	Skipped []int
}

// Position returns the 3D position of profile point p at angular step
// step. Step segments lands on the same position as step 0.
func Position(p v2.Vec, step, segments int) v3.Vec {
	theta := 2 * math.Pi * float64(step) / float64(segments)
	return v3.Vec{X: p.X * math.Cos(theta), Y: p.X * math.Sin(theta), Z: p.Y}
}

// OnAxis reports whether a profile point lies on the axis of revolution.
func OnAxis(p v2.Vec) bool {
	return p.X <= axisEps
}

// Vertex returns the index of profile sample i at angular step j. Step
// indices wrap, so j == Segments is the seam vertex at step 0.
func (s *Surface) Vertex(i, j int) uint32 {
	ring := s.Rings[i]
	if len(ring) == 1 {
		return ring[0]
	}
	return ring[j%s.Segments]
}

// Collapsed reports whether ring i is a single axis vertex.
func (s *Surface) Collapsed(i int) bool {
	return len(s.Rings[i]) == 1
}

// Flip reverses the winding of every triangle.
func (s *Surface) Flip() {
	for t := 0; t+2 < len(s.Indices); t += 3 {
		s.Indices[t+1], s.Indices[t+2] = s.Indices[t+2], s.Indices[t+1]
	}
}

// Shift offsets every ring index, for use after the surface's builder has
// been appended to another builder at that offset.
func (s *Surface) Shift(offset uint32) [][]uint32 {
	out := make([][]uint32, len(s.Rings))
	for i, ring := range s.Rings {
		out[i] = make([]uint32, len(ring))
		for j, idx := range ring {
			out[i][j] = idx + offset
		}
	}
	return out
}

// Revolve sweeps p around the Z axis in the given number of equal angular
// steps. Segments below MinSegments select DefaultSegments.
//
// Quad (i, j) is split into (a, b, c) and (a, c, d) with a = (i, j),
// b = (i, j+1), c = (i+1, j+1), d = (i+1, j). For a profile running
// upward this faces radially outward; in general the face normal is the
// profile tangent turned clockwise, so the whole tube is consistently
// oriented. Coincident samples share one ring and emit no triangles.
func Revolve(p profile.Profile, segments int) (*Surface, []vessel.DegenerateGeometryWarning) {
	if segments < MinSegments {
		segments = DefaultSegments
	}
	s := &Surface{
		Builder:  kernel.NewBuilder(len(p)*segments, 2*len(p)*segments),
		Rings:    make([][]uint32, len(p)),
		Segments: segments,
	}

	repeat := make([]bool, len(p))
	for i, pt := range p {
		if i > 0 && pt.Sub(p[i-1]).Length() <= coincidentEps {
			repeat[i] = true
			s.Rings[i] = s.Rings[i-1]
			s.Skipped = append(s.Skipped, i-1)
			continue
		}
		if OnAxis(pt) {
			s.Rings[i] = []uint32{s.AddVertex(v3.Vec{Z: pt.Y})}
			continue
		}
		ring := make([]uint32, segments)
		for j := range ring {
			ring[j] = s.AddVertex(Position(pt, j, segments))
		}
		s.Rings[i] = ring
	}

	for i := 0; i+1 < len(p); i++ {
		if repeat[i+1] {
			continue
		}
		lo, hi := s.Collapsed(i), s.Collapsed(i+1)
		if lo && hi {
			continue
		}
		for j := 0; j < segments; j++ {
			a, b := s.Vertex(i, j), s.Vertex(i, j+1)
			c, d := s.Vertex(i+1, j+1), s.Vertex(i+1, j)
			if !lo {
				s.AddTriangle(a, b, c)
			}
			if !hi {
				s.AddTriangle(a, c, d)
			}
		}
	}
	return s, coincidentRuns(s.Skipped)
}

// coincidentRuns reports each run of consecutive skipped segments as one
// warning naming its first sample.
func coincidentRuns(skipped []int) []vessel.DegenerateGeometryWarning {
	var warnings []vessel.DegenerateGeometryWarning
	for k := 0; k < len(skipped); {
		end := k + 1
		for end < len(skipped) && skipped[end] == skipped[end-1]+1 {
			end++
		}
		first, n := skipped[k], end-k
		msg := fmt.Sprintf("samples %d and %d coincide, segment skipped", first, first+1)
		if n > 1 {
			msg = fmt.Sprintf("samples %d to %d coincide, %d segments skipped", first, first+n, n)
		}
		warnings = append(warnings, vessel.DegenerateGeometryWarning{
			Kind:    vessel.CoincidentSamples,
			Sample:  first,
			Message: msg,
		})
		k = end
	}
	return warnings
}
