// Package shell builds the walled vessel: it offsets the outer profile
// inward by the wall thickness, revolves both walls and closes the solid
// with a lip at each rim.
package shell

import (
	"fmt"

	"github.com/chazu/potter/pkg/kernel"
	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/revolve"
	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Range is a half-open range of triangle indices.
type Range struct {
	Start, End int
}

// Len returns the number of triangles in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether triangle t lies in the range.
func (r Range) Contains(t int) bool {
	return t >= r.Start && t < r.End
}

// Shell is a closed wall solid. The outer wall faces away from the axis,
// the inner wall faces into the cavity, and two lips join them at the
// bottom and top rims.
type Shell struct {
	*kernel.Builder

	Outer, Inner           profile.Profile
	OuterRings, InnerRings [][]uint32
	Segments               int

	BottomRim, TopRim Range
}

// Offset derives the inner wall profile. Interior samples move wallThickness
// along the inward profile normal; the first and last samples move
// horizontally so both rims stay flat. Radii that would cross the axis are
// clamped to 0 and reported in a single warning.
func Offset(outer profile.Profile, wallThickness float64) (profile.Profile, []vessel.DegenerateGeometryWarning) {
	inner := make(profile.Profile, len(outer))
	last := len(outer) - 1

	clamped, first := 0, -1
	for i, p := range outer {
		var q v2.Vec
		if i == 0 || i == last {
			q = v2.Vec{X: p.X - wallThickness, Y: p.Y}
		} else {
			n := inwardNormal(outer, i)
			q = p.Add(n.MulScalar(wallThickness))
		}
		if q.X < 0 {
			q.X = 0
			clamped++
			if first < 0 {
				first = i
			}
		}
		inner[i] = q
	}

	if clamped == 0 {
		return inner, nil
	}
	return inner, []vessel.DegenerateGeometryWarning{{
		Kind:   vessel.WallExceedsRadius,
		Sample: first,
		Message: fmt.Sprintf("wall thickness %g exceeds the available radius at %d samples (min radius %g), inner wall clamped to the axis",
			wallThickness, clamped, outer.MinRadius()),
	}}
}

// inwardNormal returns the unit normal at sample i pointing into the wall,
// i.e. the profile tangent turned counter-clockwise. The tangent is the
// central difference, falling back to one-sided differences when neighbours
// coincide.
func inwardNormal(p profile.Profile, i int) v2.Vec {
	candidates := [3]v2.Vec{
		p[i+1].Sub(p[i-1]),
		p[i+1].Sub(p[i]),
		p[i].Sub(p[i-1]),
	}
	for _, d := range candidates {
		if l := d.Length(); l > 1e-12 {
			t := d.MulScalar(1 / l)
			return v2.Vec{X: -t.Y, Y: t.X}
		}
	}
	return v2.Vec{X: -1}
}

// Build offsets outer by wallThickness and returns the closed shell.
// Geometric edge cases are clamped or skipped and reported as warnings;
// Build itself never fails.
func Build(outer profile.Profile, wallThickness float64, segments int) (*Shell, []vessel.DegenerateGeometryWarning) {
	inner, warnings := Offset(outer, wallThickness)

	outerSurf, w := revolve.Revolve(outer, segments)
	warnings = append(warnings, w...)

	innerSurf, w := revolve.Revolve(inner, segments)
	for _, iw := range w {
		iw.Message = "inner wall: " + iw.Message
		warnings = append(warnings, iw)
	}
	innerSurf.Flip()

	s := &Shell{
		Builder:    outerSurf.Builder,
		Outer:      outer,
		Inner:      inner,
		OuterRings: outerSurf.Rings,
		Segments:   outerSurf.Segments,
	}
	offset := s.Append(innerSurf.Builder)
	s.InnerRings = innerSurf.Shift(offset)

	last := len(outer) - 1
	s.BottomRim = s.lip(s.OuterRings[0], s.InnerRings[0], false)
	s.TopRim = s.lip(s.OuterRings[last], s.InnerRings[last], true)
	return s, warnings
}

// at returns the vertex of ring at step j, wrapping at the seam.
func (s *Shell) at(ring []uint32, j int) uint32 {
	if len(ring) == 1 {
		return ring[0]
	}
	return ring[j%s.Segments]
}

// lip joins an outer and an inner ring with two triangles per angular step,
// facing +Z when up is set and -Z otherwise. A ring collapsed onto the axis
// turns the lip into a fan.
func (s *Shell) lip(outer, inner []uint32, up bool) Range {
	start := s.TriangleCount()
	for j := 0; j < s.Segments; j++ {
		o0, o1 := s.at(outer, j), s.at(outer, j+1)
		i0, i1 := s.at(inner, j), s.at(inner, j+1)
		if o0 != o1 {
			if up {
				s.AddTriangle(o0, o1, i1)
			} else {
				s.AddTriangle(o0, i1, o1)
			}
		}
		if i0 != i1 {
			if up {
				s.AddTriangle(o0, i1, i0)
			} else {
				s.AddTriangle(o0, i0, i1)
			}
		}
	}
	return Range{Start: start, End: s.TriangleCount()}
}
