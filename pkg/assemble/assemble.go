// Package assemble joins the cylindrical foot and the vessel walls into the
// final solid and stands it on the build plate.
//
// Geometry is assembled in profile space, where the wall starts at z = 0
// and the foot occupies [-Height, 0]. The finished solid is then moved up
// by Height so its underside rests on z = 0.
package assemble

import (
	"fmt"

	"github.com/chazu/potter/pkg/kernel"
	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/revolve"
	"github.com/chazu/potter/pkg/shell"
	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// WeldTolerance is the distance under which joint vertices are merged.
const WeldTolerance = 1e-7

// Joint selects how the foot meets the walls.
type Joint int

const (
	// JointWelded merges the foot and the walls into one closed solid with
	// a flat cavity floor at the top of the foot.
	JointWelded Joint = iota
	// JointStacked emits the closed foot and the closed shell as two
	// separate bodies touching at the joint plane.
	JointStacked
)

func (j Joint) String() string {
	switch j {
	case JointWelded:
		return "welded"
	case JointStacked:
		return "stacked"
	default:
		return fmt.Sprintf("joint(%d)", int(j))
	}
}

// ParseJoint converts a joint name to a Joint.
func ParseJoint(s string) (Joint, error) {
	switch s {
	case "", "welded":
		return JointWelded, nil
	case "stacked":
		return JointStacked, nil
	default:
		return 0, fmt.Errorf("assemble: unknown joint %q", s)
	}
}

// Caps selects which ends of the foot are closed.
type Caps uint8

const (
	CapBottom Caps = 1 << iota
	CapTop

	CapBoth = CapBottom | CapTop
)

// BaseCylinder builds the foot: a cylinder of radius OuterDiameter/2 and
// height Height with its top at z = 0. The caps are discs revolved from the
// axis, so they share the lateral wall's rings.
func BaseCylinder(params vessel.BaseParameters, segments int, caps Caps) *revolve.Surface {
	r, h := params.Radius(), params.Height

	var p profile.Profile
	if caps&CapBottom != 0 {
		p = append(p, pt(0, -h))
	}
	p = append(p, pt(r, -h), pt(r, 0))
	if caps&CapTop != 0 {
		p = append(p, pt(0, 0))
	}
	s, _ := revolve.Revolve(p, segments)
	return s
}

// Assemble joins the foot to a walled shell built with the same number of
// segments and returns the grounded solid.
func Assemble(params vessel.BaseParameters, s *shell.Shell, joint Joint) *kernel.Builder {
	switch joint {
	case JointStacked:
		b := s.Builder.Clone()
		b.Append(BaseCylinder(params, s.Segments, CapBoth).Builder)
		return ground(b, params)

	default:
		b := kernel.NewBuilder(s.VertexCount()+2*s.Segments+2, s.TriangleCount()+2*s.Segments)
		b.Positions = append(b.Positions, s.Positions...)
		for t := 0; t < s.TriangleCount(); t++ {
			if s.BottomRim.Contains(t) {
				continue
			}
			b.AddTriangle(s.Indices[t*3], s.Indices[t*3+1], s.Indices[t*3+2])
		}

		// The cavity floor is the top of the foot, seen from inside the
		// vessel. A profile running inward at constant height faces up.
		if floor := s.Inner[0]; !revolve.OnAxis(floor) {
			disc, _ := revolve.Revolve(profile.Profile{floor, pt(0, floor.Y)}, s.Segments)
			b.Append(disc.Builder)
		}
		b.Append(BaseCylinder(params, s.Segments, CapBottom).Builder)
		b.Weld(WeldTolerance)
		return ground(b, params)
	}
}

// AssembleLathe joins the foot to a single outer surface with no wall
// thickness. The result is closed at the bottom and open wherever the
// surface is.
func AssembleLathe(params vessel.BaseParameters, outer *revolve.Surface) *kernel.Builder {
	b := outer.Builder.Clone()
	b.Append(BaseCylinder(params, outer.Segments, CapBottom).Builder)
	b.Weld(WeldTolerance)
	return ground(b, params)
}

func ground(b *kernel.Builder, params vessel.BaseParameters) *kernel.Builder {
	b.Translate(v3.Vec{Z: params.Height})
	return b
}

func pt(r, h float64) v2.Vec {
	return v2.Vec{X: r, Y: h}
}
