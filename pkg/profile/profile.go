// Package profile turns raw vessel control points into a smooth, resampled
// 2D profile. Points are sdfx 2D vectors with X holding the radius and Y the
// height above the foot.
package profile

import (
	"fmt"
	"math"

	"github.com/chazu/potter/pkg/vessel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultSampleCount balances curve smoothness against triangle count.
const DefaultSampleCount = 50

// alpha selects centripetal parameterization.
const alpha = 0.5

// eps is the knot interval below which two points are treated as coincident.
const eps = 1e-12

// Profile is an ordered sequence of (radius, height) samples from the
// bottom of the wall to the rim.
type Profile []v2.Vec

// MinRadius returns the smallest radius in the profile.
func (p Profile) MinRadius() float64 {
	min := math.Inf(1)
	for _, s := range p {
		min = math.Min(min, s.X)
	}
	return min
}

// Clone returns a copy of the profile.
func (p Profile) Clone() Profile {
	return append(Profile(nil), p...)
}

// Pin returns a copy of the control points with the first point moved to
// the foot's top edge (radius OuterDiameter/2, height 0) and the last
// point's height moved to MaxHeight. Interior points are unchanged.
func Pin(points []vessel.ControlPoint, base vessel.BaseParameters) []v2.Vec {
	out := make([]v2.Vec, len(points))
	for i, p := range points {
		out[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	if len(out) == 0 {
		return out
	}
	out[0] = v2.Vec{X: base.Radius(), Y: 0}
	out[len(out)-1].Y = base.MaxHeight
	return out
}

// Resample validates the inputs, pins the end points and interpolates a
// centripetal Catmull-Rom curve through them, returning sampleCount
// samples. A sampleCount below 2 selects DefaultSampleCount. Radii that
// the curve pushes past the axis are clamped to 0 and reported.
func Resample(points []vessel.ControlPoint, base vessel.BaseParameters, sampleCount int) (Profile, []vessel.DegenerateGeometryWarning, error) {
	if err := vessel.ValidatePoints(points); err != nil {
		return nil, nil, fmt.Errorf("profile: %w", err)
	}
	if err := base.Validate(); err != nil {
		return nil, nil, fmt.Errorf("profile: %w", err)
	}
	if sampleCount < 2 {
		sampleCount = DefaultSampleCount
	}

	p := Interpolate(Pin(points, base), sampleCount)

	var warnings []vessel.DegenerateGeometryWarning
	for i := range p {
		if p[i].X < 0 {
			warnings = append(warnings, vessel.DegenerateGeometryWarning{
				Kind:    vessel.NegativeRadius,
				Sample:  i,
				Message: fmt.Sprintf("curve overshoots the axis (radius %.4f), clamped to 0", p[i].X),
			})
			p[i].X = 0
		}
	}
	return p, warnings, nil
}

// Interpolate evaluates a centripetal Catmull-Rom spline through pts at
// n samples spread evenly over the segment parameter. The first and last
// samples are exactly the first and last points. It needs at least two
// points and n >= 2; no clamping is applied.
func Interpolate(pts []v2.Vec, n int) Profile {
	out := make(Profile, n)
	last := len(pts) - 1
	segments := last

	// Phantom end points by reflection keep the end tangents natural.
	ext := make([]v2.Vec, 0, len(pts)+2)
	ext = append(ext, pts[0].MulScalar(2).Sub(pts[1]))
	ext = append(ext, pts...)
	ext = append(ext, pts[last].MulScalar(2).Sub(pts[last-1]))

	for k := 0; k < n; k++ {
		g := float64(k) * float64(segments) / float64(n-1)
		seg := int(math.Floor(g))
		if seg >= segments {
			seg = segments - 1
		}
		u := g - float64(seg)
		out[k] = segment(ext[seg], ext[seg+1], ext[seg+2], ext[seg+3], u)
	}
	out[0] = pts[0]
	out[n-1] = pts[last]
	return out
}

// knot returns the centripetal knot interval between two points.
func knot(a, b v2.Vec) float64 {
	return math.Pow(b.Sub(a).Length(), alpha)
}

// blend interpolates between pa at ta and pb at tb, evaluated at t. A zero
// interval returns whichever end t lies on.
func blend(pa, pb v2.Vec, ta, tb, t float64) v2.Vec {
	d := tb - ta
	if d < eps {
		if t >= tb {
			return pb
		}
		return pa
	}
	return pa.MulScalar((tb - t) / d).Add(pb.MulScalar((t - ta) / d))
}

// segment evaluates the Barry-Goldman pyramid for the curve between p1 and
// p2 at local parameter u in [0, 1].
func segment(p0, p1, p2, p3 v2.Vec, u float64) v2.Vec {
	t0 := 0.0
	t1 := t0 + knot(p0, p1)
	t2 := t1 + knot(p1, p2)
	t3 := t2 + knot(p2, p3)
	if t2-t1 < eps {
		return p1
	}
	t := t1 + u*(t2-t1)

	a1 := blend(p0, p1, t0, t1, t)
	a2 := blend(p1, p2, t1, t2, t)
	a3 := blend(p2, p3, t2, t3, t)
	b1 := blend(a1, a2, t0, t2, t)
	b2 := blend(a2, a3, t1, t3, t)
	return blend(b1, b2, t1, t2, t)
}
