package vessel

// ControlPoint is a point of the vessel profile in profile space.
// X is the radial distance from the axis, Y the height. Order matters:
// points run along the wall from bottom to top.
type ControlPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// BaseParameters describes the vessel foot and wall. All values are in mm.
type BaseParameters struct {
	OuterDiameter float64 `json:"outerDiameter" yaml:"outer_diameter"` // foot diameter, first profile radius is half of it
	WallThickness float64 `json:"wallThickness" yaml:"wall_thickness"` // wall material thickness
	Height        float64 `json:"height" yaml:"height"`                // foot height below the profile
	MaxHeight     float64 `json:"maxHeight" yaml:"max_height"`         // profile height, last point is pinned here
}

// Radius returns the foot radius.
func (b BaseParameters) Radius() float64 {
	return b.OuterDiameter / 2
}

// Design is a complete vessel description.
type Design struct {
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	Base          BaseParameters `json:"base" yaml:"base"`
	ControlPoints []ControlPoint `json:"controlPoints" yaml:"control_points"`
}

// Clone returns a deep copy of the design.
func (d Design) Clone() Design {
	out := d
	out.ControlPoints = append([]ControlPoint(nil), d.ControlPoints...)
	return out
}

// Equal reports whether two designs describe the same vessel.
func (d Design) Equal(o Design) bool {
	if d.Name != o.Name || d.Base != o.Base || len(d.ControlPoints) != len(o.ControlPoints) {
		return false
	}
	for i := range d.ControlPoints {
		if d.ControlPoints[i] != o.ControlPoints[i] {
			return false
		}
	}
	return true
}
