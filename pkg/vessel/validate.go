package vessel

import "math"

// Validate checks the base parameters. The first violation is returned as an
// *InvalidParameterError.
func (b BaseParameters) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"outerDiameter", b.OuterDiameter},
		{"wallThickness", b.WallThickness},
		{"height", b.Height},
		{"maxHeight", b.MaxHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InvalidParameterError{Field: f.name, Value: f.v, Reason: "must be finite"}
		}
		if f.v <= 0 {
			return &InvalidParameterError{Field: f.name, Value: f.v, Reason: "must be positive"}
		}
	}
	// The profile occupies the region above the foot.
	if b.MaxHeight <= b.Height {
		return &InvalidParameterError{Field: "maxHeight", Value: b.MaxHeight, Reason: "must exceed height"}
	}
	return nil
}

// ValidatePoints checks the control point count and coordinate ranges.
func ValidatePoints(points []ControlPoint) error {
	if len(points) < MinControlPoints {
		return &InsufficientControlPointsError{Got: len(points)}
	}
	for _, p := range points {
		for _, v := range [2]float64{p.X, p.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidParameterError{Field: "controlPoint", Value: v, Reason: "must be finite"}
			}
			if v < 0 {
				return &InvalidParameterError{Field: "controlPoint", Value: v, Reason: "must not be negative"}
			}
		}
	}
	return nil
}

// Validate checks the whole design. Control points are checked first so a
// missing profile is reported even when the base is also wrong.
func (d Design) Validate() error {
	if err := ValidatePoints(d.ControlPoints); err != nil {
		return err
	}
	return d.Base.Validate()
}
