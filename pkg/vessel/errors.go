package vessel

import "fmt"

// MinControlPoints is the smallest number of control points that defines a
// profile.
const MinControlPoints = 2

// InsufficientControlPointsError is returned when fewer than
// MinControlPoints control points are supplied. Generation stops; no
// placeholder geometry is produced.
type InsufficientControlPointsError struct {
	Got int
}

func (e *InsufficientControlPointsError) Error() string {
	return fmt.Sprintf("need at least %d control points, got %d", MinControlPoints, e.Got)
}

// InvalidParameterError is returned when a base parameter or control point
// is out of range.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// WarningKind classifies a DegenerateGeometryWarning.
type WarningKind int

const (
	CoincidentSamples WarningKind = iota // zero-length profile segment, skipped
	WallExceedsRadius                    // inner wall clamped onto the axis
	NegativeRadius                       // interpolation overshot the axis, clamped
)

func (k WarningKind) String() string {
	switch k {
	case CoincidentSamples:
		return "coincident-samples"
	case WallExceedsRadius:
		return "wall-exceeds-radius"
	case NegativeRadius:
		return "negative-radius"
	default:
		return "unknown"
	}
}

// DegenerateGeometryWarning reports a geometric edge case that was clamped
// or skipped. The mesh is still produced.
type DegenerateGeometryWarning struct {
	Kind    WarningKind
	Sample  int // profile sample index, -1 when not tied to one
	Message string
}

func (w DegenerateGeometryWarning) Error() string {
	if w.Sample >= 0 {
		return fmt.Sprintf("%s at sample %d: %s", w.Kind, w.Sample, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
