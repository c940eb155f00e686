// Package kernel defines the triangle mesh handed to renderers and
// exporters, the float64 builder the mesh generators write into, and the
// abstract solid-modeling kernel interface. Implementations (sdfx) provide
// an implicit-surface route to the same mesh type, so callers can swap the
// explicit lathe engine for a solid kernel without changing anything else.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Name identifies the backend in logs and CLI flags.
	Name() string

	// Revolve sweeps a closed 2D cross-section, given as (radius, height)
	// vertices in counter-clockwise order, a full turn around the Z axis.
	Revolve(section [][2]float64) (Solid, error)
	// Cylinder creates a Z-aligned cylinder with its base on z = 0.
	Cylinder(height, radius float64, segments int) (Solid, error)

	Union(a, b Solid) Solid
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
