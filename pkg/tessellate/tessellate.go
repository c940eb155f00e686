// Package tessellate turns a vessel design into a triangle mesh. It is the
// single engine behind every vessel variant: walled shell, lathe-only
// surface, or a solid-kernel rendering of the same cross-section.
package tessellate

import (
	"fmt"

	"github.com/chazu/potter/pkg/assemble"
	"github.com/chazu/potter/pkg/kernel"
	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/revolve"
	"github.com/chazu/potter/pkg/shell"
	"github.com/chazu/potter/pkg/vessel"
	"go.uber.org/zap"
)

// Options controls mesh generation. Zero counts select the package
// defaults of the stage they configure.
type Options struct {
	SampleCount     int
	AngularSegments int

	// WithWallThickness builds a hollow walled shell. When false only the
	// outer surface is revolved and welded to the foot.
	WithWallThickness bool
	Joint             assemble.Joint

	// Kernel, when set, replaces the native lathe engine with a solid
	// modeling kernel.
	Kernel kernel.Kernel
	Logger *zap.Logger
}

// DefaultOptions returns the options for a printable walled vessel.
func DefaultOptions() Options {
	return Options{
		SampleCount:       profile.DefaultSampleCount,
		AngularSegments:   revolve.DefaultSegments,
		WithWallThickness: true,
		Joint:             assemble.JointWelded,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result is a generated vessel. The mesh is never mutated after Generate
// returns, so results may be shared freely.
//
// The mesh stands on the build plate: the foot occupies z in [0, Height]
// and the rim is at z = Height+MaxHeight. Profile and InnerProfile stay in
// profile space, where the top of the foot is at height 0.
type Result struct {
	Mesh         *kernel.Mesh
	Profile      profile.Profile
	InnerProfile profile.Profile // nil without wall thickness
	Warnings     []vessel.DegenerateGeometryWarning
}

// Generate validates the design and builds its mesh. Invalid input is
// returned as an error wrapping a vessel error type; no placeholder
// geometry is substituted. Degenerate but valid geometry is clamped and
// reported in Result.Warnings.
func Generate(d vessel.Design, opts Options) (*Result, error) {
	log := opts.logger().With(zap.String("design", d.Name))

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("tessellate: %s: %w", d.Name, err)
	}
	outer, warnings, err := profile.Resample(d.ControlPoints, d.Base, opts.SampleCount)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s: %w", d.Name, err)
	}

	res := &Result{Profile: outer, Warnings: warnings}
	switch {
	case opts.Kernel != nil:
		err = handleKernel(res, d, opts)
	case opts.WithWallThickness:
		handleWalled(res, d, opts)
	default:
		handleLathe(res, d, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s: %w", d.Name, err)
	}
	res.Mesh.PartName = d.Name

	for _, w := range res.Warnings {
		log.Warn("degenerate geometry",
			zap.Stringer("kind", w.Kind),
			zap.Int("sample", w.Sample),
			zap.String("detail", w.Message))
	}
	log.Debug("generated mesh",
		zap.Int("samples", len(res.Profile)),
		zap.Int("vertices", res.Mesh.VertexCount()),
		zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Bool("walled", res.InnerProfile != nil))
	return res, nil
}

// handleWalled builds the hollow shell and joins it to the foot.
func handleWalled(res *Result, d vessel.Design, opts Options) {
	s, warnings := shell.Build(res.Profile, d.Base.WallThickness, opts.AngularSegments)
	res.InnerProfile = s.Inner
	res.Warnings = append(res.Warnings, warnings...)
	res.Mesh = assemble.Assemble(d.Base, s, opts.Joint).Mesh(d.Name)
}

// handleLathe revolves the outer profile alone.
func handleLathe(res *Result, d vessel.Design, opts Options) {
	outer, warnings := revolve.Revolve(res.Profile, opts.AngularSegments)
	res.Warnings = append(res.Warnings, warnings...)
	res.Mesh = assemble.AssembleLathe(d.Base, outer).Mesh(d.Name)
}

// handleKernel renders the vessel as a solid: the foot cylinder united
// with the revolved wall cross-section. Without wall thickness the
// section is closed along the axis, giving a solid body.
func handleKernel(res *Result, d vessel.Design, opts Options) error {
	k := opts.Kernel
	opts.logger().Debug("using solid kernel", zap.String("kernel", k.Name()))

	var section [][2]float64
	for _, p := range res.Profile {
		section = append(section, [2]float64{p.X, p.Y})
	}
	if opts.WithWallThickness {
		inner, warnings := shell.Offset(res.Profile, d.Base.WallThickness)
		res.InnerProfile = inner
		res.Warnings = append(res.Warnings, warnings...)
		for i := len(inner) - 1; i >= 0; i-- {
			section = append(section, [2]float64{inner[i].X, inner[i].Y})
		}
	} else {
		top := res.Profile[len(res.Profile)-1]
		section = append(section, [2]float64{0, top.Y}, [2]float64{0, 0})
	}

	wall, err := k.Revolve(section)
	if err != nil {
		return err
	}
	foot, err := k.Cylinder(d.Base.Height, d.Base.Radius(), opts.AngularSegments)
	if err != nil {
		return err
	}
	solid := k.Union(foot, k.Translate(wall, 0, 0, d.Base.Height))

	m, err := k.ToMesh(solid)
	if err != nil {
		return err
	}
	res.Mesh = m
	return nil
}
