package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chazu/potter/internal/config"
	"github.com/chazu/potter/pkg/assemble"
	"github.com/chazu/potter/pkg/engine"
	"github.com/chazu/potter/pkg/kernel/sdfx"
	"github.com/chazu/potter/pkg/tessellate"
	"github.com/chazu/potter/pkg/vessel"
	"go.uber.org/zap"
)

// App ties design loading to mesh generation for the commands.
type App struct {
	engine *engine.Engine
	gen    *tessellate.Generator
	log    *zap.Logger
}

// NewApp builds an App whose pipeline follows cfg.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	opts, err := meshOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = log.Named("tessellate")
	return &App{
		engine: engine.NewEngine(),
		gen:    tessellate.NewGenerator(opts),
		log:    log,
	}, nil
}

// meshOptions translates the mesh and kernel sections of cfg.
func meshOptions(cfg *config.Config) (tessellate.Options, error) {
	joint, err := assemble.ParseJoint(cfg.Mesh.Joint)
	if err != nil {
		return tessellate.Options{}, err
	}
	opts := tessellate.Options{
		SampleCount:       cfg.Mesh.Samples,
		AngularSegments:   cfg.Mesh.Segments,
		WithWallThickness: cfg.Mesh.Wall,
		Joint:             joint,
	}
	switch cfg.Kernel.Name {
	case config.KernelLathe:
	case config.KernelSdfx:
		opts.Kernel = sdfx.NewWithCells(cfg.Kernel.Cells)
	default:
		return tessellate.Options{}, fmt.Errorf("unknown kernel %q", cfg.Kernel.Name)
	}
	return opts, nil
}

// Load reads a design file. YAML documents are decoded directly; .zy and
// .lisp files are evaluated as vessel scripts.
func (a *App) Load(path string) (*vessel.Design, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return vessel.LoadDesign(path)
	case ".zy", ".lisp":
		d, evalErrs, err := a.engine.EvaluateFile(path)
		if err != nil {
			return nil, err
		}
		if len(evalErrs) > 0 {
			return nil, fmt.Errorf("%s: %w", path, joinEvalErrors(evalErrs))
		}
		return d, nil
	}
	return nil, fmt.Errorf("%s: unsupported design file type", path)
}

func joinEvalErrors(evalErrs []engine.EvalError) error {
	errs := make([]error, len(evalErrs))
	for i, e := range evalErrs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Build generates the mesh for d.
func (a *App) Build(d *vessel.Design) (*tessellate.Result, error) {
	res, err := a.gen.Generate(*d)
	if err != nil {
		return nil, err
	}
	a.log.Debug("mesh generated",
		zap.String("design", d.Name),
		zap.Int("vertices", res.Mesh.VertexCount()),
		zap.Int("triangles", res.Mesh.TriangleCount()))
	return res, nil
}

// Evaluate runs script source through the whole pipeline. A script that
// defines no vessel yields a nil result and no error.
func (a *App) Evaluate(source string) (*tessellate.Result, []engine.EvalError, error) {
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate fatal error", zap.Error(err))
		return nil, nil, err
	}
	if len(evalErrs) > 0 || d == nil {
		return nil, evalErrs, nil
	}
	res, err := a.Build(d)
	if err != nil {
		return nil, nil, err
	}
	return res, nil, nil
}
