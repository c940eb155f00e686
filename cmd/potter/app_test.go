package main

import (
	"errors"
	"os"
	"testing"

	"github.com/chazu/potter/internal/config"
	"github.com/chazu/potter/pkg/vessel"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

// TestE2EVaseExample exercises the full pipeline: script source → engine →
// design → tessellate → mesh.
func TestE2EVaseExample(t *testing.T) {
	app := newTestApp(t, config.Default())

	source, err := os.ReadFile("../../examples/vase.zy")
	if err != nil {
		t.Fatalf("failed to read vase.zy: %v", err)
	}

	res, evalErrs, err := app.Evaluate(string(source))
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	for _, e := range evalErrs {
		t.Errorf("eval error (line %d): %s", e.Line, e.Message)
	}
	if len(evalErrs) > 0 {
		t.FailNow()
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	m := res.Mesh
	if m.PartName != "vase" {
		t.Errorf("expected part name 'vase', got %q", m.PartName)
	}
	if len(m.Vertices) == 0 || len(m.Normals) != len(m.Vertices) || len(m.Indices) == 0 {
		t.Errorf("unexpected buffer sizes: %d vertices, %d normals, %d indices",
			len(m.Vertices), len(m.Normals), len(m.Indices))
	}
	if !m.IsWatertight() {
		t.Error("welded vase is not watertight")
	}
	if v := m.Volume(); v <= 0 {
		t.Errorf("volume = %v, want positive", v)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp(t, config.Default())
	for _, src := range []string{"", "   \n\t", ";; only a comment\n"} {
		res, evalErrs, err := app.Evaluate(src)
		if err != nil || len(evalErrs) > 0 {
			t.Errorf("Evaluate(%q): err=%v evalErrs=%v", src, err, evalErrs)
		}
		if res != nil {
			t.Errorf("Evaluate(%q): expected no result", src)
		}
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp(t, config.Default())
	res, evalErrs, err := app.Evaluate(`(vessel "test"`)
	if err != nil {
		t.Fatalf("expected eval errors, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if res != nil {
		t.Error("expected no result on error")
	}
}

// TestE2EInvalidDesign ensures invalid parameters surface as typed errors
// instead of placeholder geometry.
func TestE2EInvalidDesign(t *testing.T) {
	app := newTestApp(t, config.Default())
	source := `(vessel "flat" :base (base :outer-diameter 50 :wall-thickness 0 :height 30 :max-height 10)
  :points (list (pt 25 0) (pt 20 10)))`
	_, _, err := app.Evaluate(source)
	var perr *vessel.InvalidParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *vessel.InvalidParameterError", err)
	}
	if perr.Field != "wallThickness" {
		t.Errorf("Field = %q, want wallThickness", perr.Field)
	}

	_, _, err = app.Evaluate(`(vessel "dot" :base (base :outer-diameter 50 :wall-thickness 2 :height 3 :max-height 10) :points (list (pt 25 0)))`)
	var cerr *vessel.InsufficientControlPointsError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *vessel.InsufficientControlPointsError", err)
	}
}

// TestE2ERapidEvaluation evaluates the same source repeatedly and checks
// the meshes are identical.
func TestE2ERapidEvaluation(t *testing.T) {
	app := newTestApp(t, config.Default())
	source, err := os.ReadFile("../../examples/vase.zy")
	if err != nil {
		t.Fatal(err)
	}

	first, _, err := app.Evaluate(string(source))
	if err != nil || first == nil {
		t.Fatalf("first evaluation failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		res, evalErrs, err := app.Evaluate(string(source))
		if err != nil || len(evalErrs) > 0 || res == nil {
			t.Fatalf("iteration %d: err=%v evalErrs=%v", i, err, evalErrs)
		}
		if res != first {
			t.Errorf("iteration %d: expected the memoized result", i)
		}
	}
}

func TestLoadByExtension(t *testing.T) {
	app := newTestApp(t, config.Default())

	yamlDesign, err := app.Load("../../examples/cup.yaml")
	if err != nil {
		t.Fatalf("Load(cup.yaml) error = %v", err)
	}
	if yamlDesign.Name != "cup" || len(yamlDesign.ControlPoints) != 3 {
		t.Errorf("cup design = %+v", *yamlDesign)
	}

	script, err := app.Load("../../examples/vase.zy")
	if err != nil {
		t.Fatalf("Load(vase.zy) error = %v", err)
	}
	if script.Name != "vase" {
		t.Errorf("Name = %q, want vase", script.Name)
	}

	if _, err := app.Load("../../examples/vase.stl"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestMeshOptions(t *testing.T) {
	cfg := config.Default()
	opts, err := meshOptions(cfg)
	if err != nil {
		t.Fatalf("meshOptions() error = %v", err)
	}
	if opts.Kernel != nil {
		t.Error("lathe config must leave Kernel unset")
	}
	if !opts.WithWallThickness || opts.AngularSegments != cfg.Mesh.Segments {
		t.Errorf("opts = %+v", opts)
	}

	cfg.Kernel.Name = config.KernelSdfx
	opts, err = meshOptions(cfg)
	if err != nil {
		t.Fatalf("meshOptions() error = %v", err)
	}
	if opts.Kernel == nil || opts.Kernel.Name() != "sdfx" {
		t.Errorf("Kernel = %v, want sdfx", opts.Kernel)
	}

	cfg.Mesh.Joint = "glued"
	if _, err := meshOptions(cfg); err == nil {
		t.Error("expected error for unknown joint")
	}
}
