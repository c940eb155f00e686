package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/potter/pkg/vessel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a control point returned from `pt`.
type sexpPoint struct {
	p vessel.ControlPoint
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", s.p.X, s.p.Y)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpBase wraps the base parameters returned from `base`.
type sexpBase struct {
	b vessel.BaseParameters
}

func (s *sexpBase) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(base :outer-diameter %g :wall-thickness %g :height %g :max-height %g)",
		s.b.OuterDiameter, s.b.WallThickness, s.b.Height, s.b.MaxHeight)
}
func (s *sexpBase) Type() *zygo.RegisteredType { return nil }

// sexpVessel is the value of a `vessel` form.
type sexpVessel struct {
	d vessel.Design
}

func (s *sexpVessel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vessel %q :points %d)", s.d.Name, len(s.d.ControlPoints))
}
func (s *sexpVessel) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// unknownKeywords returns an error naming the first keyword not in allowed.
func (a kwArgs) unknownKeywords(fn string, allowed ...string) error {
	for name := range a.kw {
		found := false
		for _, k := range allowed {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: unknown keyword :%s", fn, name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toPoint accepts a `pt` value or a two-number list or array.
func toPoint(s zygo.Sexp) (vessel.ControlPoint, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 2 {
		return vessel.ControlPoint{}, fmt.Errorf("expected (pt x y) or [x y], got %s", s.SexpString(nil))
	}
	x, err := toFloat64(items[0])
	if err != nil {
		return vessel.ControlPoint{}, fmt.Errorf("x: %w", err)
	}
	y, err := toFloat64(items[1])
	if err != nil {
		return vessel.ControlPoint{}, fmt.Errorf("y: %w", err)
	}
	return vessel.ControlPoint{X: x, Y: y}, nil
}

// toBase extracts base parameters from a `base` value.
func toBase(s zygo.Sexp) (vessel.BaseParameters, error) {
	if b, ok := s.(*sexpBase); ok {
		return b.b, nil
	}
	return vessel.BaseParameters{}, fmt.Errorf("expected (base ...), got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector receives the vessels defined while a script runs.
type collector struct {
	designs []vessel.Design
}

// baseKeywords maps base keywords to the field they set.
var baseKeywords = []struct {
	kw  string
	set func(*vessel.BaseParameters, float64)
}{
	{"outer-diameter", func(b *vessel.BaseParameters, v float64) { b.OuterDiameter = v }},
	{"wall-thickness", func(b *vessel.BaseParameters, v float64) { b.WallThickness = v }},
	{"height", func(b *vessel.BaseParameters, v float64) { b.Height = v }},
	{"max-height", func(b *vessel.BaseParameters, v float64) { b.MaxHeight = v }},
}

// registerBuiltins installs the vessel DSL into a zygomys environment.
// Source must go through preprocessSource first so that :keyword tokens
// reach the builtins as recognizable strings.
func registerBuiltins(env *zygo.Zlisp, c *collector) {
	// -----------------------------------------------------------------------
	// (pt x y)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{p: vessel.ControlPoint{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (base :outer-diameter 100 :wall-thickness 5 :height 20 :max-height 200)
	// -----------------------------------------------------------------------
	env.AddFunction("base", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := parseArgs(args)
		if len(a.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("base takes keyword arguments only")
		}
		var b vessel.BaseParameters
		allowed := make([]string, 0, len(baseKeywords))
		for _, f := range baseKeywords {
			allowed = append(allowed, f.kw)
			v, ok := a.kw[f.kw]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("base: missing :%s", f.kw)
			}
			n, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("base: %s: %w", f.kw, err)
			}
			f.set(&b, n)
		}
		if err := a.unknownKeywords("base", allowed...); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpBase{b: b}, nil
	})

	// -----------------------------------------------------------------------
	// (vessel "name" :base b :points (list (pt 50 0) (pt 40 60) ...))
	// -----------------------------------------------------------------------
	env.AddFunction("vessel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := parseArgs(args)
		if err := a.unknownKeywords("vessel", "base", "points"); err != nil {
			return zygo.SexpNull, err
		}

		var d vessel.Design
		if len(a.positional) > 1 {
			return zygo.SexpNull, fmt.Errorf("vessel takes at most one positional name, got %d", len(a.positional))
		}
		if len(a.positional) == 1 {
			n, err := toString(a.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vessel: name: %w", err)
			}
			d.Name = n
		}

		bv, ok := a.kw["base"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("vessel: missing :base")
		}
		b, err := toBase(bv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vessel: base: %w", err)
		}
		d.Base = b

		if pv, ok := a.kw["points"]; ok {
			items, err := sexpListToSlice(pv)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vessel: points: %w", err)
			}
			for i, item := range items {
				p, err := toPoint(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("vessel: point %d: %w", i, err)
				}
				d.ControlPoints = append(d.ControlPoints, p)
			}
		}

		c.designs = append(c.designs, d)
		return &sexpVessel{d: d}, nil
	})
}
