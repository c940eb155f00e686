package engine

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateWithoutVessel(t *testing.T) {
	sources := map[string]string{
		"empty":            "",
		"whitespace":       "   \n\t  \n  ",
		"plain arithmetic": "(+ 1 2)",
		"definitions only": "(def rim 40)\n(def foot (* rim 2))\n(+ rim foot)",
		"comment only":     ";; a vessel will go here\n",
		"unused base":      "(base :outer-diameter 80 :wall-thickness 3 :height 8 :max-height 90)",
	}
	eng := NewEngine()
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			d, evalErrs, err := eng.Evaluate(src)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("unexpected eval errors: %v", evalErrs)
			}
			if d != nil {
				t.Errorf("expected no design, got %+v", d)
			}
		})
	}
}

func TestEvaluateScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unmatched paren", "(+ 1 2"},
		{"undefined symbol", "(+ 1 undefined-symbol)"},
		{"unclosed vessel", `(vessel "cup" :base (base :outer-diameter 80`},
		{"error on second line", "(def r 40)\n(pt r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewEngine()
			d, evalErrs, err := eng.Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if d != nil {
				t.Fatalf("expected nil design, got %+v", d)
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected at least one eval error")
			}
			if evalErrs[0].Message == "" {
				t.Error("eval error message should not be empty")
			}
			if evalErrs[0].Line > 0 {
				t.Logf("line=%d message=%q", evalErrs[0].Line, evalErrs[0].Message)
			}
		})
	}
}

func TestEvalErrorString(t *testing.T) {
	withLine := EvalError{Line: 5, Message: "pt requires exactly 2 arguments"}
	if got := withLine.Error(); got != "line 5: pt requires exactly 2 arguments" {
		t.Errorf("Error() = %q", got)
	}
	noLine := EvalError{Message: "no location"}
	if got := noLine.Error(); got != "no location" {
		t.Errorf("Error() = %q", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()

	first, _, err := eng.Evaluate(vaseSource)
	if err != nil || first == nil {
		t.Fatalf("first evaluation: design=%v err=%v", first, err)
	}
	for i := 0; i < 5; i++ {
		d, evalErrs, err := eng.Evaluate(vaseSource)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("iteration %d: err=%v evalErrs=%v", i, err, evalErrs)
		}
		if d == first {
			t.Fatalf("iteration %d: designs must not share storage", i)
		}
		if !d.Equal(*first) {
			t.Fatalf("iteration %d: design = %+v, want %+v", i, d, first)
		}
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Concurrent callers may supersede each other; either outcome
			// is fine as long as nothing races.
			d, _, err := eng.Evaluate(vaseSource)
			if err == nil && (d == nil || !d.Equal(wantVase())) {
				t.Errorf("design = %+v", d)
			}
		}()
	}
	wg.Wait()
}

func TestAwaitTimesOut(t *testing.T) {
	eng := NewEngine()
	eng.generation = 1
	ch := make(chan evalResult) // never sends

	start := time.Now()
	d, _, err := eng.await(ch, 1, 50*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got: %v", err)
	}
	if d != nil {
		t.Error("expected no design after a timeout")
	}
	if elapsed := time.Since(start); elapsed > EvalTimeout {
		t.Errorf("await took %s, want about 50ms", elapsed)
	}
}

func TestAwaitDiscardsStaleGeneration(t *testing.T) {
	eng := NewEngine()
	eng.generation = 2

	ch := make(chan evalResult, 1)
	d := wantVase()
	ch <- evalResult{design: &d}

	got, _, err := eng.await(ch, 1, time.Second)
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Fatalf("expected superseded error, got: %v", err)
	}
	if got != nil {
		t.Error("stale design must be discarded")
	}
}

func TestAwaitReturnsCurrentResult(t *testing.T) {
	eng := NewEngine()
	eng.generation = 3

	ch := make(chan evalResult, 1)
	d := wantVase()
	ch <- evalResult{design: &d}

	got, evalErrs, err := eng.await(ch, 3, time.Second)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("err=%v evalErrs=%v", err, evalErrs)
	}
	if got == nil || !got.Equal(wantVase()) {
		t.Errorf("design = %+v", got)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"error on line 12: missing paren", 12, "missing paren"},
		{"line 3: base: missing :height", 3, "base: missing :height"},
		{"some generic error", 0, "some generic error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
