// Package engine evaluates vessel scripts. It wraps zygomys in a sandboxed
// environment and produces a vessel.Design from user source code.
//
// A script builds its vessel with three forms:
//
//	(def b (base :outer-diameter 100 :wall-thickness 5 :height 20 :max-height 200))
//	(vessel "vase" :base b
//	  :points (list (pt 0 0) (pt 25 50) (pt 50 80) (pt 25 100)))
//
// Ordinary zygomys expressions (def, arithmetic, loops) may be used to
// compute the values.
package engine

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/potter/pkg/vessel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for vessel scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a vessel script and returns the vessel it defines. When
// the script defines several vessels the last one wins.
//
// Return semantics:
//   - On success: returns design + nil errors + nil error
//   - No vessel form (including empty source): nil design + nil + nil
//   - On parse/eval failure: returns nil design + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*vessel.Design, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		d, evalErrs, err := e.evaluate(source)
		ch <- evalResult{design: d, errors: evalErrs, err: err}
	}()

	return e.await(ch, gen, EvalTimeout)
}

// EvaluateFile reads and evaluates a script file. A script that defines
// no vessel is reported as an error. Without a name in the script, the
// design is named after the file.
func (e *Engine) EvaluateFile(path string) (*vessel.Design, []EvalError, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: %w", err)
	}
	d, evalErrs, err := e.Evaluate(string(src))
	if err != nil || len(evalErrs) > 0 {
		return nil, evalErrs, err
	}
	if d == nil {
		return nil, nil, fmt.Errorf("engine: %s: script defines no vessel", path)
	}
	if d.Name == "" {
		d.Name = vessel.NameFromPath(path)
	}
	return d, nil, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*vessel.Design, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	c := &collector{}
	registerBuiltins(env, c)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if len(c.designs) == 0 {
		return nil, nil, nil
	}
	d := c.designs[len(c.designs)-1]
	return &d, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
