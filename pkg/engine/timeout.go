package engine

import (
	"fmt"
	"time"

	"github.com/chazu/potter/pkg/vessel"
)

// EvalTimeout bounds a single script evaluation.
const EvalTimeout = 5 * time.Second

// evalResult carries the outcome of one evaluation goroutine.
type evalResult struct {
	design *vessel.Design
	errors []EvalError
	err    error
}

// current reports whether gen is still the newest evaluation.
func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation == gen
}

// await returns the result of evaluation gen, or an error once timeout
// elapses. A script that loops forever keeps its goroutine; a later
// Evaluate bumps the generation, so that result is dropped if it ever
// arrives. A result overtaken by a newer Evaluate call is dropped too.
func (e *Engine) await(ch <-chan evalResult, gen uint64, timeout time.Duration) (*vessel.Design, []EvalError, error) {
	select {
	case res := <-ch:
		if !e.current(gen) {
			return nil, nil, fmt.Errorf("engine: evaluation %d superseded by newer request", gen)
		}
		return res.design, res.errors, res.err
	case <-time.After(timeout):
		return nil, nil, fmt.Errorf("engine: evaluation timed out after %s", timeout)
	}
}
