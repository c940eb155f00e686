package tessellate

import (
	"sync"

	"github.com/chazu/potter/pkg/vessel"
)

// Generator memoizes the most recent Generate call for callers that
// regenerate on every edit, such as a live preview. It is safe for
// concurrent use.
type Generator struct {
	opts Options

	mu     sync.Mutex
	last   *vessel.Design
	result *Result
	hits   int
}

// NewGenerator returns a Generator that builds with opts.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate returns the cached result when d equals the previous design,
// and builds and caches a new one otherwise. Errors are not cached.
func (g *Generator) Generate(d vessel.Design) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.last != nil && g.last.Equal(d) {
		g.hits++
		return g.result, nil
	}

	res, err := Generate(d, g.opts)
	if err != nil {
		return nil, err
	}
	c := d.Clone()
	g.last = &c
	g.result = res
	return res, nil
}

// Hits returns how many calls were served from the cache.
func (g *Generator) Hits() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hits
}
