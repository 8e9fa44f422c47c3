package lsp

import (
	"sync"

	"github.com/jsvensson/hexfilter"
	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/jsvensson/hexfilter/internal/solver"
)

// hoverIterations bounds the search run for a hover so it stays responsive.
const hoverIterations = 20

// filterCache memoizes filter declarations by hex value. Searches use a
// fixed seed so a color always hovers with the same filter.
type filterCache struct {
	mu      sync.Mutex
	seed    uint64
	entries map[string]string
}

func newFilterCache(seed uint64) *filterCache {
	return &filterCache{seed: seed, entries: make(map[string]string)}
}

// Declaration returns the filter declaration for c, computing it on first use.
func (f *filterCache) Declaration(c *color.Color) string {
	key := c.Hex()

	f.mu.Lock()
	defer f.mu.Unlock()
	if decl, ok := f.entries[key]; ok {
		return decl
	}

	opts := search.Options{Precision: 1, Iterations: hoverIterations}
	conv, err := hexfilter.ConvertColor(c, opts, solver.WithSeed(f.seed))
	if err != nil {
		log.Errorf("converting %s: %s", key, err)
		return ""
	}
	log.Debugf("%s: loss %.1f after %d iterations", key, conv.Loss, conv.Iterations)

	f.entries[key] = conv.Filter
	return conv.Filter
}
