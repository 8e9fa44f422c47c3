// Package solver searches for filter chains that turn black into a target
// color, using simultaneous perturbation stochastic approximation (SPSA).
package solver

import (
	"math"
	"math/rand/v2"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/filter"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/tliron/commonlog"
)

const (
	wideRestarts   = 3
	wideIterations = 1000
	wideGoodEnough = 25.0

	narrowIterations = 500

	alpha = 1.0
	gamma = 1.0 / 6.0
)

// wideStart is the starting point of every wide search.
var wideStart = filter.Values{50, 20, 3750, 50, 100, 100}

var log = commonlog.GetLogger("hexfilter.solver")

// Solver generates filter candidates for a fixed target color.
// A Solver is not safe for concurrent use.
type Solver struct {
	target    *color.Color
	targetHSL color.HSL
	scratch   *color.Color
	rng       *rand.Rand
}

// Option configures a Solver.
type Option func(*Solver)

// WithRand makes the solver draw its perturbations from rng.
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		s.rng = rng
	}
}

// WithSeed makes the solver deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// New returns a Solver for target. The target is copied.
func New(target *color.Color, opts ...Option) *Solver {
	s := &Solver{
		target:    target.Clone(),
		targetHSL: target.HSL(),
		scratch:   filter.Base(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Solve runs a wide search followed by a narrow refinement and returns the
// resulting candidate.
func (s *Solver) Solve() search.Candidate {
	r := s.solveNarrow(s.solveWide())
	return search.Candidate{
		Loss:   r.loss,
		Values: r.values,
		Filter: r.values.Declaration(),
	}
}

// Loss measures how far values, applied to black, land from the target.
// It sums the absolute RGB and HSL differences.
func (s *Solver) Loss(values filter.Values) float64 {
	c := values.Apply(s.scratch.Set(0, 0, 0))
	hsl := c.HSL()

	return math.Abs(c.R()-s.target.R()) +
		math.Abs(c.G()-s.target.G()) +
		math.Abs(c.B()-s.target.B()) +
		math.Abs(hsl.H-s.targetHSL.H) +
		math.Abs(hsl.S-s.targetHSL.S) +
		math.Abs(hsl.L-s.targetHSL.L)
}

type solution struct {
	values filter.Values
	loss   float64
}

func (s *Solver) solveWide() solution {
	const A = 5.0
	const c = 15.0
	a := filter.Values{60, 180, 18000, 600, 1.2, 1.2}

	best := solution{loss: math.Inf(1)}
	for i := 0; best.loss > wideGoodEnough && i < wideRestarts; i++ {
		r := s.spsa(A, a, c, wideStart, wideIterations)
		log.Debugf("wide pass %d: loss %.2f", i+1, r.loss)
		if r.loss < best.loss {
			best = r
		}
	}
	return best
}

func (s *Solver) solveNarrow(wide solution) solution {
	A := wide.loss
	const c = 2.0
	A1 := A + 1
	a := filter.Values{0.25 * A1, 0.25 * A1, A1, 0.25 * A1, 0.2 * A1, 0.2 * A1}

	r := s.spsa(A, a, c, wide.values, narrowIterations)
	log.Debugf("narrow pass: loss %.2f", r.loss)
	return r
}

// spsa minimises Loss starting from values. The perturbation size decays as
// c/(k+1)^gamma and the step size as a[i]/(A+k+1)^alpha.
func (s *Solver) spsa(A float64, a filter.Values, c float64, values filter.Values, iters int) solution {
	best := solution{values: values, loss: math.Inf(1)}

	var deltas, high, low filter.Values
	for k := 0; k < iters; k++ {
		ck := c / math.Pow(float64(k+1), gamma)
		for i := range values {
			deltas[i] = -1
			if s.rng.Float64() > 0.5 {
				deltas[i] = 1
			}
			high[i] = values[i] + ck*deltas[i]
			low[i] = values[i] - ck*deltas[i]
		}

		lossDiff := s.Loss(high) - s.Loss(low)
		for i := range values {
			g := lossDiff / (2 * ck) * deltas[i]
			ak := a[i] / math.Pow(A+float64(k+1), alpha)
			values[i] = filter.Fix(i, values[i]-ak*g)
		}

		if loss := s.Loss(values); loss < best.loss {
			best = solution{values: values, loss: loss}
		}
	}
	return best
}
