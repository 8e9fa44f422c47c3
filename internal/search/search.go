// Package search runs a candidate generator repeatedly and keeps the best
// filter chain it produces.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsvensson/hexfilter/internal/filter"
	"github.com/tliron/commonlog"
)

// NoPrecision disables the improvement loop: the first candidate is returned.
const NoPrecision = -1.0

// progressEvery is how often the improvement loop reports progress.
const progressEvery = 50

// ErrInvalidOptions is returned by Run for options that cannot drive a search.
var ErrInvalidOptions = errors.New("invalid search options")

var log = commonlog.GetLogger("hexfilter.search")

// Candidate is a single proposal from a Generator.
type Candidate struct {
	Loss   float64
	Values filter.Values
	Filter string
}

// Generator proposes candidates for a target fixed at construction time.
// Successive calls are expected to explore different candidates.
type Generator interface {
	Solve() Candidate
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() Candidate

// Solve calls f.
func (f GeneratorFunc) Solve() Candidate { return f() }

// Options controls the improvement loop.
type Options struct {
	// Precision is the loss the search is satisfied with, or NoPrecision.
	Precision float64
	// Iterations caps the number of extra generator calls.
	Iterations int
}

// Validate reports whether o can drive a search.
func (o Options) Validate() error {
	if o.Precision < 0 && o.Precision != NoPrecision {
		return fmt.Errorf("%w: precision %v is negative", ErrInvalidOptions, o.Precision)
	}
	if o.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidOptions, o.Iterations)
	}
	return nil
}

// StopReason tells why a search ended.
type StopReason int

const (
	// StopInitial means the first candidate was accepted without looping.
	StopInitial StopReason = iota
	// StopExactMatch means a rounded loss equalled the precision.
	StopExactMatch
	// StopThreshold means a rounded loss was at or below the precision.
	StopThreshold
	// StopExhausted means the iteration cap was reached.
	StopExhausted
)

func (r StopReason) String() string {
	switch r {
	case StopInitial:
		return "initial"
	case StopExactMatch:
		return "exact match"
	case StopThreshold:
		return "threshold"
	case StopExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is the outcome of Run.
type Result struct {
	Candidate
	// Iterations is the number of generator calls made by the improvement loop.
	Iterations int
	Stop       StopReason
}

// Severity returns the classification of the result's loss.
func (r Result) Severity() Severity {
	return Classify(r.Loss)
}

// Run asks gen for an initial candidate and, unless it already satisfies
// opts.Precision, keeps asking for up to opts.Iterations more. On the final
// scheduled iteration the best candidate seen so far replaces the fresh
// sample, so an exhausted search never returns a worse result than it saw.
func Run(gen Generator, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	result := gen.Solve()
	if opts.Precision == NoPrecision || result.Loss <= opts.Precision {
		return Result{Candidate: result, Stop: StopInitial}, nil
	}

	best := result
	stop := StopExhausted
	i := 0
	for ; i < opts.Iterations; i++ {
		if i != 0 && i%progressEvery == 0 {
			log.Infof("trying to find a better result (attempt %d)", i)
		}

		result = gen.Solve()
		result.Loss = roundLoss(result.Loss)

		if i+1 == opts.Iterations {
			log.Info("iteration limit reached, returning the best result found")
			result = best
		}

		if result.Loss == opts.Precision {
			log.Infof("found an exact match in %d iterations", i+1)
			stop = StopExactMatch
			break
		}

		if result.Loss < best.Loss {
			best = result
		}

		if result.Loss <= opts.Precision {
			stop = StopThreshold
			break
		}
	}

	calls := i + 1
	if calls > opts.Iterations {
		calls = opts.Iterations
	}
	return Result{Candidate: result, Iterations: calls, Stop: stop}, nil
}

// roundLoss rounds a loss to one decimal place.
func roundLoss(loss float64) float64 {
	return math.Round(loss*10) / 10
}
