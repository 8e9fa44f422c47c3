// Package hexfilter finds CSS filter chains that recolor black into a
// target color.
package hexfilter

import (
	"fmt"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/config"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/jsvensson/hexfilter/internal/solver"
)

// Conversion is the outcome of converting one color.
type Conversion struct {
	Name   string
	Target *color.Color
	search.Result
}

// Rendered returns the color the result's filter chain produces.
func (c Conversion) Rendered() *color.Color {
	return c.Values.Render()
}

// Convert decodes hex and searches for a filter chain that reproduces it.
// Invalid input fails with an error wrapping color.ErrInvalidColor.
func Convert(hex string, opts search.Options, solverOpts ...solver.Option) (Conversion, error) {
	target, err := color.ParseHex(hex)
	if err != nil {
		return Conversion{}, err
	}
	return ConvertColor(target, opts, solverOpts...)
}

// ConvertColor searches for a filter chain that reproduces target.
func ConvertColor(target *color.Color, opts search.Options, solverOpts ...solver.Option) (Conversion, error) {
	result, err := search.Run(solver.New(target, solverOpts...), opts)
	if err != nil {
		return Conversion{}, fmt.Errorf("searching for %s: %w", target, err)
	}
	return Conversion{Target: target.Clone(), Result: result}, nil
}

// ConvertAll converts every color of cfg in source order. Each color gets
// its own solver.
func ConvertAll(cfg *config.Config, opts search.Options, solverOpts ...solver.Option) ([]Conversion, error) {
	out := make([]Conversion, 0, len(cfg.Colors))
	for _, nc := range cfg.Colors {
		conv, err := ConvertColor(nc.Color, opts, solverOpts...)
		if err != nil {
			return nil, fmt.Errorf("colors.%s: %w", nc.Name, err)
		}
		conv.Name = nc.Name
		out = append(out, conv)
	}
	return out, nil
}
