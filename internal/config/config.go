package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/zclconf/go-cty/cty"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "hexfilter.hcl"

// Defaults for the command line options.
const (
	DefaultPrecision  = "0.5"
	DefaultIterations = "1000"
)

// ErrInvalidOption is returned when a precision or iteration count cannot be parsed.
var ErrInvalidOption = errors.New("invalid option")

// ParseOptions validates the string-typed command line options.
// An empty precision disables the improvement loop.
func ParseOptions(precision, iterations string) (search.Options, error) {
	opts := search.Options{Precision: search.NoPrecision}

	if precision != "" {
		p, err := strconv.ParseFloat(precision, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return search.Options{}, fmt.Errorf("%w: precision %q must be a non-negative number", ErrInvalidOption, precision)
		}
		opts.Precision = p
	}

	n, err := strconv.Atoi(iterations)
	if err != nil || n < 1 {
		return search.Options{}, fmt.Errorf("%w: iterations %q must be a positive integer", ErrInvalidOption, iterations)
	}
	opts.Iterations = n

	return opts, nil
}

// Config is a decoded hexfilter.hcl file. Unset attributes are nil.
type Config struct {
	Precision  *float64
	Iterations *int
	Seed       *uint64
	Colors     []NamedColor
}

// NamedColor is an entry of the colors block, in source order.
type NamedColor struct {
	Name  string
	Color *color.Color
	Range hcl.Range
}

// Options overlays the file's precision and iterations on base.
func (c *Config) Options(base search.Options) (search.Options, error) {
	if c.Precision != nil {
		if *c.Precision < 0 {
			return search.Options{}, fmt.Errorf("%w: precision %v must be a non-negative number", ErrInvalidOption, *c.Precision)
		}
		base.Precision = *c.Precision
	}
	if c.Iterations != nil {
		if *c.Iterations < 1 {
			return search.Options{}, fmt.Errorf("%w: iterations %d must be a positive integer", ErrInvalidOption, *c.Iterations)
		}
		base.Iterations = *c.Iterations
	}
	return base, nil
}

// fileSchema is the top level of a config file.
type fileSchema struct {
	Precision  *float64     `hcl:"precision,optional"`
	Iterations *int         `hcl:"iterations,optional"`
	Seed       *uint64      `hcl:"seed,optional"`
	Colors     *ColorsBlock `hcl:"colors,block"`
}

// ColorsBlock captures the colors block for manual, source-ordered evaluation.
type ColorsBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// Load reads and decodes a config file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes config file content. filename is only used in messages.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg := &Config{
		Precision:  raw.Precision,
		Iterations: raw.Iterations,
		Seed:       raw.Seed,
	}
	if raw.Colors == nil {
		return cfg, nil
	}

	body, ok := raw.Colors.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("colors block is not an hclsyntax.Body")
	}
	if len(body.Blocks) > 0 {
		return nil, fmt.Errorf("colors block cannot contain nested blocks (found %q)", body.Blocks[0].Type)
	}

	resolved := make(map[string]*color.Color, len(body.Attributes))
	for _, attr := range SortedAttributes(body) {
		val, diags := attr.Expr.Value(EvalContext(resolved))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating colors.%s: %s", attr.Name, diags.Error())
		}
		if val.Type() != cty.String {
			return nil, fmt.Errorf("colors.%s: expected a hex string, got %s", attr.Name, val.Type().FriendlyName())
		}
		c, err := color.ParseHex(val.AsString())
		if err != nil {
			return nil, fmt.Errorf("colors.%s: %w", attr.Name, err)
		}
		resolved[attr.Name] = c
		cfg.Colors = append(cfg.Colors, NamedColor{Name: attr.Name, Color: c, Range: attr.SrcRange})
	}

	return cfg, nil
}

// SortedAttributes returns the attributes of body in source order.
func SortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}
