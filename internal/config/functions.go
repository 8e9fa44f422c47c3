package config

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EvalContext returns the context colors entries are evaluated in: already
// resolved entries under "colors" plus the brighten and darken functions.
func EvalContext(resolved map[string]*color.Color) *hcl.EvalContext {
	keys := make([]string, 0, len(resolved))
	for k := range resolved {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make(map[string]cty.Value, len(resolved))
	for _, k := range keys {
		vals[k] = cty.StringVal(resolved[k].Hex())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"colors": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"brighten": MakeLightnessFunc("Brightens a color by the given amount (0.0 to 1.0)", color.Brighten),
			"darken":   MakeLightnessFunc("Darkens a color by the given amount (0.0 to 1.0)", color.Darken),
		},
	}
}

// MakeLightnessFunc wraps a lightness adjustment as an HCL function.
// Usage: brighten("#hex", 0.1) or darken(colors.brand, 0.1)
func MakeLightnessFunc(description string, adjust func(*color.Color, float64) *color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(adjust(c, amount).Hex()), nil
		},
	})
}
