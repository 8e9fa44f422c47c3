package lsp

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/config"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "hexfilter"

// AnalysisResult holds all information produced by analyzing a config file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Symbols     map[string]protocol.Range // "colors.brand" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Name  string
	Range protocol.Range
	Color *color.Color
	IsRef bool // true if the expression is not a plain literal
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses config content from memory and produces diagnostics, a
// symbol table and color locations. It collects all errors rather than
// stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	for _, attr := range body.Attributes {
		result.analyzeSetting(attr)
	}

	seen := false
	for _, block := range body.Blocks {
		if block.Type != "colors" {
			result.addError(block.DefRange(), fmt.Sprintf("unknown block %q (valid: colors)", block.Type))
			continue
		}
		if seen {
			result.addError(block.DefRange(), "duplicate colors block")
			continue
		}
		seen = true
		result.analyzeColors(block.Body)
	}

	return result
}

// analyzeSetting validates a top-level attribute.
func (r *AnalysisResult) analyzeSetting(attr *hclsyntax.Attribute) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", attr.Name, diags.Error()))
		return
	}

	switch attr.Name {
	case "precision":
		if val.Type() != cty.Number {
			r.addError(attr.Expr.Range(), "precision must be a number")
			return
		}
		if f, _ := val.AsBigFloat().Float64(); f < 0 {
			r.addError(attr.Expr.Range(), "precision must not be negative")
		}
	case "iterations", "seed":
		if val.Type() != cty.Number {
			r.addError(attr.Expr.Range(), attr.Name+" must be a number")
			return
		}
		f, _ := val.AsBigFloat().Float64()
		if f != math.Trunc(f) {
			r.addError(attr.Expr.Range(), attr.Name+" must be a whole number")
		} else if attr.Name == "iterations" && f < 1 {
			r.addError(attr.Expr.Range(), "iterations must be positive")
		} else if f < 0 {
			r.addError(attr.Expr.Range(), "seed must not be negative")
		}
	default:
		r.addWarning(attr.NameRange, fmt.Sprintf("unknown setting %q (valid: precision, iterations, seed)", attr.Name))
	}
}

// analyzeColors walks the colors block in source order so later entries can
// reference earlier ones.
func (r *AnalysisResult) analyzeColors(body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), "colors block cannot contain nested blocks")
	}

	resolved := make(map[string]*color.Color)
	for _, attr := range config.SortedAttributes(body) {
		symbol := "colors." + attr.Name
		r.Symbols[symbol] = hclRangeToLSP(attr.SrcRange)

		val, diags := attr.Expr.Value(config.EvalContext(resolved))
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", symbol, diags.Error()))
			continue
		}
		if val.Type() != cty.String {
			r.addError(attr.Expr.Range(), fmt.Sprintf("%s: expected a hex string, got %s", symbol, val.Type().FriendlyName()))
			continue
		}

		c, err := color.ParseHex(val.AsString())
		if err != nil {
			r.addError(attr.Expr.Range(), fmt.Sprintf("%s: %s", symbol, err.Error()))
			continue
		}

		resolved[attr.Name] = c
		r.Colors = append(r.Colors, ColorLocation{
			Name:  attr.Name,
			Range: hclRangeToLSP(attr.Expr.Range()),
			Color: c,
			IsRef: !isLiteralExpr(attr.Expr),
		})
	}
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// isLiteralExpr reports whether expr is a plain string literal.
func isLiteralExpr(expr hclsyntax.Expression) bool {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return true
	case *hclsyntax.TemplateExpr:
		return e.IsStringLiteral()
	default:
		return false
	}
}
