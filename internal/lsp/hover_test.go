package lsp

import (
	"strings"
	"testing"

	"github.com/jsvensson/hexfilter/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const hoverConfig = `colors {
  brand = "#ff6600"
  hover = darken(colors.brand, 0.1)
}
`

func hoverText(t *testing.T, h *protocol.Hover) string {
	t.Helper()
	if h == nil {
		t.Fatal("expected non-nil hover")
	}
	mc, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("expected MarkupContent, got %T", h.Contents)
	}
	if mc.Kind != protocol.MarkupKindMarkdown {
		t.Errorf("expected markdown kind, got %q", mc.Kind)
	}
	return mc.Value
}

func TestHover_HexLiteral(t *testing.T) {
	result := Analyze("test.hcl", hoverConfig)

	// inside "#ff6600" on line 1
	h := hover(result, hoverConfig, protocol.Position{Line: 1, Character: 13}, nil)
	got := hoverText(t, h)

	for _, want := range []string{"#ff6600", "rgb(255, 102, 0)", "hsl(24, 100%, 50%)"} {
		if !strings.Contains(got, want) {
			t.Errorf("hover content missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "**") {
		t.Errorf("literal hover should not show source text:\n%s", got)
	}
	if *h.Range != result.Colors[0].Range {
		t.Errorf("hover range = %v, want %v", *h.Range, result.Colors[0].Range)
	}
}

func TestHover_Reference(t *testing.T) {
	result := Analyze("test.hcl", hoverConfig)

	h := hover(result, hoverConfig, protocol.Position{Line: 2, Character: 12}, nil)
	got := hoverText(t, h)

	if !strings.Contains(got, "**darken(colors.brand, 0.1)**") {
		t.Errorf("hover content should show source text:\n%s", got)
	}
	if !strings.Contains(got, "#cc5200") {
		t.Errorf("hover content should contain resolved hex:\n%s", got)
	}
}

func TestHover_Filter(t *testing.T) {
	result := Analyze("test.hcl", hoverConfig)

	var asked []string
	filterFor := func(c *color.Color) string {
		asked = append(asked, c.Hex())
		return "filter: invert(1%);"
	}

	got := hoverText(t, hover(result, hoverConfig, protocol.Position{Line: 1, Character: 13}, filterFor))
	if !strings.Contains(got, "```css\nfilter: invert(1%);\n```") {
		t.Errorf("hover content should contain the filter block:\n%s", got)
	}
	if len(asked) != 1 || asked[0] != "#ff6600" {
		t.Errorf("filter requested for %v, want [#ff6600]", asked)
	}
}

func TestHover_Outside(t *testing.T) {
	result := Analyze("test.hcl", hoverConfig)

	tests := []protocol.Position{
		{Line: 0, Character: 2},  // "colors"
		{Line: 1, Character: 3},  // attribute name
		{Line: 1, Character: 19}, // end of literal is exclusive
		{Line: 9, Character: 0},  // past end of document
	}
	for _, pos := range tests {
		if h := hover(result, hoverConfig, pos, nil); h != nil {
			t.Errorf("hover at %v = %+v, want nil", pos, h)
		}
	}
}

func TestHover_NilResult(t *testing.T) {
	if h := hover(nil, "", protocol.Position{}, nil); h != nil {
		t.Errorf("expected nil hover, got %+v", h)
	}
}

func TestPosInRange(t *testing.T) {
	r := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 2, Character: 3},
	}

	tests := []struct {
		pos  protocol.Position
		want bool
	}{
		{protocol.Position{Line: 0, Character: 5}, false},
		{protocol.Position{Line: 1, Character: 3}, false},
		{protocol.Position{Line: 1, Character: 4}, true},
		{protocol.Position{Line: 1, Character: 80}, true},
		{protocol.Position{Line: 2, Character: 2}, true},
		{protocol.Position{Line: 2, Character: 3}, false},
		{protocol.Position{Line: 3, Character: 0}, false},
	}
	for _, tt := range tests {
		if got := posInRange(tt.pos, r); got != tt.want {
			t.Errorf("posInRange(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestExtractText(t *testing.T) {
	content := "line zero\nline one\nline two"

	tests := []struct {
		name string
		r    protocol.Range
		want string
	}{
		{
			name: "single line",
			r:    protocol.Range{Start: protocol.Position{Line: 1, Character: 5}, End: protocol.Position{Line: 1, Character: 8}},
			want: "one",
		},
		{
			name: "multi line",
			r:    protocol.Range{Start: protocol.Position{Line: 0, Character: 5}, End: protocol.Position{Line: 2, Character: 4}},
			want: "zero\nline one\nline",
		},
		{
			name: "clamped",
			r:    protocol.Range{Start: protocol.Position{Line: 2, Character: 5}, End: protocol.Position{Line: 2, Character: 50}},
			want: "two",
		},
		{
			name: "past end",
			r:    protocol.Range{Start: protocol.Position{Line: 7, Character: 0}, End: protocol.Position{Line: 7, Character: 1}},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText(content, tt.r); got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
