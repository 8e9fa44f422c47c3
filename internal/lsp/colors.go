package lsp

import (
	"strings"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c *color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R() / 255),
		Green: float32(c.G() / 255),
		Blue:  float32(c.B() / 255),
		Alpha: 1.0,
	}
}

// colorFromLSP converts a protocol.Color back to a color, dropping alpha.
func colorFromLSP(c protocol.Color) *color.Color {
	return color.New(float64(c.Red)*255, float64(c.Green)*255, float64(c.Blue)*255)
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation produces presentation options for a picked color.
// Hex literals get a TextEdit replacing the old value. Computed values such
// as colors.* references or brighten/darken calls are left alone.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	hexStr := colorFromLSP(params.Color).Hex()
	text := extractText(content, params.Range)

	if !strings.HasPrefix(text, "\"") && !strings.HasPrefix(text, "#") {
		return []protocol.ColorPresentation{}
	}

	newText := hexStr
	if strings.HasPrefix(text, "\"") {
		newText = "\"" + hexStr + "\""
	}

	return []protocol.ColorPresentation{
		{
			Label: hexStr,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
			},
		},
	}
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
