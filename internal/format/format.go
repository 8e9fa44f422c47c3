package format

import (
	"math"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
var hexLiteral = regexp.MustCompile(`"#?(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})"`)

// Format takes hexfilter config content and returns it in canonical style:
// hclwrite layout, at most one blank line in a row, no blank lines just
// inside braces, and lowercase hex color literals.
//
// The formatter works on partial/invalid HCL as well.
func Format(content string) (string, error) {
	formatted := string(hclwrite.Format([]byte(content)))
	formatted = multipleBlankLines.ReplaceAllString(formatted, "\n\n")
	formatted = blankLineAfterOpenBrace.ReplaceAllString(formatted, "{\n")
	formatted = blankLineBeforeCloseBrace.ReplaceAllString(formatted, "\n${1}")
	formatted = hexLiteral.ReplaceAllStringFunc(formatted, strings.ToLower)
	return formatted, nil
}

// Entry is one converted color in a results document.
type Entry struct {
	Name     string
	Target   string // hex of the requested color
	Rendered string // hex of the color the filter produces
	Loss     float64
	CSS      string
}

// Results renders entries as an HCL document with one labelled filter block
// per entry, in the given order.
func Results(entries []Entry) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, e := range entries {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("filter", []string{e.Name})
		b := block.Body()
		b.SetAttributeValue("color", cty.StringVal(e.Target))
		b.SetAttributeValue("rendered", cty.StringVal(e.Rendered))
		b.SetAttributeValue("loss", cty.NumberFloatVal(math.Round(e.Loss*10)/10))
		b.SetAttributeValue("css", cty.StringVal(e.CSS))
	}

	return hclwrite.Format(f.Bytes())
}
