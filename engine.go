package hexfilter

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/hexfilter/internal/color"
)

// Engine renders Go templates against a set of conversions, e.g. to emit a
// stylesheet with one class per color.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Only         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given conversions, and writes output files.
func (e *Engine) Run(convs []Conversion) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(convs)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Only) == 0 {
		return true
	}
	return slices.Contains(e.Only, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Conversions []Conversion
	ByName      map[string]Conversion
	FuncMap     template.FuncMap
}

// lookup resolves a color name to its conversion.
func lookup(name string, data templateData) (Conversion, error) {
	conv, ok := data.ByName[name]
	if !ok {
		return Conversion{}, fmt.Errorf("color %q not found", name)
	}
	return conv, nil
}

func buildTemplateData(convs []Conversion) templateData {
	data := templateData{
		Conversions: convs,
		ByName:      make(map[string]Conversion, len(convs)),
	}
	for _, c := range convs {
		data.ByName[c.Name] = c
	}

	data.FuncMap = template.FuncMap{
		"filter": func(name string) (string, error) {
			conv, err := lookup(name, data)
			if err != nil {
				return "", err
			}
			return conv.Values.CSS(), nil
		},
		"css": func(c Conversion) string {
			return c.Values.CSS()
		},
		"declaration": func(c Conversion) string {
			return c.Values.Declaration()
		},
		"loss": func(c Conversion) string {
			return fmt.Sprintf("%.1f", c.Loss)
		},
		"hex": func(c *color.Color) string {
			return c.Hex()
		},
		"rgb": func(c *color.Color) string {
			return c.String()
		},
	}
	return data
}
