package hexfilter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/filter"
	"github.com/jsvensson/hexfilter/internal/search"
)

func testConversions() []Conversion {
	return []Conversion{
		{
			Name:   "white",
			Target: color.New(255, 255, 255),
			Result: search.Result{
				Candidate: search.Candidate{
					Loss:   0,
					Values: filter.Values{100, 0, 100, 0, 100, 100},
				},
			},
		},
		{
			Name:   "brand",
			Target: color.New(235, 111, 146),
			Result: search.Result{
				Candidate: search.Candidate{
					Loss:   2.34,
					Values: filter.Values{61, 49, 2391, 311.1 / 3.6, 96, 91},
				},
				Iterations: 12,
				Stop:       search.StopThreshold,
			},
		},
	}
}

func setupTemplateDir(t *testing.T, templates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func renderOne(t *testing.T, tmpl string) string {
	t.Helper()
	tmplDir := setupTemplateDir(t, map[string]string{"test.txt.tmpl": tmpl})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}
	if err := e.Run(testConversions()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "test.txt"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(content)
}

func TestRunStylesheet(t *testing.T) {
	got := renderOne(t, `{{ range .Conversions }}.icon-{{ .Name }} { {{ declaration . }} } /* {{ hex .Target }} loss {{ loss . }} */
{{ end }}`)

	wantLines := []string{
		".icon-white { filter: invert(100%) sepia(0%) saturate(100%) hue-rotate(0deg) brightness(100%) contrast(100%); } /* #ffffff loss 0.0 */",
		".icon-brand { filter: invert(61%) sepia(49%) saturate(2391%) hue-rotate(311deg) brightness(96%) contrast(91%); } /* #eb6f92 loss 2.3 */",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRunFilterFunc(t *testing.T) {
	got := renderOne(t, `{{ filter "white" }}`)
	want := "invert(100%) sepia(0%) saturate(100%) hue-rotate(0deg) brightness(100%) contrast(100%)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunRGBFunc(t *testing.T) {
	got := renderOne(t, `{{ rgb (index .ByName "brand").Target }}`)
	if want := "rgb(235, 111, 146)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunUnknownColor(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{"test.txt.tmpl": `{{ filter "missing" }}`})
	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}

	err := e.Run(testConversions())
	if err == nil || !strings.Contains(err.Error(), `color "missing" not found`) {
		t.Errorf("Run() error = %v, want unknown color error", err)
	}
}

func TestRunOnly(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"a.css.tmpl": "a",
		"b.css.tmpl": "b",
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
		Only:         []string{"a.css"},
	}
	if err := e.Run(testConversions()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "a.css")); err != nil {
		t.Error("a.css should exist")
	}
	if _, err := os.Stat(filepath.Join(outDir, "b.css")); err == nil {
		t.Error("b.css should not exist when filtered")
	}
}

func TestRunNoTemplates(t *testing.T) {
	e := &Engine{
		TemplatesDir: t.TempDir(),
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}
	if err := e.Run(testConversions()); err == nil {
		t.Error("expected error for empty templates dir")
	}
}

func TestLookup(t *testing.T) {
	data := buildTemplateData(testConversions())

	got, err := lookup("brand", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Loss != 2.34 {
		t.Errorf("Loss = %v, want 2.34", got.Loss)
	}

	if _, err := lookup("nope", data); err == nil {
		t.Error("expected error for unknown name")
	}
}
