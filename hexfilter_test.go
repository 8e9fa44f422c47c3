package hexfilter

import (
	"errors"
	"testing"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/config"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/jsvensson/hexfilter/internal/solver"
)

func TestConvertInvalidColor(t *testing.T) {
	for _, hex := range []string{"", "#12", "#1234567", "#ggg", "red"} {
		t.Run(hex, func(t *testing.T) {
			_, err := Convert(hex, search.Options{Precision: 0.5, Iterations: 1})
			if !errors.Is(err, color.ErrInvalidColor) {
				t.Errorf("Convert(%q) error = %v, want ErrInvalidColor", hex, err)
			}
		})
	}
}

func TestConvertInvalidOptions(t *testing.T) {
	_, err := Convert("#fff", search.Options{Precision: 0.5, Iterations: 0})
	if !errors.Is(err, search.ErrInvalidOptions) {
		t.Errorf("Convert() error = %v, want ErrInvalidOptions", err)
	}
}

func TestConvertIsReproducible(t *testing.T) {
	opts := search.Options{Precision: search.NoPrecision, Iterations: 1}

	a, err := Convert("#eb6f92", opts, solver.WithSeed(3))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	b, err := Convert("eb6f92", opts, solver.WithSeed(3))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if a.Filter != b.Filter || a.Loss != b.Loss {
		t.Errorf("same seed gave %q (%v) and %q (%v)", a.Filter, a.Loss, b.Filter, b.Loss)
	}
	if a.Target.String() != "rgb(235, 111, 146)" {
		t.Errorf("Target = %s", a.Target)
	}
	if a.Stop != search.StopInitial {
		t.Errorf("Stop = %v, want %v", a.Stop, search.StopInitial)
	}
}

func TestConvertWhite(t *testing.T) {
	// white is reachable with a full invert, so the search should get close quickly
	conv, err := Convert("#fff", search.Options{Precision: 5, Iterations: 20}, solver.WithSeed(11))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if conv.Loss < 0 {
		t.Errorf("Loss = %v, want non-negative", conv.Loss)
	}
	if conv.Rendered() == nil {
		t.Fatal("Rendered() returned nil")
	}
}

func TestConvertAll(t *testing.T) {
	cfg, err := config.Parse([]byte(`
colors {
  brand = "#ff6600"
  dark  = darken(colors.brand, 0.2)
}
`), "test.hcl")
	if err != nil {
		t.Fatal(err)
	}

	convs, err := ConvertAll(cfg, search.Options{Precision: search.NoPrecision, Iterations: 1}, solver.WithSeed(5))
	if err != nil {
		t.Fatalf("ConvertAll() error: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("got %d conversions, want 2", len(convs))
	}
	if convs[0].Name != "brand" || convs[1].Name != "dark" {
		t.Errorf("names = %q, %q; want brand, dark", convs[0].Name, convs[1].Name)
	}
	if convs[0].Target.Hex() != "#ff6600" {
		t.Errorf("brand target = %s", convs[0].Target.Hex())
	}
}
