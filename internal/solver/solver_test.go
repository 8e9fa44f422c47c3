package solver

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/filter"
)

func mustParse(t *testing.T, hex string) *color.Color {
	t.Helper()
	c, err := color.ParseHex(hex)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestLossExactChains(t *testing.T) {
	tests := []struct {
		name   string
		target string
		values filter.Values
	}{
		{"black is the base", "#000", filter.Values{0, 0, 100, 0, 100, 100}},
		{"white is a full invert", "#fff", filter.Values{100, 0, 100, 0, 100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(mustParse(t, tt.target), WithSeed(1))
			if got := s.Loss(tt.values); math.Abs(got) > 1e-9 {
				t.Errorf("Loss() = %v, want 0", got)
			}
		})
	}
}

func TestLossPenalisesDistance(t *testing.T) {
	s := New(mustParse(t, "#fff"), WithSeed(1))
	full := s.Loss(filter.Values{100, 0, 100, 0, 100, 100})
	half := s.Loss(filter.Values{50, 0, 100, 0, 100, 100})
	none := s.Loss(filter.Values{0, 0, 100, 0, 100, 100})

	if !(full < half && half < none) {
		t.Errorf("loss should grow with distance: full=%v half=%v none=%v", full, half, none)
	}
}

func TestSolveIsDeterministicForSeed(t *testing.T) {
	target := mustParse(t, "#eb6f92")

	a := New(target, WithSeed(42)).Solve()
	b := New(target, WithSeed(42)).Solve()

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different candidates (-a +b):\n%s", diff)
	}
}

func TestSolveCandidateIsConsistent(t *testing.T) {
	for _, hex := range []string{"#eb6f92", "#03f", "#1a7f37", "#f6c177"} {
		t.Run(hex, func(t *testing.T) {
			s := New(mustParse(t, hex), WithSeed(7))
			got := s.Solve()

			if got.Loss < 0 || math.IsInf(got.Loss, 0) || math.IsNaN(got.Loss) {
				t.Fatalf("Loss = %v, want a finite non-negative value", got.Loss)
			}
			if diff := math.Abs(s.Loss(got.Values) - got.Loss); diff > 1e-9 {
				t.Errorf("reported loss %v does not match the loss of its values (%v)", got.Loss, s.Loss(got.Values))
			}
			if got.Filter != got.Values.Declaration() {
				t.Errorf("Filter = %q, want %q", got.Filter, got.Values.Declaration())
			}
			for i, v := range got.Values {
				if v < 0 || v > filter.Max(i) {
					t.Errorf("value %d = %v outside [0, %v]", i, v, filter.Max(i))
				}
			}
		})
	}
}

func TestNewCopiesTarget(t *testing.T) {
	target := mustParse(t, "#000")
	s := New(target, WithSeed(1))
	target.Set(255, 255, 255)

	if got := s.Loss(filter.Values{0, 0, 100, 0, 100, 100}); math.Abs(got) > 1e-9 {
		t.Errorf("solver saw a mutation of its target, loss = %v", got)
	}
}
