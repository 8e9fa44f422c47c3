// Package report prints conversion results for people.
package report

import (
	"fmt"
	"io"

	"github.com/jsvensson/hexfilter/internal/color"
	"github.com/jsvensson/hexfilter/internal/search"
	"github.com/muesli/termenv"
)

// Printer writes results to a terminal, coloring the loss line by severity.
type Printer struct {
	out *termenv.Output
}

// NewPrinter returns a Printer writing to w. Colors are only emitted when w
// is a terminal that supports them, and never when plain is set.
func NewPrinter(w io.Writer, plain bool) *Printer {
	var opts []termenv.OutputOption
	if plain {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Printer{out: termenv.NewOutput(w, opts...)}
}

// Result prints the loss line, the filter declaration and a diagnostics
// line comparing the target with the rendered color.
func (p *Printer) Result(target *color.Color, res search.Result) {
	sev := res.Severity()
	line := fmt.Sprintf("Loss: %.1f. %s", res.Loss, sev.Message())
	fmt.Fprintln(p.out, p.out.String(line).Foreground(severityColor(sev)))
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, res.Values.Declaration())
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.out.String(Details(target, res)).Faint())
}

// Named prints a one-line summary for a batch entry.
func (p *Printer) Named(name string, target *color.Color, res search.Result) {
	sev := res.Severity()
	loss := p.out.String(fmt.Sprintf("%5.1f", res.Loss)).Foreground(severityColor(sev))
	fmt.Fprintf(p.out, "%-16s %s  loss %s  %s\n", name, target.Hex(), loss, res.Values.CSS())
}

// Details summarises how the search ended and how close the result looks.
func Details(target *color.Color, res search.Result) string {
	rendered := res.Values.Render()
	return fmt.Sprintf("target %s, rendered %s, ΔE %.2f (%s after %d iterations)",
		target, rendered, target.DeltaE(rendered), res.Stop, res.Iterations)
}

func severityColor(s search.Severity) termenv.Color {
	switch s {
	case search.Perfect, search.CloseEnough:
		return termenv.ANSIGreen
	case search.SomewhatOff:
		return termenv.ANSIYellow
	default:
		return termenv.ANSIRed
	}
}
