// Package tui renders command output for humans.
package tui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/opennormal"
	"github.com/aretw0/opennormal/internal/logging"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/aretw0/opennormal/pkg/trigger"
	"github.com/muesli/termenv"
)

const (
	colorOK   = "#34d399"
	colorFail = "#f87171"
	colorDim  = "#9ca3af"
)

// Printer writes coloured verdicts. Colours are dropped automatically when
// the writer is not a terminal.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer on w.
func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{out: termenv.NewOutput(w, opts...)}
}

// Verdict prints the gate decision for one candidate.
func (p *Printer) Verdict(candidate string, err error) {
	shown := logging.SafeValue(candidate)
	if err == nil {
		fmt.Fprintf(p.out, "%s %s\n", p.mark("✔ accepted", colorOK), shown)
		return
	}
	reason, _ := domain.ReasonOf(err)
	fmt.Fprintf(p.out, "%s %s %s\n",
		p.mark("✘ "+string(reason), colorFail),
		shown,
		p.out.String("("+err.Error()+")").Foreground(p.out.Color(colorDim)),
	)
}

// Result prints the outcome of a relayed event.
func (p *Printer) Result(res opennormal.Result) {
	switch res.State {
	case domain.StateSucceeded:
		fmt.Fprintf(p.out, "%s %s\n", p.mark("✔ opened", colorOK), res.Candidate)
		if len(res.Response) > 0 {
			fmt.Fprintf(p.out, "  host response: %s\n", compact(res.Response))
		}
	case domain.StateRejected:
		fmt.Fprintf(p.out, "%s %s (%s)\n", p.mark("✘ "+string(res.Reason), colorFail), res.Candidate, res.Error)
	default:
		fmt.Fprintf(p.out, "%s %s\n  %s\n", p.mark("✘ "+string(res.State), colorFail), res.Candidate, res.Error)
	}
}

// Menus prints the context menu registrations.
func (p *Printer) Menus(items []trigger.MenuItem) {
	for _, item := range items {
		fmt.Fprintf(p.out, "%-16s %-30s %v\n", item.ID, item.Title, item.Contexts)
	}
}

func (p *Printer) mark(s, color string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color(color)).Bold()
}

func compact(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(b)
}
