package ui

import (
	"fmt"
	"io"
)

// Printer writes user-facing notices: successes to Out, problems to Err.
type Printer struct {
	Out, Err io.Writer
	Theme    Theme
}

func NewPrinter(out, errOut io.Writer, t Theme) *Printer {
	return &Printer{Out: out, Err: errOut, Theme: t}
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.Theme.Success.Render(p.Theme.SymOK+" "+msg))
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Pending.Render(p.Theme.SymPending+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Error.Render(p.Theme.SymFail+" "+msg))
}

// Hint prints a muted follow-up line to Err.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Muted.Render(msg))
}
