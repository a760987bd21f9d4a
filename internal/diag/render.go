package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan, color.Bold)
	codeLabel    = color.New(color.Faint)
)

// Render writes diagnostics in a human-readable single-line format:
//
//	file:line:col: ERROR [PRM1004] message
//	    note: ...
//
// When useColor is false all styling is suppressed.
func Render(w io.Writer, bag *Bag, useColor bool) {
	if bag == nil {
		return
	}
	prev := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prev }()

	for _, d := range bag.Items() {
		label := infoLabel
		switch d.Severity {
		case SevError:
			label = errorLabel
		case SevWarning:
			label = warningLabel
		}
		sev := d.Severity.String()
		if d.Code.IsInternal() {
			// Internal codes are always bugs, whatever severity the
			// reporter attached.
			label = errorLabel
			sev = "INTERNAL"
		}
		if d.Primary.IsZero() {
			fmt.Fprintf(w, "%s %s %s\n", label.Sprint(sev), codeLabel.Sprintf("[%s]", d.Code), d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s %s %s\n", d.Primary, label.Sprint(sev), codeLabel.Sprintf("[%s]", d.Code), d.Message)
		}
		for _, n := range d.Notes {
			if n.Span.IsZero() {
				fmt.Fprintf(w, "    note: %s\n", n.Msg)
			} else {
				fmt.Fprintf(w, "    note: %s: %s\n", n.Span, n.Msg)
			}
		}
	}
}
