// Package cliutil holds small output helpers shared by the demo binaries.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"
)

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// bold wraps s in ANSI bold escape codes.
func bold(s string, color bool) string {
	if !color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

// Table writes column-aligned output using text/tabwriter. Headers are bold
// when output is a TTY.
type Table struct {
	tw    *tabwriter.Writer
	color bool
}

// NewTable creates a Table that writes to w. If headers are provided, they
// are written as a bold header row (bold only when w is a TTY).
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{
		tw:    tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		color: isTTY(w),
	}
	if len(headers) > 0 {
		for i, h := range headers {
			if i > 0 {
				fmt.Fprint(t.tw, "\t")
			}
			fmt.Fprint(t.tw, bold(h, t.color))
		}
		fmt.Fprintln(t.tw)
	}
	return t
}

// Row writes one row of cells.
func (t *Table) Row(cells ...string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(t.tw, "\t")
		}
		fmt.Fprint(t.tw, c)
	}
	fmt.Fprintln(t.tw)
}

// Flush writes buffered rows to the underlying writer.
func (t *Table) Flush() error {
	return t.tw.Flush()
}
