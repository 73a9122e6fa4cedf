// Package cliutil holds small presentation helpers shared by
// cmd/compiscript's subcommands: colorized diagnostic printing, summary
// line formatting, and cache-timestamp rendering.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/cslang/compiscript/internal/diagnostics"
)

// ColorEnabled reports whether w is a real terminal, gating ANSI severity
// coloring in the diagnostic printer (never colorize piped/redirected
// output).
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// PrintDiagnostics writes one line per diagnostic to w, colorizing the
// phase/code tag when color is true.
func PrintDiagnostics(w io.Writer, diags []*diagnostics.Diagnostic, color bool) {
	for _, d := range diags {
		tag := fmt.Sprintf("[%s %s]", d.Phase, d.Code)
		if color {
			tag = colorRed + tag + colorReset
		}
		fmt.Fprintf(w, "%d:%d %s %s\n", d.Line, d.Column, tag, d.Message)
	}
}

// Summary renders a humanized, pluralized one-line count
// ("3 errors" / "1 error" / "no errors"), in the teacher's CLI-summary
// register.
func Summary(diags []*diagnostics.Diagnostic) string {
	n := len(diags)
	if n == 0 {
		return "no errors"
	}
	return humanize.Comma(int64(n)) + " " + plural(n, "error", "errors")
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// ElapsedSince renders a human-relative duration ("3 minutes ago"), used
// to report cache entry age.
func ElapsedSince(t time.Time) string {
	return humanize.Time(t)
}

// FormatTimestamp renders t for `compiscript cache info`, in the
// strftime-style layout the rest of the corpus's date formatting uses.
func FormatTimestamp(t time.Time) string {
	return strftime.Format("%Y-%m-%d %H:%M:%S UTC", t.UTC())
}

// Indent prefixes every non-empty line of s with two spaces. No
// subcommand calls it; `dump` prints the symbol table export unindented.
func Indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
