// Package diagfmt renders diagnostics for terminals and machine consumers.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cinder/internal/diag"
	"cinder/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty renders the bag in a human-readable form:
//
//	path:line:col: error[E0422]: call to 'helper' before its definition
//	  3 |     helper();
//	    |     ^~~~~~
//	  note: 'helper' is defined later, at line 5
//
// The caller is expected to Sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := severityLabel(d.Severity, opts.Color)
	head := fmt.Sprintf("%s[%s]: %s", sev, d.Code.ID(), d.Message)
	if loc, ok := formatLocation(d.Primary, fs, opts.PathMode); ok {
		fmt.Fprintf(w, "%s: %s\n", loc, head)
		writeSnippet(w, d.Primary, fs, opts)
	} else {
		fmt.Fprintf(w, "%s\n", head)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			if loc, ok := formatLocation(n.Span, fs, opts.PathMode); ok {
				fmt.Fprintf(w, "  %s: %s (%s)\n", label, n.Msg, loc)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
			}
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			label := "help"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s\n", label, f.Title)
		}
	}
}

// writeSnippet prints the offending source line with a caret underline.
func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\n")

	gutter := fmt.Sprintf("%4d |", start.Line)
	pad := strings.Repeat(" ", len(gutter)-1) + "|"
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
		pad = gutterColor.Sprint(pad)
	}
	fmt.Fprintf(w, "%s %s\n", gutter, line)

	// Align the caret under the span start using display width, so wide
	// runes and multibyte identifiers do not skew the underline.
	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	prefixWidth := runewidth.StringWidth(line[:startCol])

	underline := 1
	if end.Line == start.Line && end.Col > start.Col {
		endCol := int(end.Col) - 1
		if endCol > len(line) {
			endCol = len(line)
		}
		underline = runewidth.StringWidth(line[startCol:endCol])
		if underline < 1 {
			underline = 1
		}
	}
	marks := "^" + strings.Repeat("~", underline-1)
	if opts.Color {
		marks = errorColor.Sprint(marks)
	}
	fmt.Fprintf(w, "%s %s%s\n", pad, strings.Repeat(" ", prefixWidth), marks)
}

func severityLabel(sev diag.Severity, colored bool) string {
	var label string
	var c *color.Color
	switch sev {
	case diag.SevError:
		label, c = "error", errorColor
	case diag.SevWarning:
		label, c = "warning", warningColor
	default:
		label, c = "info", infoColor
	}
	if colored {
		return c.Sprint(label)
	}
	return label
}

// formatLocation renders "path:line:col" for a non-empty span.
func formatLocation(span source.Span, fs *source.FileSet, mode PathMode) (string, bool) {
	if span.Empty() && span.Start == 0 {
		return "", false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(file, fs, mode), start.Line, start.Col), true
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
