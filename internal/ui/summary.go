// Package ui renders the closing summary of a check run.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Summary aggregates the counters of one check run.
type Summary struct {
	Files    int
	Errors   int
	Warnings int
	Elapsed  time.Duration
}

// Render returns the closing lines of a check run. Styling degrades to
// plain text when color is false.
func Render(s Summary, color bool) string {
	var sb strings.Builder

	status := "ok"
	style := okStyle
	if s.Errors > 0 {
		status = "failed"
		style = failStyle
	}
	if color {
		status = style.Render(status)
	}

	header := fmt.Sprintf("check %s", status)
	if color {
		sb.WriteString(titleStyle.Render("cinder") + " " + header)
	} else {
		sb.WriteString("cinder " + header)
	}
	sb.WriteByte('\n')

	parts := []string{fmt.Sprintf("%d %s", s.Files, plural(s.Files, "file", "files"))}
	if s.Errors > 0 {
		e := fmt.Sprintf("%d %s", s.Errors, plural(s.Errors, "error", "errors"))
		if color {
			e = failStyle.Render(e)
		}
		parts = append(parts, e)
	}
	if s.Warnings > 0 {
		w := fmt.Sprintf("%d %s", s.Warnings, plural(s.Warnings, "warning", "warnings"))
		if color {
			w = warnStyle.Render(w)
		}
		parts = append(parts, w)
	}
	if s.Elapsed > 0 {
		d := s.Elapsed.Round(time.Millisecond).String()
		if color {
			d = dimStyle.Render(d)
		}
		parts = append(parts, d)
	}
	sb.WriteString("  " + strings.Join(parts, ", "))
	sb.WriteByte('\n')
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
