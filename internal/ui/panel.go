package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames content with the current theme's border.
func Panel(content string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(content)
}

// PanelLines is Panel over joined lines.
func PanelLines(lines []string) string { return Panel(strings.Join(lines, "\n")) }

// Fprintln writes a styled one-line success or failure message to w.
func Fprintln(w io.Writer, ok bool, msg string) {
	t := Current()
	if ok {
		fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
		return
	}
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
