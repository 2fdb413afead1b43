package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames inner with the theme's border.
func (t Theme) PanelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(t.Border).
		Padding(0, 1)
	if t.BorderColor != nil {
		border = border.BorderForeground(t.BorderColor)
	}
	return border.Render(inner)
}

// Panel writes lines framed in a box.
func (t Theme) Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, t.PanelString(strings.Join(lines, "\n")))
}
