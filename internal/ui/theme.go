package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name                                           string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Focused                        lipgloss.Style
	BoxUnchecked, BoxChecked                       string
	SymOK, SymFail, SymPending                     string
	Border                                         lipgloss.Border
	BorderColor                                    lipgloss.TerminalColor
}

// Names lists the accepted theme names.
var Names = []string{"classic", "neon", "mono"}

// NewTheme returns the named theme; unknown names fall back to classic.
// With color false every style renders plain text.
func NewTheme(name string, color bool) Theme {
	var t Theme
	switch strings.ToLower(name) {
	case "neon":
		t = Theme{
			Name:    "neon",
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		color = false
		t = Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:", SymPending: "-",
			Border: lipgloss.ASCIIBorder(),
		}
	default:
		t = Theme{
			Name:    "classic",
			Title:   lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Faint(true),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymOK: "✔", SymFail: "✖", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
	t.Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.Done = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	t.Focused = lipgloss.NewStyle().Bold(true).Underline(true)

	if !color {
		plain := lipgloss.NewStyle()
		t.Title, t.Muted, t.Accent = plain, plain, plain
		t.Success, t.Error, t.Pending = plain, plain, plain
		t.Done = plain
		t.BorderColor = nil
	}
	return t
}

// Box returns the check box glyph for a completion state.
func (t Theme) Box(done bool) string {
	if done {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}
