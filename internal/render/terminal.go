package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/folio/internal/toast"
)

// glyphs stand in for the icon font on a terminal.
var glyphs = map[toast.Severity]string{
	toast.SeveritySuccess: "✔",
	toast.SeverityError:   "✖",
	toast.SeverityWarning: "⚠",
	toast.SeverityInfo:    "ℹ",
}

// CloseAffordance is the label of the terminal close button.
const CloseAffordance = "[x]"

// Terminal box widths in columns. Display.Width is also used as a pixel width
// for HTML, so values above MaxTerminalWidth fall back to DefaultTerminalWidth.
const (
	MaxTerminalWidth     = 80
	DefaultTerminalWidth = 48
)

// TerminalWidth returns the box width for a configured width on a terminal
// that is available columns wide (0 if unknown).
func TerminalWidth(configured, available int) int {
	width := configured
	if width <= 0 || width > MaxTerminalWidth {
		width = DefaultTerminalWidth
	}
	if available > 2 && width > available-2 {
		width = available - 2
	}
	return width
}

// Glyph returns the terminal icon for a severity.
func Glyph(s toast.Severity) string {
	return glyphs[s.Normalize()]
}

// Terminal renders n as a coloured box of the given width.
// Dismissing notifications are drawn faint to mimic the exit transition.
func Terminal(n *toast.Notification, phase toast.Phase, width int) string {
	if n == nil {
		return ""
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(n.Presentation.Color)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(1, 2)
	if width > 0 {
		style = style.Width(width)
	}
	if phase == toast.PhaseDismissing || phase == toast.PhaseRemoved {
		style = style.Faint(true)
	}

	icon := lipgloss.NewStyle().MarginRight(1).Render(Glyph(n.Severity))
	msgWidth := width - 4 - lipgloss.Width(icon) - lipgloss.Width(CloseAffordance) - 2
	msg := lipgloss.NewStyle()
	if msgWidth > 0 {
		msg = msg.Width(msgWidth)
	}
	closeBtn := lipgloss.NewStyle().MarginLeft(2).Render(CloseAffordance)

	body := lipgloss.JoinHorizontal(lipgloss.Top, icon, msg.Render(StripMarkup(n.Message)), closeBtn)
	return style.Render(body)
}
