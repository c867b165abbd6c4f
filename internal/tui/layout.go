package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// modalBodyWidth bounds modal content so modals stay readable on both narrow
// and very wide terminals.
func modalBodyWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 64 {
		w = 64
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Background(colorModalHeaderBg).
		Foreground(colorSurfaceFg).
		Bold(true).
		Width(bodyW + 2).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Width(bodyW + 2).
		Padding(1, 1).
		Render(lipgloss.NewStyle().Width(bodyW).Render(content))

	return strings.Join([]string{header, body}, "\n")
}

func (m appModel) placeCentered(s string) string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, s)
}
